package state

import (
	"sync"

	"cmsadmin/logger"
)

// globalState is the singleton used by template rendering; handlers receive
// a StateManager by injection instead.
var (
	globalState StateManager
	once        sync.Once
)

// InitGlobalState initializes the global state manager. Called once from
// main before anything else runs.
func InitGlobalState() StateManager {
	once.Do(func() {
		globalState = NewAppState()
		logger.Get().Info().Msg("Global state manager initialized")
	})
	return globalState
}

// GetGlobalState returns the global state manager. It assumes
// InitGlobalState has been called at application startup.
func GetGlobalState() StateManager {
	if globalState == nil {
		// Programming error: main must initialize state first.
		logger.Get().Fatal().Msg("Global state accessed before initialization")
	}
	return globalState
}
