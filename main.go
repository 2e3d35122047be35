package main

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"cmsadmin/api"
	"cmsadmin/config"
	"cmsadmin/constants"
	"cmsadmin/handlers"
	"cmsadmin/logger"
	"cmsadmin/metrics"
	"cmsadmin/server"
	"cmsadmin/session"
	"cmsadmin/state"
	"cmsadmin/templates"
)

func main() {
	// The global state manager first, everything else hangs off it.
	stateManager := state.InitGlobalState()

	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Get().Info().Str("version", constants.AppVersion).Msg("Starting cmsadmin")

	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(cfg.LogLevel)

	if err := initializeApp(stateManager, cfg); err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to initialize application")
	}

	metrics.Init()

	handler := handlers.InitHandlers(stateManager)
	srv := server.New(cfg.Port, handler)

	go func() {
		logger.Get().Info().Str("port", cfg.Port).Msg("Server starting...")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Get().Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Periodic backend reachability probe for the shell indicator.
	go watchBackend(stateManager)

	// One signal per authenticated period, however many calls saw the 401.
	// The auth gate turns it into the actual redirect on the next request.
	go func() {
		for range stateManager.GetSession().Invalidations() {
			logger.Get().Warn().Msg("Operator session invalidated, next request redirects to sign-in")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Get().Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Get().Error().Err(err).Msg("Server shutdown error")
	} else {
		logger.Get().Info().Msg("Server shutdown complete")
	}
}

// initializeApp wires the API client, the operator session, the browser
// sessions and the templates into the state manager.
func initializeApp(stateManager state.StateManager, cfg *config.Config) error {
	store := session.NewFileStore(cfg.CredentialsFile)

	client, err := api.NewClient(cfg.BackendURL, cfg.APITimeout, nil)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	// The session manager is the client's token source and its unauthorized
	// hook: any 401 from any call invalidates the pair exactly once.
	sess := session.NewManager(store, client)
	client.SetTokenSource(sess)
	client.OnUnauthorized(sess.Invalidate)

	if err := stateManager.SetAPIClient(client); err != nil {
		return err
	}
	if err := stateManager.SetSession(sess); err != nil {
		return err
	}

	if err := stateManager.SetBrowserSessions(server.InitBrowserSessions()); err != nil {
		return err
	}

	tmpl, err := initTemplates()
	if err != nil {
		return fmt.Errorf("failed to initialize templates: %w", err)
	}
	if err := stateManager.SetTemplates(tmpl); err != nil {
		return err
	}

	// Resolve Unknown before the server accepts traffic; the protected pages
	// gate on this state.
	sess.Restore()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	stateManager.CheckBackendConnection(ctx)

	return nil
}

// initTemplates parses every HTML file under frontend/ into one template set.
func initTemplates() (*template.Template, error) {
	tmpl := template.New("").Funcs(templates.GetFuncMap())

	frontendPath := "frontend"
	if _, err := os.Stat(frontendPath); err != nil {
		if execPath, execErr := os.Executable(); execErr == nil {
			frontendPath = filepath.Join(filepath.Dir(execPath), "frontend")
		}
	}

	count := 0
	err := filepath.Walk(frontendPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".html") {
			return nil
		}
		if _, err := tmpl.ParseFiles(path); err != nil {
			return fmt.Errorf("failed to parse template %s: %w", path, err)
		}
		count++
		return nil
	})
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("no templates found under %s", frontendPath)
	}

	logger.Get().Info().Int("templates", count).Str("path", frontendPath).Msg("Templates loaded")
	return tmpl, nil
}

// watchBackend refreshes the backend reachability indicator.
func watchBackend(stateManager state.StateManager) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		stateManager.CheckBackendConnection(ctx)
		cancel()
	}
}
