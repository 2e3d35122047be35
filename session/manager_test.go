package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"cmsadmin/api"
)

type memStore struct {
	mu    sync.Mutex
	creds *Credentials

	loadErr error
	saveErr error

	saves  int
	clears int
}

func (s *memStore) Load() (*Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.creds, nil
}

func (s *memStore) Save(creds *Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.creds = creds
	return nil
}

func (s *memStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	s.creds = nil
	return nil
}

type fakeAuth struct {
	result *api.LoginResult
	err    error
}

func (a *fakeAuth) Login(context.Context, string, string) (*api.LoginResult, error) {
	return a.result, a.err
}

func validCreds() *Credentials {
	return &Credentials{Token: "tok", User: api.User{ID: 1, Username: "admin"}}
}

func TestNewManagerStartsUnknown(t *testing.T) {
	m := NewManager(&memStore{}, &fakeAuth{})
	assert.Equal(t, StatusUnknown, m.Status(), "Status is Unknown until Restore resolves it")
}

func TestRestoreWithNothingStored(t *testing.T) {
	m := NewManager(&memStore{}, &fakeAuth{})
	m.Restore()

	assert.Equal(t, StatusUnauthenticated, m.Status())
	assert.Empty(t, m.Token())
}

func TestRestoreWithValidPair(t *testing.T) {
	m := NewManager(&memStore{creds: validCreds()}, &fakeAuth{})
	m.Restore()

	assert.Equal(t, StatusAuthenticated, m.Status())
	assert.Equal(t, "tok", m.Token())
	user, ok := m.User()
	assert.True(t, ok)
	assert.Equal(t, "admin", user.Username)
}

func TestRestoreDiscardsIncompletePair(t *testing.T) {
	store := &memStore{creds: &Credentials{Token: "tok"}} // missing user
	m := NewManager(store, &fakeAuth{})
	m.Restore()

	assert.Equal(t, StatusUnauthenticated, m.Status())
	assert.Equal(t, 1, store.clears, "A half-complete pair is cleared, not kept")
	assert.Empty(t, m.Token())
}

func TestRestoreDiscardsUnreadableStore(t *testing.T) {
	store := &memStore{loadErr: errors.New("corrupt")}
	m := NewManager(store, &fakeAuth{})
	m.Restore()

	assert.Equal(t, StatusUnauthenticated, m.Status())
	assert.Equal(t, 1, store.clears)
}

func TestLoginSuccessPersistsPair(t *testing.T) {
	store := &memStore{}
	m := NewManager(store, &fakeAuth{result: &api.LoginResult{
		AccessToken: "tok",
		User:        api.User{ID: 1, Username: "admin"},
	}})

	err := m.Login(context.Background(), "admin", "secret")
	assert.NoError(t, err)
	assert.Equal(t, StatusAuthenticated, m.Status())
	assert.Equal(t, "tok", m.Token())
	if assert.NotNil(t, store.creds, "The pair is persisted as a unit") {
		assert.Equal(t, "tok", store.creds.Token)
		assert.Equal(t, int64(1), store.creds.User.ID)
	}
}

func TestLoginSurvivesPersistFailure(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	m := NewManager(store, &fakeAuth{result: &api.LoginResult{
		AccessToken: "tok",
		User:        api.User{ID: 1, Username: "admin"},
	}})

	err := m.Login(context.Background(), "admin", "secret")
	assert.NoError(t, err, "A persist failure does not fail the sign-in")
	assert.Equal(t, StatusAuthenticated, m.Status())
}

func TestLoginFailurePassesErrorThrough(t *testing.T) {
	authErr := &api.AuthError{Detail: "bad credentials"}
	m := NewManager(&memStore{}, &fakeAuth{err: authErr})
	m.Restore()

	err := m.Login(context.Background(), "admin", "wrong")
	assert.ErrorAs(t, err, &authErr)
	assert.Equal(t, StatusUnauthenticated, m.Status())
	assert.Empty(t, m.Token())
}

func TestLoginRejectsTokenlessResult(t *testing.T) {
	store := &memStore{}
	m := NewManager(store, &fakeAuth{result: &api.LoginResult{
		User: api.User{ID: 1, Username: "admin"},
	}})
	m.Restore()

	err := m.Login(context.Background(), "admin", "secret")
	assert.Error(t, err, "A success response without a token must not authenticate")
	assert.Equal(t, StatusUnauthenticated, m.Status())
	assert.Empty(t, m.Token())
	assert.Zero(t, store.saves, "Nothing is persisted without a token")
}

func TestLogoutIsIdempotent(t *testing.T) {
	store := &memStore{creds: validCreds()}
	m := NewManager(store, &fakeAuth{})
	m.Restore()

	m.Logout()
	assert.Equal(t, StatusUnauthenticated, m.Status())
	assert.Empty(t, m.Token())

	m.Logout()
	m.Logout()
	assert.Equal(t, StatusUnauthenticated, m.Status())
}

func TestInvalidateClearsPairAndSignalsOnce(t *testing.T) {
	store := &memStore{creds: validCreds()}
	m := NewManager(store, &fakeAuth{})
	m.Restore()

	m.Invalidate()
	assert.Equal(t, StatusUnauthenticated, m.Status())
	assert.Empty(t, m.Token())

	select {
	case <-m.Invalidations():
	default:
		t.Fatal("Expected one invalidation signal")
	}
	select {
	case <-m.Invalidations():
		t.Fatal("Expected no second signal")
	default:
	}
}

func TestConcurrentInvalidateSignalsOnce(t *testing.T) {
	store := &memStore{creds: validCreds()}
	m := NewManager(store, &fakeAuth{})
	m.Restore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Invalidate()
		}()
	}
	wg.Wait()

	signals := 0
	for {
		select {
		case <-m.Invalidations():
			signals++
			continue
		default:
		}
		break
	}
	assert.Equal(t, 1, signals, "However many calls observe the 401, the shell redirects once")
}

func TestInvalidateWhileUnauthenticatedDoesNothing(t *testing.T) {
	m := NewManager(&memStore{}, &fakeAuth{})
	m.Restore()

	m.Invalidate()
	select {
	case <-m.Invalidations():
		t.Fatal("Invalidate while unauthenticated must not signal")
	default:
	}
}

func TestInvalidateResolvesUnknown(t *testing.T) {
	m := NewManager(&memStore{}, &fakeAuth{})

	m.Invalidate()
	assert.Equal(t, StatusUnauthenticated, m.Status(), "A 401 during startup resolves Unknown")
}

func TestLoginReArmsInvalidationSignal(t *testing.T) {
	store := &memStore{creds: validCreds()}
	m := NewManager(store, &fakeAuth{result: &api.LoginResult{
		AccessToken: "tok2",
		User:        api.User{ID: 1, Username: "admin"},
	}})
	m.Restore()

	m.Invalidate()
	assert.NoError(t, m.Login(context.Background(), "admin", "secret"))

	select {
	case <-m.Invalidations():
		t.Fatal("The stale signal from the previous period must be drained on login")
	default:
	}

	m.Invalidate()
	select {
	case <-m.Invalidations():
	default:
		t.Fatal("A fresh authenticated period signals again")
	}
}
