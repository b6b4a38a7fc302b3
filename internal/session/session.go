// Package session simulates an authentication lifecycle. There is no
// server: any well-formed credentials are accepted after an artificial
// delay and the synthesized user is kept in the store.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/v-s-abhishek/PickList/internal/model"
	"github.com/v-s-abhishek/PickList/internal/store"
)

// DefaultDelay mimics a round trip to an auth server.
const DefaultDelay = time.Second

const minPasswordLen = 6

// State of the session lifecycle.
type State int

const (
	Anonymous State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Route is where the view should go after a session transition.
type Route string

const (
	RouteHome      Route = "/"
	RouteLogin     Route = "/login"
	RouteSignup    Route = "/signup"
	RouteChecklist Route = "/checklist"
)

// ValidationError reports unusable credential fields.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ErrBusy rejects an attempt started while another is still pending.
var ErrBusy = errors.New("session: another attempt is in progress")

// ErrLoggedOut is returned by an attempt that was still pending when Logout
// ran. Its result is discarded.
var ErrLoggedOut = errors.New("session: logged out while the attempt was pending")

// Manager owns the current identity. It is safe for concurrent use.
type Manager struct {
	backend store.Store
	log     *logrus.Logger
	delay   time.Duration

	mu     sync.Mutex
	state  State
	user   *model.User
	errMsg string
	gen    uint64 // bumped by Logout
}

type Option func(*Manager)

func WithLogger(l *logrus.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithDelay overrides DefaultDelay. Zero disables the wait.
func WithDelay(d time.Duration) Option {
	return func(m *Manager) {
		if d >= 0 {
			m.delay = d
		}
	}
}

// Open restores a previously stored identity without re-validating it.
// An unreadable record is discarded and the session starts anonymous.
func Open(ctx context.Context, backend store.Store, opts ...Option) (*Manager, error) {
	m := &Manager{backend: backend, log: logrus.StandardLogger(), delay: DefaultDelay}
	for _, o := range opts {
		o(m)
	}

	data, ok, err := backend.Load(ctx, store.KeyUser)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return m, nil
	}
	u, err := decodeUser(data)
	if err != nil {
		m.log.WithError(err).Warn("stored session is unreadable, starting logged out")
		if err := backend.Delete(ctx, store.KeyUser); err != nil {
			m.log.WithError(err).Warn("could not remove unreadable session")
		}
		return m, nil
	}
	m.user = u
	m.state = Authenticated
	m.log.WithField("user_id", u.ID).Debug("session restored")
	return m, nil
}

// decodeUser rejects records that parse but carry no identity, such as
// null or {}.
func decodeUser(data []byte) (*model.User, error) {
	var u *model.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, err
	}
	if u == nil || u.ID == "" || strings.TrimSpace(u.Email) == "" {
		return nil, errors.New("record has no identity")
	}
	return u, nil
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// User returns the signed-in user, if any.
func (m *Manager) User() (model.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return model.User{}, false
	}
	return *m.user, true
}

func (m *Manager) IsAuthenticated() bool {
	return m.State() == Authenticated
}

// Err is the message of the last failed attempt, "" if none.
func (m *Manager) Err() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errMsg
}

// Login accepts any email with a password of at least six characters.
// The display name is the local part of the email.
func (m *Manager) Login(ctx context.Context, email, password string) (Route, error) {
	return m.attempt(ctx, "login", func() (*model.User, error) {
		email = strings.TrimSpace(email)
		if email == "" || strings.TrimSpace(password) == "" {
			return nil, &ValidationError{Msg: "Please enter both email and password"}
		}
		if utf8.RuneCountInString(password) < minPasswordLen {
			return nil, &ValidationError{Msg: "Password must be at least 6 characters"}
		}
		return &model.User{ID: model.NewID("user"), Email: email, Name: localPart(email)}, nil
	})
}

// Signup is Login with an explicit display name.
func (m *Manager) Signup(ctx context.Context, name, email, password string) (Route, error) {
	return m.attempt(ctx, "signup", func() (*model.User, error) {
		name, email = strings.TrimSpace(name), strings.TrimSpace(email)
		if name == "" || email == "" || strings.TrimSpace(password) == "" {
			return nil, &ValidationError{Msg: "Please fill in all fields"}
		}
		if utf8.RuneCountInString(password) < minPasswordLen {
			return nil, &ValidationError{Msg: "Password must be at least 6 characters"}
		}
		return &model.User{ID: model.NewID("user"), Email: email, Name: name}, nil
	})
}

// Logout forgets the identity. The in-memory session is cleared even if
// the stored record could not be removed. A pending attempt keeps the
// manager busy until it returns, and then fails with ErrLoggedOut.
func (m *Manager) Logout(ctx context.Context) (Route, error) {
	m.mu.Lock()
	m.gen++
	m.user = nil
	if m.state != Authenticating {
		m.state = Anonymous
	}
	m.errMsg = ""
	m.mu.Unlock()

	if err := m.backend.Delete(ctx, store.KeyUser); err != nil {
		return RouteHome, fmt.Errorf("delete session: %w", err)
	}
	m.log.Info("logged out")
	return RouteHome, nil
}

func (m *Manager) attempt(ctx context.Context, kind string, build func() (*model.User, error)) (Route, error) {
	m.mu.Lock()
	if m.state == Authenticating {
		m.mu.Unlock()
		return "", ErrBusy
	}
	m.state = Authenticating
	m.errMsg = ""
	gen := m.gen
	m.mu.Unlock()

	if err := sleep(ctx, m.delay); err != nil {
		m.fail("")
		return "", err
	}

	u, err := build()
	if err != nil {
		m.fail(err.Error())
		m.log.WithField("attempt", kind).WithError(err).Debug("rejected")
		return "", err
	}

	data, err := json.Marshal(u)
	if err != nil {
		m.fail("Could not save session")
		return "", fmt.Errorf("encode session: %w", err)
	}

	// Save and commit under the lock so a concurrent Logout either
	// supersedes the attempt or runs after it.
	m.mu.Lock()
	if m.gen != gen {
		m.state = Anonymous
		m.mu.Unlock()
		m.log.WithField("attempt", kind).Debug("superseded by logout")
		return "", ErrLoggedOut
	}
	if err := m.backend.Save(ctx, store.KeyUser, data); err != nil {
		m.mu.Unlock()
		m.fail("Could not save session")
		return "", fmt.Errorf("save session: %w", err)
	}
	m.user = u
	m.state = Authenticated
	m.mu.Unlock()
	m.log.WithFields(logrus.Fields{"attempt": kind, "user_id": u.ID}).Info("authenticated")
	return RouteChecklist, nil
}

// fail records msg and leaves any existing identity in place.
func (m *Manager) fail(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errMsg = msg
	if m.user != nil {
		m.state = Authenticated
		return
	}
	m.state = Anonymous
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func localPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
