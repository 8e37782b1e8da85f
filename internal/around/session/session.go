// Package session owns the bearer token lifecycle: registration, login,
// startup validation and logout, and the route guard derived from it.
package session

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/5hraddha/around/internal/around/entity"
	"github.com/5hraddha/around/internal/around/storage"
	apperrors "github.com/5hraddha/around/internal/platform/errors"
	"github.com/5hraddha/around/internal/platform/logging"
)

// AuthGateway is the auth service boundary.
type AuthGateway interface {
	Register(ctx context.Context, creds entity.Credentials) error
	Login(ctx context.Context, creds entity.Credentials) (string, error)
	Validate(ctx context.Context, token string) (string, error)
}

// Tooltips shows the registration result.
type Tooltips interface {
	OpenTooltip(success bool)
}

// Busy raises the shared loading indicator around a request.
type Busy interface {
	Begin() (done func())
}

// State is a snapshot of the session. LoggedIn is never persisted; it is
// derived by validating the stored token each process start.
type State struct {
	Token    string
	Email    string
	LoggedIn bool
}

// Deps wires a Session.
type Deps struct {
	Gateway  AuthGateway
	Tokens   storage.TokenStore
	Tooltips Tooltips
	Busy     Busy
	Logger   *logrus.Entry
}

// Session is the authentication state.
type Session struct {
	gw       AuthGateway
	tokens   storage.TokenStore
	tooltips Tooltips
	busy     Busy
	router   *Router
	log      *logrus.Entry

	mu    sync.RWMutex
	state State
}

// New returns a logged-out session. The router starts at the main view and
// therefore shows login until a token validates.
func New(deps Deps) *Session {
	gw := deps.Gateway
	if gw == nil {
		gw = unavailableGateway{}
	}
	tokens := deps.Tokens
	if tokens == nil {
		tokens = storage.NewMemory()
	}
	s := &Session{
		gw:       gw,
		tokens:   tokens,
		tooltips: deps.Tooltips,
		busy:     deps.Busy,
		log:      logging.Component(deps.Logger, "session"),
	}
	s.router = NewRouter(RouteMain, s.LoggedIn)
	return s
}

// Router returns the session's router.
func (s *Session) Router() *Router { return s.router }

// Register creates an account. Success moves to the login view; either way
// the result tooltip opens and closes itself.
func (s *Session) Register(ctx context.Context, creds entity.Credentials) error {
	done := s.begin()
	err := s.gw.Register(ctx, creds)
	done()

	if err != nil {
		s.logFailure("auth.register", err, map[int]string{
			http.StatusBadRequest: "one of the fields was filled in incorrectly",
		})
		s.openTooltip(false)
		return err
	}
	s.log.WithField("email", creds.Email).Info("registered")
	s.router.Navigate(RouteLogin)
	s.openTooltip(true)
	return nil
}

// Login exchanges creds for a token. A response without a token changes
// nothing and reports false.
func (s *Session) Login(ctx context.Context, creds entity.Credentials) (bool, error) {
	done := s.begin()
	token, err := s.gw.Login(ctx, creds)
	done()

	if err != nil {
		s.logFailure("auth.login", err, map[int]string{
			http.StatusBadRequest:   "one or more of the fields were not provided",
			http.StatusUnauthorized: "the user with the specified email not found",
		})
		return false, err
	}
	if strings.TrimSpace(token) == "" {
		s.log.Debug("login response carried no token")
		return false, nil
	}
	if err := s.tokens.SetToken(ctx, token); err != nil {
		s.log.WithError(err).Warn("persist token")
		return false, err
	}

	s.mu.Lock()
	s.state = State{Token: token, Email: creds.Email, LoggedIn: true}
	s.mu.Unlock()

	s.router.Navigate(RouteMain)
	s.log.WithField("email", creds.Email).Info("logged in")
	return true, nil
}

// ValidateOnStartup checks the stored token against the auth service.
// Without a stored token no request is made. Failures leave the session
// logged out and are only logged.
func (s *Session) ValidateOnStartup(ctx context.Context) {
	token, ok, err := s.tokens.Token(ctx)
	if err != nil {
		s.log.WithError(err).Warn("read stored token")
		return
	}
	if !ok {
		s.log.Debug("no stored token")
		return
	}

	email, err := s.gw.Validate(ctx, token)
	if err != nil {
		s.logFailure("auth.validate", err, map[int]string{
			http.StatusBadRequest:   "token not provided or provided in the wrong format",
			http.StatusUnauthorized: "the provided token is invalid",
		})
		return
	}
	if strings.TrimSpace(email) == "" {
		s.log.Warn("token validation returned no email")
		return
	}

	s.mu.Lock()
	s.state = State{Token: token, Email: email, LoggedIn: true}
	s.mu.Unlock()

	if claims, err := ParseClaims(token); err == nil && !claims.ExpiresAt.IsZero() {
		s.log.WithField("expires_at", claims.ExpiresAt).Debug("token claims")
	}
	s.router.Navigate(RouteMain)
	s.log.WithField("email", email).Info("session restored")
}

// Logout forgets the token and email and shows the login view.
func (s *Session) Logout(ctx context.Context) error {
	err := s.tokens.ClearToken(ctx)
	if err != nil {
		s.log.WithError(err).Warn("clear stored token")
	}

	s.mu.Lock()
	s.state = State{}
	s.mu.Unlock()

	s.router.Navigate(RouteLogin)
	s.log.Info("logged out")
	return err
}

// LoggedIn reports whether a token has been accepted this process.
func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.LoggedIn
}

// Email returns the signed-in email, or "".
func (s *Session) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Email
}

// State returns a snapshot.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Claims decodes the current token.
func (s *Session) Claims() (TokenClaims, bool) {
	token := s.State().Token
	if token == "" {
		return TokenClaims{}, false
	}
	claims, err := ParseClaims(token)
	if err != nil {
		return TokenClaims{}, false
	}
	return claims, true
}

func (s *Session) begin() func() {
	if s.busy == nil {
		return func() {}
	}
	return s.busy.Begin()
}

func (s *Session) openTooltip(success bool) {
	if s.tooltips != nil {
		s.tooltips.OpenTooltip(success)
	}
}

// logFailure logs err and, for known auth statuses, the matching diagnostic.
func (s *Session) logFailure(op string, err error, diagnostics map[int]string) {
	status := apperrors.StatusOf(err)
	entry := s.log.WithFields(logrus.Fields{
		"op":   op,
		"kind": apperrors.KindOf(err),
	})
	if status != 0 {
		entry = entry.WithField("status", status)
	}
	entry.WithError(err).Warn("auth request failed")
	if msg, ok := diagnostics[status]; ok {
		entry.Warn(msg)
	}
}

type unavailableGateway struct{}

func (unavailableGateway) Register(context.Context, entity.Credentials) error {
	return apperrors.E(apperrors.KindUnavailable, "auth.register", "auth gateway is not configured")
}

func (unavailableGateway) Login(context.Context, entity.Credentials) (string, error) {
	return "", apperrors.E(apperrors.KindUnavailable, "auth.login", "auth gateway is not configured")
}

func (unavailableGateway) Validate(context.Context, string) (string, error) {
	return "", apperrors.E(apperrors.KindUnavailable, "auth.validate", "auth gateway is not configured")
}
