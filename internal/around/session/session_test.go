package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5hraddha/around/internal/around/entity"
	"github.com/5hraddha/around/internal/around/gateway"
	"github.com/5hraddha/around/internal/around/popup"
	"github.com/5hraddha/around/internal/around/schedule"
	"github.com/5hraddha/around/internal/around/storage"
	apperrors "github.com/5hraddha/around/internal/platform/errors"
	"github.com/5hraddha/around/internal/platform/logging"
)

type fakeAuth struct {
	mu          sync.Mutex
	calls       []string
	registerErr error
	loginToken  string
	loginErr    error
	email       string
	validateErr error
	validated   []string
}

func (f *fakeAuth) Register(context.Context, entity.Credentials) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "register")
	return f.registerErr
}

func (f *fakeAuth) Login(context.Context, entity.Credentials) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "login")
	return f.loginToken, f.loginErr
}

func (f *fakeAuth) Validate(_ context.Context, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "validate")
	f.validated = append(f.validated, token)
	return f.email, f.validateErr
}

type fakeBusy struct {
	begins, ends int
}

func (f *fakeBusy) Begin() func() {
	f.begins++
	return func() { f.ends++ }
}

type fixture struct {
	session *Session
	auth    *fakeAuth
	tokens  *storage.Memory
	popups  *popup.Orchestrator
	clock   *schedule.Manual
	busy    *fakeBusy
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := schedule.NewManual()
	f := &fixture{
		auth:   &fakeAuth{},
		tokens: storage.NewMemory(),
		popups: popup.New(popup.NewBus(), clock, logging.Discard()),
		clock:  clock,
		busy:   &fakeBusy{},
	}
	f.session = New(Deps{
		Gateway:  f.auth,
		Tokens:   f.tokens,
		Tooltips: f.popups,
		Busy:     f.busy,
		Logger:   logging.Discard(),
	})
	return f
}

func TestNewSessionShowsLogin(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	assert.False(t, f.session.LoggedIn())
	assert.Equal(t, RouteLogin, f.session.Router().Current())
}

func TestRegisterSuccessShowsTooltipThenAutoCloses(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.session.Router().Navigate(RouteRegister)

	err := f.session.Register(context.Background(), entity.Credentials{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)

	state := f.popups.State()
	assert.True(t, state.Tooltip.Open)
	assert.True(t, state.Tooltip.Success)
	assert.Equal(t, RouteLogin, f.session.Router().Current())
	assert.Equal(t, 1, f.busy.begins)
	assert.Equal(t, 1, f.busy.ends)

	f.clock.Advance(2000 * time.Millisecond)
	assert.False(t, f.popups.State().Tooltip.Open)
	assert.Equal(t, RouteLogin, f.session.Router().Current())
}

func TestRegisterFailureShowsFailureTooltip(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.session.Router().Navigate(RouteRegister)
	f.auth.registerErr = apperrors.StatusError("auth.register", 400, "")

	err := f.session.Register(context.Background(), entity.Credentials{Email: "a@b.com", Password: "x"})
	require.Error(t, err)

	state := f.popups.State()
	assert.True(t, state.Tooltip.Open)
	assert.False(t, state.Tooltip.Success)
	assert.Equal(t, RouteRegister, f.session.Router().Current())

	f.clock.Advance(2 * time.Second)
	assert.False(t, f.popups.State().Tooltip.Open)
}

func TestLoginPersistsTokenAndShowsMain(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.auth.loginToken = "jwt-token"

	ok, err := f.session.Login(context.Background(), entity.Credentials{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)
	assert.True(t, ok)

	token, stored, _ := f.tokens.Token(context.Background())
	assert.True(t, stored)
	assert.Equal(t, "jwt-token", token)
	assert.Equal(t, State{Token: "jwt-token", Email: "a@b.com", LoggedIn: true}, f.session.State())
	assert.Equal(t, RouteMain, f.session.Router().Current())
}

func TestLoginWithoutTokenIsNoOp(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ok, err := f.session.Login(context.Background(), entity.Credentials{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, f.tokens.Writes())
	assert.False(t, f.session.LoggedIn())
	assert.Equal(t, RouteLogin, f.session.Router().Current())
}

func TestLoginFailureStaysLoggedOut(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.auth.loginErr = apperrors.StatusError("auth.login", 401, "")
	ok, err := f.session.Login(context.Background(), entity.Credentials{Email: "a@b.com", Password: "secret1"})
	require.Error(t, err)
	assert.False(t, ok)
	assert.False(t, f.session.LoggedIn())
	assert.False(t, f.popups.State().Tooltip.Open, "login failures open no tooltip")
}

func TestValidateOnStartupWithoutTokenMakesNoCall(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.session.ValidateOnStartup(context.Background())
	assert.False(t, f.session.LoggedIn())
	assert.Empty(t, f.auth.calls)
}

func TestValidateOnStartupRestoresSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.NoError(t, f.tokens.SetToken(context.Background(), "stored"))
	f.auth.email = "a@b.com"

	f.session.ValidateOnStartup(context.Background())
	assert.Equal(t, State{Token: "stored", Email: "a@b.com", LoggedIn: true}, f.session.State())
	assert.Equal(t, []string{"stored"}, f.auth.validated)
	assert.Equal(t, RouteMain, f.session.Router().Current())
}

func TestValidateOnStartupRejectedTokenStaysLoggedOut(t *testing.T) {
	t.Parallel()

	for _, status := range []int{400, 401} {
		f := newFixture(t)
		require.NoError(t, f.tokens.SetToken(context.Background(), "stale"))
		f.auth.validateErr = apperrors.StatusError("auth.validate", status, "")

		assert.NotPanics(t, func() { f.session.ValidateOnStartup(context.Background()) })
		assert.False(t, f.session.LoggedIn())
		assert.Equal(t, RouteLogin, f.session.Router().Current())
	}
}

func TestValidateOnStartupWithoutEmailStaysLoggedOut(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.NoError(t, f.tokens.SetToken(context.Background(), "stored"))

	f.session.ValidateOnStartup(context.Background())
	assert.Equal(t, []string{"stored"}, f.auth.validated)
	assert.False(t, f.session.LoggedIn())
	assert.Empty(t, f.session.Email())
	assert.Equal(t, RouteLogin, f.session.Router().Current())
}

func TestValidateOnStartupEmptyResponseStaysLoggedOut(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	auth, err := gateway.NewAuth(gateway.Config{BaseURL: srv.URL, Logger: logging.Discard()})
	require.NoError(t, err)

	tokens := storage.NewMemory()
	require.NoError(t, tokens.SetToken(context.Background(), "stored"))
	s := New(Deps{Gateway: auth, Tokens: tokens, Logger: logging.Discard()})

	s.ValidateOnStartup(context.Background())
	assert.False(t, s.LoggedIn())
	assert.Empty(t, s.Email())
	assert.Equal(t, RouteLogin, s.Router().Current())
}

type brokenTokens struct{ storage.Memory }

func (*brokenTokens) Token(context.Context) (string, bool, error) {
	return "", false, errors.New("disk gone")
}

func TestValidateOnStartupStorageErrorStaysLoggedOut(t *testing.T) {
	t.Parallel()

	auth := &fakeAuth{}
	s := New(Deps{Gateway: auth, Tokens: &brokenTokens{}, Logger: logging.Discard()})
	s.ValidateOnStartup(context.Background())
	assert.False(t, s.LoggedIn())
	assert.Empty(t, auth.calls)
}

func TestLogoutClearsEverything(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.auth.loginToken = "jwt-token"
	_, err := f.session.Login(context.Background(), entity.Credentials{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, f.session.Logout(context.Background()))
	_, stored, _ := f.tokens.Token(context.Background())
	assert.False(t, stored)
	assert.Equal(t, State{}, f.session.State())
	assert.Equal(t, RouteLogin, f.session.Router().Current())
	assert.Equal(t, RouteLogin, f.session.Router().Navigate(RouteMain), "main stays guarded after logout")
}

func TestNilGatewayIsUnavailable(t *testing.T) {
	t.Parallel()

	s := New(Deps{Logger: logging.Discard()})
	err := s.Register(context.Background(), entity.Credentials{})
	assert.Equal(t, apperrors.KindUnavailable, apperrors.KindOf(err))
}

func TestClaims(t *testing.T) {
	t.Parallel()

	expires := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"_id": "u1",
		"iat": expires.Add(-7 * 24 * time.Hour).Unix(),
		"exp": expires.Unix(),
	}).SignedString([]byte("server-secret"))
	require.NoError(t, err)

	f := newFixture(t)
	_, ok := f.session.Claims()
	assert.False(t, ok)

	f.auth.loginToken = token
	_, err = f.session.Login(context.Background(), entity.Credentials{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)

	claims, ok := f.session.Claims()
	require.True(t, ok)
	assert.Equal(t, entity.UserID("u1"), claims.UserID)
	assert.True(t, claims.ExpiresAt.Equal(expires))
	assert.False(t, claims.Expired(expires.Add(-time.Second)))
	assert.True(t, claims.Expired(expires))
}

func TestParseClaimsRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := ParseClaims("not-a-jwt")
	assert.Error(t, err)
}
