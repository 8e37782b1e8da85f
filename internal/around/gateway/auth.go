package gateway

import (
	"context"
	"net/http"
	"strings"

	"github.com/5hraddha/around/internal/around/entity"
	apperrors "github.com/5hraddha/around/internal/platform/errors"
)

// DefaultAuthBaseURL is the public registration service.
const DefaultAuthBaseURL = "https://register.nomoreparties.co"

// Auth is the client for the registration and token service.
type Auth struct {
	t *transport
}

// NewAuth validates cfg and returns an auth client. An empty base URL uses
// DefaultAuthBaseURL.
func NewAuth(cfg Config) (*Auth, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultAuthBaseURL
	}
	t, err := newTransport(cfg, "gateway.auth")
	if err != nil {
		return nil, err
	}
	return &Auth{t: t}, nil
}

// Register creates an account. Only the status matters.
func (a *Auth) Register(ctx context.Context, creds entity.Credentials) error {
	body := credentialsBody{Email: creds.Email, Password: creds.Password}
	return a.t.do(ctx, "auth.register", http.MethodPost, "/signup", nil, body, nil)
}

// Login exchanges credentials for a token. A 2xx response without a token
// yields an empty string and no error.
func (a *Auth) Login(ctx context.Context, creds entity.Credentials) (string, error) {
	var out tokenBody
	body := credentialsBody{Email: creds.Email, Password: creds.Password}
	if err := a.t.do(ctx, "auth.login", http.MethodPost, "/signin", nil, body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Validate checks token and returns the email it belongs to.
func (a *Auth) Validate(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", apperrors.E(apperrors.KindInvalidInput, "auth.validate", "token is required")
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	var out validateBody
	if err := a.t.do(ctx, "auth.validate", http.MethodGet, "/users/me", header, nil, &out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.Data.Email) == "" {
		return "", apperrors.E(apperrors.KindMalformed, "auth.validate", "response without data.email")
	}
	return out.Data.Email, nil
}
