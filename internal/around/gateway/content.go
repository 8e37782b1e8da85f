package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/5hraddha/around/internal/around/entity"
	apperrors "github.com/5hraddha/around/internal/platform/errors"
)

// Content is the client for the cards and profile service.
type Content struct {
	t *transport
}

// NewContent validates cfg and returns a content client.
func NewContent(cfg Config) (*Content, error) {
	t, err := newTransport(cfg, "gateway.content")
	if err != nil {
		return nil, err
	}
	return &Content{t: t}, nil
}

// ListCards fetches every card.
func (c *Content) ListCards(ctx context.Context) ([]*entity.Card, error) {
	var wire []cardWire
	if err := c.t.do(ctx, "cards.list", http.MethodGet, "/cards", nil, nil, &wire); err != nil {
		return nil, err
	}
	cards := make([]*entity.Card, 0, len(wire))
	for _, w := range wire {
		card, err := w.card("cards.list")
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// GetProfile fetches the current user's profile.
func (c *Content) GetProfile(ctx context.Context) (*entity.UserProfile, error) {
	var wire userWire
	if err := c.t.do(ctx, "profile.get", http.MethodGet, "/users/me", nil, nil, &wire); err != nil {
		return nil, err
	}
	return wire.profile("profile.get")
}

// UpdateProfile saves name and about and returns the server's profile.
func (c *Content) UpdateProfile(ctx context.Context, patch entity.ProfilePatch) (*entity.UserProfile, error) {
	var wire userWire
	body := profileBody{Name: patch.Name, About: patch.About}
	if err := c.t.do(ctx, "profile.update", http.MethodPatch, "/users/me", nil, body, &wire); err != nil {
		return nil, err
	}
	return wire.profile("profile.update")
}

// UpdateAvatar saves the avatar URL and returns the server's profile.
func (c *Content) UpdateAvatar(ctx context.Context, avatarURL string) (*entity.UserProfile, error) {
	var wire userWire
	body := avatarBody{Avatar: avatarURL}
	if err := c.t.do(ctx, "profile.avatar", http.MethodPatch, "/users/me/avatar", nil, body, &wire); err != nil {
		return nil, err
	}
	return wire.profile("profile.avatar")
}

// AddCard creates a card and returns it as stored.
func (c *Content) AddCard(ctx context.Context, name, link string) (*entity.Card, error) {
	var wire cardWire
	body := newCardBody{Name: name, Link: link}
	if err := c.t.do(ctx, "cards.add", http.MethodPost, "/cards", nil, body, &wire); err != nil {
		return nil, err
	}
	return wire.card("cards.add")
}

// DeleteCard removes the card with id. Any 2xx response is success.
func (c *Content) DeleteCard(ctx context.Context, id string) error {
	path, err := cardPath("cards.delete", id, "")
	if err != nil {
		return err
	}
	return c.t.do(ctx, "cards.delete", http.MethodDelete, path, nil, nil, nil)
}

// SetLike likes the card when like is true and unlikes it otherwise,
// returning the server's card.
func (c *Content) SetLike(ctx context.Context, id string, like bool) (*entity.Card, error) {
	op, method := "cards.unlike", http.MethodDelete
	if like {
		op, method = "cards.like", http.MethodPut
	}
	path, err := cardPath(op, id, "/likes")
	if err != nil {
		return nil, err
	}
	var wire cardWire
	if err := c.t.do(ctx, op, method, path, nil, nil, &wire); err != nil {
		return nil, err
	}
	return wire.card(op)
}

func cardPath(op, id, suffix string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", apperrors.E(apperrors.KindInvalidInput, op, "card id is required")
	}
	return "/cards/" + url.PathEscape(id) + suffix, nil
}
