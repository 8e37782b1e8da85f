package store

import (
	"context"

	"github.com/5hraddha/around/internal/around/entity"
	apperrors "github.com/5hraddha/around/internal/platform/errors"
)

type unavailableGateway struct{}

func unavailable(op string) error {
	return apperrors.E(apperrors.KindUnavailable, op, "content gateway is not configured")
}

func (unavailableGateway) ListCards(context.Context) ([]*entity.Card, error) {
	return nil, unavailable("cards.list")
}

func (unavailableGateway) GetProfile(context.Context) (*entity.UserProfile, error) {
	return nil, unavailable("profile.get")
}

func (unavailableGateway) UpdateProfile(context.Context, entity.ProfilePatch) (*entity.UserProfile, error) {
	return nil, unavailable("profile.update")
}

func (unavailableGateway) UpdateAvatar(context.Context, string) (*entity.UserProfile, error) {
	return nil, unavailable("profile.avatar")
}

func (unavailableGateway) AddCard(context.Context, string, string) (*entity.Card, error) {
	return nil, unavailable("cards.add")
}

func (unavailableGateway) DeleteCard(context.Context, string) error {
	return unavailable("cards.delete")
}

func (unavailableGateway) SetLike(context.Context, string, bool) (*entity.Card, error) {
	return nil, unavailable("cards.like")
}
