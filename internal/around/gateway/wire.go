package gateway

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/5hraddha/around/internal/around/entity"
	apperrors "github.com/5hraddha/around/internal/platform/errors"
)

// userRef decodes a user given either as an id string or as an object.
type userRef struct {
	ID string
}

func (r *userRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	var obj struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	r.ID = obj.ID
	return nil
}

type cardWire struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Link      string    `json:"link"`
	Owner     userRef   `json:"owner"`
	Likes     []userRef `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

// card maps w, rejecting a card without an id.
func (w cardWire) card(op string) (*entity.Card, error) {
	if strings.TrimSpace(w.ID) == "" {
		return nil, apperrors.E(apperrors.KindMalformed, op, "card without _id")
	}
	return w.entity(), nil
}

func (w cardWire) entity() *entity.Card {
	likes := make([]entity.UserID, 0, len(w.Likes))
	for _, like := range w.Likes {
		likes = append(likes, entity.UserID(like.ID))
	}
	return &entity.Card{
		ID:        w.ID,
		OwnerID:   entity.UserID(w.Owner.ID),
		Name:      w.Name,
		ImageURL:  w.Link,
		LikedBy:   likes,
		CreatedAt: w.CreatedAt,
	}
}

type userWire struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	About  string `json:"about"`
	Avatar string `json:"avatar"`
}

// profile maps w, rejecting a profile without an id.
func (w userWire) profile(op string) (*entity.UserProfile, error) {
	if strings.TrimSpace(w.ID) == "" {
		return nil, apperrors.E(apperrors.KindMalformed, op, "profile without _id")
	}
	return w.entity(), nil
}

func (w userWire) entity() *entity.UserProfile {
	return &entity.UserProfile{
		ID:        entity.UserID(w.ID),
		Name:      w.Name,
		About:     w.About,
		AvatarURL: w.Avatar,
	}
}

type profileBody struct {
	Name  string `json:"name"`
	About string `json:"about"`
}

type avatarBody struct {
	Avatar string `json:"avatar"`
}

type newCardBody struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenBody struct {
	Token string `json:"token"`
}

type validateBody struct {
	Data struct {
		ID    string `json:"_id"`
		Email string `json:"email"`
	} `json:"data"`
}
