// Package entity defines the card and profile records mirrored from the
// content service.
package entity

import (
	"slices"
	"time"
)

// UserID identifies a user on the content service.
type UserID string

// Card is a single photo place with ownership and like metadata.
//
// LikedBy is authoritative from the server; clients replace the whole card
// rather than editing it.
type Card struct {
	ID        string
	OwnerID   UserID
	Name      string
	ImageURL  string
	LikedBy   []UserID
	CreatedAt time.Time
}

// LikedByUser reports whether user appears in LikedBy.
func (c *Card) LikedByUser(user UserID) bool {
	if c == nil || user == "" {
		return false
	}
	return slices.Contains(c.LikedBy, user)
}

// LikeCount returns the number of distinct likers.
func (c *Card) LikeCount() int {
	if c == nil {
		return 0
	}
	seen := make(map[UserID]struct{}, len(c.LikedBy))
	for _, id := range c.LikedBy {
		seen[id] = struct{}{}
	}
	return len(seen)
}

// OwnedBy reports whether user created the card.
func (c *Card) OwnedBy(user UserID) bool {
	return c != nil && user != "" && c.OwnerID == user
}

// UserProfile is the signed-in user's public profile.
type UserProfile struct {
	ID        UserID
	Name      string
	About     string
	AvatarURL string
}

// ProfilePatch carries the editable profile text fields.
type ProfilePatch struct {
	Name  string
	About string
}

// Credentials are the email and password submitted to the auth service.
type Credentials struct {
	Email    string
	Password string
}
