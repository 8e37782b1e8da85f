// Package store mirrors the server-held cards and profile in memory and
// reconciles them with server responses.
//
// Every operation is a single round trip. State changes only when a response
// arrives; a response that lands after its popup was dismissed still applies.
package store

import (
	"context"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/5hraddha/around/internal/around/entity"
	apperrors "github.com/5hraddha/around/internal/platform/errors"
	"github.com/5hraddha/around/internal/platform/i18n"
	"github.com/5hraddha/around/internal/platform/logging"
)

// Gateway is the content service boundary.
type Gateway interface {
	ListCards(ctx context.Context) ([]*entity.Card, error)
	GetProfile(ctx context.Context) (*entity.UserProfile, error)
	UpdateProfile(ctx context.Context, patch entity.ProfilePatch) (*entity.UserProfile, error)
	UpdateAvatar(ctx context.Context, avatarURL string) (*entity.UserProfile, error)
	AddCard(ctx context.Context, name, link string) (*entity.Card, error)
	DeleteCard(ctx context.Context, id string) error
	SetLike(ctx context.Context, id string, like bool) (*entity.Card, error)
}

// PopupCloser dismisses the popup that started an operation once it succeeds.
type PopupCloser interface {
	CloseAll()
}

// Snapshot is a read-only view of the store. Cards and Profile are shared
// with the store and must not be modified.
type Snapshot struct {
	Cards     []*entity.Card
	Profile   *entity.UserProfile
	Loading   bool
	LastError error
}

const errorBuffer = 16

// Store holds the card list and the current user's profile.
type Store struct {
	gw     Gateway
	popups PopupCloser
	log    *logrus.Entry

	mu      sync.RWMutex
	cards   []*entity.Card
	profile *entity.UserProfile
	loading bool
	lastErr error

	errs chan error

	subMu  sync.Mutex
	subSeq uint64
	subs   map[uint64]func(Snapshot)
}

// New returns an empty store. A nil gateway fails every call with
// KindUnavailable; a nil popup closer is ignored.
func New(gw Gateway, popups PopupCloser, log *logrus.Entry) *Store {
	if gw == nil {
		gw = unavailableGateway{}
	}
	return &Store{
		gw:      gw,
		popups:  popups,
		log:     logging.Component(log, "store"),
		profile: &entity.UserProfile{},
		errs:    make(chan error, errorBuffer),
		subs:    make(map[uint64]func(Snapshot)),
	}
}

// LoadInitialCards replaces the card list with the server's. On failure the
// list is left as it was.
func (s *Store) LoadInitialCards(ctx context.Context) error {
	return s.run(ctx, "cards.list", false, func(ctx context.Context) (func(), error) {
		cards, err := s.gw.ListCards(ctx)
		if err != nil {
			return nil, err
		}
		return func() { s.cards = slices.Clone(cards) }, nil
	})
}

// LoadProfile replaces the profile with the server's.
func (s *Store) LoadProfile(ctx context.Context) error {
	return s.run(ctx, "profile.get", false, func(ctx context.Context) (func(), error) {
		profile, err := s.gw.GetProfile(ctx)
		if err != nil {
			return nil, err
		}
		return func() { s.profile = profile }, nil
	})
}

// LoadAll loads cards and profile concurrently. Each load applies or fails on
// its own; the first error is returned.
func (s *Store) LoadAll(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return s.LoadInitialCards(ctx) })
	g.Go(func() error { return s.LoadProfile(ctx) })
	return g.Wait()
}

// AddCard creates a card and prepends the server's copy, replacing any
// entry that already carries its id.
func (s *Store) AddCard(ctx context.Context, name, link string) (*entity.Card, error) {
	var created *entity.Card
	err := s.run(ctx, "cards.add", true, func(ctx context.Context) (func(), error) {
		card, err := s.gw.AddCard(ctx, name, link)
		if err != nil {
			return nil, err
		}
		created = card
		return func() {
			cards := make([]*entity.Card, 0, len(s.cards)+1)
			cards = append(cards, card)
			for _, c := range s.cards {
				if c.ID != card.ID {
					cards = append(cards, c)
				}
			}
			s.cards = cards
		}, nil
	})
	return created, err
}

// DeleteCard deletes card on the server and drops the entry with its id. A
// card missing locally is reported on Errors, not returned.
func (s *Store) DeleteCard(ctx context.Context, card *entity.Card) error {
	if card == nil {
		return apperrors.E(apperrors.KindInvalidInput, "cards.delete", "card is required")
	}
	return s.run(ctx, "cards.delete", true, func(ctx context.Context) (func(), error) {
		if err := s.gw.DeleteCard(ctx, card.ID); err != nil {
			return nil, err
		}
		return func() {
			before := len(s.cards)
			s.cards = slices.DeleteFunc(slices.Clone(s.cards), func(c *entity.Card) bool {
				return c.ID == card.ID
			})
			if len(s.cards) == before {
				s.log.WithField("card_id", card.ID).Warn("deleted card was not in the list")
				s.recordLocked(apperrors.EK(apperrors.KindNotFound, "cards.delete", i18n.KeyCardNotFound, "no card with id "+card.ID))
			}
		}, nil
	})
}

// ToggleLike unlikes card when user already likes it and likes it otherwise,
// then swaps in the server's card. Other entries keep their identity.
func (s *Store) ToggleLike(ctx context.Context, card *entity.Card, user entity.UserID) (*entity.Card, error) {
	if card == nil {
		return nil, apperrors.E(apperrors.KindInvalidInput, "cards.like", "card is required")
	}
	liked := card.LikedByUser(user)
	op := "cards.like"
	if liked {
		op = "cards.unlike"
	}

	var updated *entity.Card
	err := s.run(ctx, op, false, func(ctx context.Context) (func(), error) {
		next, err := s.gw.SetLike(ctx, card.ID, !liked)
		if err != nil {
			return nil, err
		}
		updated = next
		return func() {
			cards := slices.Clone(s.cards)
			for i, c := range cards {
				if c.ID == card.ID {
					cards[i] = next
				}
			}
			s.cards = cards
		}, nil
	})
	return updated, err
}

// UpdateProfile saves patch and replaces the profile with the server's.
func (s *Store) UpdateProfile(ctx context.Context, patch entity.ProfilePatch) error {
	return s.run(ctx, "profile.update", true, func(ctx context.Context) (func(), error) {
		profile, err := s.gw.UpdateProfile(ctx, patch)
		if err != nil {
			return nil, err
		}
		return func() { s.profile = profile }, nil
	})
}

// UpdateAvatar saves avatarURL and replaces the profile with the server's.
func (s *Store) UpdateAvatar(ctx context.Context, avatarURL string) error {
	return s.run(ctx, "profile.avatar", true, func(ctx context.Context) (func(), error) {
		profile, err := s.gw.UpdateAvatar(ctx, avatarURL)
		if err != nil {
			return nil, err
		}
		return func() { s.profile = profile }, nil
	})
}

// Cards returns the current list, most recent first.
func (s *Store) Cards() []*entity.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.cards)
}

// Card returns the entry with id.
func (s *Store) Card(id string) (*entity.Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cards {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// Profile returns the current profile. It is replaced, never edited.
func (s *Store) Profile() *entity.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// CurrentUserID returns the profile's user id.
func (s *Store) CurrentUserID() entity.UserID {
	return s.Profile().ID
}

// Loading reports the shared loading flag.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastError returns the most recent failure, or nil.
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Errors delivers failures as they happen. Errors are dropped when nobody
// drains the channel.
func (s *Store) Errors() <-chan error {
	return s.errs
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe calls fn with a snapshot after every state change.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.subMu.Lock()
	s.subSeq++
	id := s.subSeq
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// run wraps one round trip: raise the loading flag, call, apply the result
// under lock, clear the flag whatever happened, and close the initiating popup
// on success.
func (s *Store) run(ctx context.Context, op string, closePopup bool, call func(context.Context) (func(), error)) error {
	done := s.Begin()
	defer done()

	apply, err := call(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"op":   op,
			"kind": apperrors.KindOf(err),
		}).WithError(err).Warn("content request failed")
		s.mu.Lock()
		s.recordLocked(err)
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.publish(snap)
		return err
	}

	s.mu.Lock()
	apply()
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(snap)

	if closePopup && s.popups != nil {
		s.popups.CloseAll()
	}
	s.log.WithField("op", op).Debug("content request applied")
	return nil
}

// Begin raises the shared loading flag and returns the func that clears it.
// The flag is one boolean for every operation, so the first operation to
// finish clears it even while others are still in flight.
func (s *Store) Begin() (done func()) {
	s.setLoading(true)
	return func() { s.setLoading(false) }
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(snap)
}

func (s *Store) recordLocked(err error) {
	s.lastErr = err
	select {
	case s.errs <- err:
	default:
		s.log.WithError(err).Debug("error channel full, dropping")
	}
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Cards:     slices.Clone(s.cards),
		Profile:   s.profile,
		Loading:   s.loading,
		LastError: s.lastErr,
	}
}

func (s *Store) publish(snap Snapshot) {
	s.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}
