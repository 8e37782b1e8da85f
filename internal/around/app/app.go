// Package app composes the form engine, popup orchestrator, entity store and
// auth session into the operations a user drives from the page.
package app

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/5hraddha/around/internal/around/entity"
	"github.com/5hraddha/around/internal/around/form"
	"github.com/5hraddha/around/internal/around/popup"
	"github.com/5hraddha/around/internal/around/schedule"
	"github.com/5hraddha/around/internal/around/session"
	"github.com/5hraddha/around/internal/around/storage"
	"github.com/5hraddha/around/internal/around/store"
	apperrors "github.com/5hraddha/around/internal/platform/errors"
	"github.com/5hraddha/around/internal/platform/i18n"
	"github.com/5hraddha/around/internal/platform/logging"
)

// DefaultViewportWidth is the width assumed before any resize arrives.
const DefaultViewportWidth = 1280

// Deps wires an App.
type Deps struct {
	Content   store.Gateway
	Auth      session.AuthGateway
	Tokens    storage.TokenStore
	Scheduler schedule.Scheduler
	Locale    string
	Logger    *logrus.Entry
}

// App is the client controller.
type App struct {
	Popups  *popup.Orchestrator
	Store   *store.Store
	Session *session.Session
	Header  *Header

	Profile  *FormModal[ProfileField]
	Avatar   *FormModal[AvatarField]
	AddPlace *FormModal[PlaceField]

	Login    *form.Form[LoginField]
	Register *form.Form[RegisterField]

	locale string
	log    *logrus.Entry
}

// New builds an App around deps.
func New(deps Deps) *App {
	log := deps.Logger
	if log == nil {
		log = logging.Discard()
	}
	locale := strings.TrimSpace(deps.Locale)
	if locale == "" {
		locale = i18n.BaseLocale
	}

	popups := popup.New(popup.NewBus(), deps.Scheduler, log)
	entities := store.New(deps.Content, popups, log)
	a := &App{
		Popups: popups,
		Store:  entities,
		Session: session.New(session.Deps{
			Gateway:  deps.Auth,
			Tokens:   deps.Tokens,
			Tooltips: popups,
			Busy:     entities,
			Logger:   log,
		}),
		Header: NewHeader(deps.Scheduler, DefaultViewportWidth),
		Login: form.New(LoginEmail, LoginPassword).
			WithValidator(form.NewSchema(locale, loginRules())),
		Register: form.New(RegisterEmail, RegisterPassword).
			WithValidator(form.NewSchema(locale, registerRules())),
		locale: locale,
		log:    logging.Component(log, "app"),
	}

	a.Profile = newFormModal(locale, popups, modalConfig[ProfileField]{
		kind:   popup.KindProfile,
		op:     "profile.update",
		fields: []ProfileField{ProfileName, ProfileAbout},
		rules:  profileRules(),
		labels: saveLabels,
		initial: func() map[ProfileField]string {
			profile := entities.Profile()
			return map[ProfileField]string{ProfileName: profile.Name, ProfileAbout: profile.About}
		},
		submit: func(ctx context.Context, v map[ProfileField]string) error {
			return entities.UpdateProfile(ctx, entity.ProfilePatch{Name: v[ProfileName], About: v[ProfileAbout]})
		},
	})
	a.Avatar = newFormModal(locale, popups, modalConfig[AvatarField]{
		kind:    popup.KindAvatar,
		op:      "profile.avatar",
		fields:  []AvatarField{AvatarLink},
		rules:   avatarRules(),
		labels:  saveLabels,
		initial: func() map[AvatarField]string { return map[AvatarField]string{AvatarLink: ""} },
		submit: func(ctx context.Context, v map[AvatarField]string) error {
			return entities.UpdateAvatar(ctx, v[AvatarLink])
		},
	})
	a.AddPlace = newFormModal(locale, popups, modalConfig[PlaceField]{
		kind:   popup.KindAddPlace,
		op:     "cards.add",
		fields: []PlaceField{PlaceName, PlaceLink},
		rules:  placeRules(),
		labels: createLabels,
		initial: func() map[PlaceField]string {
			return map[PlaceField]string{PlaceName: "", PlaceLink: ""}
		},
		submit: func(ctx context.Context, v map[PlaceField]string) error {
			_, err := entities.AddCard(ctx, v[PlaceName], v[PlaceLink])
			return err
		},
	})

	resetForm(a.Login, nil)
	resetForm(a.Register, nil)
	return a
}

// Start restores the session from the stored token and loads the cards and
// profile. Failures are logged and leave the empty state in place.
func (a *App) Start(ctx context.Context) {
	a.Session.ValidateOnStartup(ctx)
	if err := a.Store.LoadAll(ctx); err != nil {
		a.log.WithField("kind", apperrors.KindOf(err)).Warn("initial load incomplete")
	}
}

// Close stops timers and detaches listeners.
func (a *App) Close() {
	a.Header.Stop()
	a.Popups.Shutdown()
}

// Loading reports the shared loading flag.
func (a *App) Loading() bool { return a.Store.Loading() }

// ShowCard opens the preview for the card with id.
func (a *App) ShowCard(id string) error {
	card, err := a.card("cards.preview", id)
	if err != nil {
		return err
	}
	return a.Popups.OpenPreview(card)
}

// AskDelete opens the delete confirmation for the card with id.
func (a *App) AskDelete(id string) error {
	card, err := a.card("cards.delete", id)
	if err != nil {
		return err
	}
	return a.Popups.OpenDeleteConfirm(card)
}

// ConfirmDelete deletes the card bound to the open confirmation.
func (a *App) ConfirmDelete(ctx context.Context) error {
	state := a.Popups.State()
	if !state.IsOpen(popup.KindDeleteConfirm) || state.Card == nil {
		return apperrors.E(apperrors.KindInvalidInput, "cards.delete", "no card is awaiting confirmation")
	}
	return a.Store.DeleteCard(ctx, state.Card)
}

// DeleteLabel is the confirmation button caption.
func (a *App) DeleteLabel() string { return deleteLabels.Text(a.Loading()) }

// ToggleLike flips the current user's like on the card with id.
func (a *App) ToggleLike(ctx context.Context, id string) (*entity.Card, error) {
	card, err := a.card("cards.like", id)
	if err != nil {
		return nil, err
	}
	return a.Store.ToggleLike(ctx, card, a.Store.CurrentUserID())
}

// ShowLogin resets the login form and navigates to it.
func (a *App) ShowLogin() session.Route {
	resetForm(a.Login, nil)
	return a.Session.Router().Navigate(session.RouteLogin)
}

// ShowRegister resets the registration form and navigates to it.
func (a *App) ShowRegister() session.Route {
	resetForm(a.Register, nil)
	return a.Session.Router().Navigate(session.RouteRegister)
}

// SubmitLogin logs in with the login form. On success the email becomes the
// session email and both fields are cleared.
func (a *App) SubmitLogin(ctx context.Context) (bool, error) {
	if err := validateForm("auth.login", a.Login, a.invalidText()); err != nil {
		return false, err
	}
	ok, err := a.Session.Login(ctx, entity.Credentials{
		Email:    a.Login.Value(LoginEmail),
		Password: a.Login.Value(LoginPassword),
	})
	if ok {
		resetForm(a.Login, nil)
	}
	return ok, err
}

// LoginLabel is the login button caption.
func (a *App) LoginLabel() string { return loginLabels.Text(a.Loading()) }

// SubmitRegister registers with the registration form.
func (a *App) SubmitRegister(ctx context.Context) error {
	if err := validateForm("auth.register", a.Register, a.invalidText()); err != nil {
		return err
	}
	return a.Session.Register(ctx, entity.Credentials{
		Email:    a.Register.Value(RegisterEmail),
		Password: a.Register.Value(RegisterPassword),
	})
}

// RegisterLabel is the sign-up button caption.
func (a *App) RegisterLabel() string { return registerLabels.Text(a.Loading()) }

// Logout ends the session.
func (a *App) Logout(ctx context.Context) error {
	a.Popups.CloseAll()
	return a.Session.Logout(ctx)
}

// HeaderView renders the header for the current session and route.
func (a *App) HeaderView() HeaderView {
	state := a.Session.State()
	return a.Header.View(state.LoggedIn, state.Email, a.Session.Router().Current())
}

// TooltipText is the localized message for the result tooltip.
func (a *App) TooltipText(success bool) string {
	key := i18n.KeyTooltipFailed
	if success {
		key = i18n.KeyTooltipOK
	}
	return i18n.Localize(i18n.Printer(a.locale), key)
}

func (a *App) card(op, id string) (*entity.Card, error) {
	card, ok := a.Store.Card(strings.TrimSpace(id))
	if !ok {
		return nil, apperrors.EK(apperrors.KindNotFound, op, i18n.KeyCardNotFound,
			i18n.Localize(i18n.Printer(a.locale), i18n.KeyCardNotFound, id))
	}
	return card, nil
}

func (a *App) invalidText() string {
	return i18n.Localize(i18n.Printer(a.locale), i18n.KeyFormInvalid)
}
