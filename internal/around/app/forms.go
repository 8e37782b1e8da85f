package app

import "github.com/5hraddha/around/internal/around/form"

// ProfileField names the profile editor inputs.
type ProfileField string

const (
	ProfileName  ProfileField = "title"
	ProfileAbout ProfileField = "subtitle"
)

// AvatarField names the avatar editor input.
type AvatarField string

const AvatarLink AvatarField = "avatarlink"

// PlaceField names the add-place inputs.
type PlaceField string

const (
	PlaceName PlaceField = "name"
	PlaceLink PlaceField = "link"
)

// LoginField names the login form inputs.
type LoginField string

const (
	LoginEmail    LoginField = "login-email"
	LoginPassword LoginField = "login-password"
)

// RegisterField names the registration form inputs.
type RegisterField string

const (
	RegisterEmail    RegisterField = "register-email"
	RegisterPassword RegisterField = "register-password"
)

const minPasswordLength = 8

func profileRules() map[ProfileField]form.Constraint {
	return map[ProfileField]form.Constraint{
		ProfileName:  {Required: true, MinLength: 2, MaxLength: 40},
		ProfileAbout: {Required: true, MinLength: 2, MaxLength: 200},
	}
}

func avatarRules() map[AvatarField]form.Constraint {
	return map[AvatarField]form.Constraint{
		AvatarLink: {Required: true, Type: form.TypeURL},
	}
}

func placeRules() map[PlaceField]form.Constraint {
	return map[PlaceField]form.Constraint{
		PlaceName: {Required: true, MinLength: 1, MaxLength: 30},
		PlaceLink: {Required: true, Type: form.TypeURL},
	}
}

func loginRules() map[LoginField]form.Constraint {
	return map[LoginField]form.Constraint{
		LoginEmail:    {Required: true, Type: form.TypeEmail},
		LoginPassword: {Required: true, Type: form.TypePassword, MinLength: minPasswordLength},
	}
}

func registerRules() map[RegisterField]form.Constraint {
	return map[RegisterField]form.Constraint{
		RegisterEmail:    {Required: true, Type: form.TypeEmail},
		RegisterPassword: {Required: true, Type: form.TypePassword, MinLength: minPasswordLength},
	}
}

// Labels are the submit button captions while idle and while a request is
// in flight.
type Labels struct {
	Idle string
	Busy string
}

// Text picks the caption for the loading state.
func (l Labels) Text(loading bool) string {
	if loading {
		return l.Busy
	}
	return l.Idle
}

var (
	saveLabels     = Labels{Idle: "Save", Busy: "Saving"}
	createLabels   = Labels{Idle: "Create", Busy: "Creating"}
	deleteLabels   = Labels{Idle: "Yes", Busy: "Deleting"}
	registerLabels = Labels{Idle: "Sign up", Busy: "Signing up"}
	loginLabels    = Labels{Idle: "Log in", Busy: "Logging in"}
)
