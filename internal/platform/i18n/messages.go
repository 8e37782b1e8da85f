package i18n

// Message keys shared by forms, popups and the CLI.
const (
	KeyValueMissing  = "form.value_missing"
	KeyTooShort      = "form.too_short"
	KeyTooLong       = "form.too_long"
	KeyTypeEmail     = "form.type_email"
	KeyTypeURL       = "form.type_url"
	KeyInvalidValue  = "form.invalid_value"
	KeyFormInvalid   = "form.invalid"
	KeyTooltipOK     = "tooltip.register_success"
	KeyTooltipFailed = "tooltip.register_failure"
	KeyLoggedOut     = "session.logged_out"
	KeyNotLoggedIn   = "session.not_logged_in"
	KeyCardNotFound  = "store.card_not_found"
)

// catalogs maps locale -> key -> format string.
var catalogs = map[string]map[string]string{
	BaseLocale: {
		KeyValueMissing:  "Please fill out this field.",
		KeyTooShort:      "Please lengthen this text to %d characters or more (you are currently using %d characters).",
		KeyTooLong:       "Please shorten this text to %d characters or less (you are currently using %d characters).",
		KeyTypeEmail:     "Please enter an email address.",
		KeyTypeURL:       "Please enter a URL.",
		KeyInvalidValue:  "Please match the requested format.",
		KeyFormInvalid:   "Please correct the highlighted fields.",
		KeyTooltipOK:     "Success! You have now been registered.",
		KeyTooltipFailed: "Oops, something went wrong! Please try again.",
		KeyLoggedOut:     "You are logged out.",
		KeyNotLoggedIn:   "Please log in first.",
		KeyCardNotFound:  "No card with id %s.",
	},
	"pt-BR": {
		KeyValueMissing:  "Preencha este campo.",
		KeyTooShort:      "Aumente este texto para %d caracteres ou mais (você está usando %d caracteres).",
		KeyTooLong:       "Reduza este texto para %d caracteres ou menos (você está usando %d caracteres).",
		KeyTypeEmail:     "Insira um endereço de e-mail.",
		KeyTypeURL:       "Insira um URL.",
		KeyInvalidValue:  "Corresponda ao formato solicitado.",
		KeyFormInvalid:   "Corrija os campos destacados.",
		KeyTooltipOK:     "Sucesso! Seu cadastro foi concluído.",
		KeyTooltipFailed: "Ops, algo deu errado! Tente novamente.",
		KeyLoggedOut:     "Você saiu da conta.",
		KeyNotLoggedIn:   "Faça login primeiro.",
	},
}
