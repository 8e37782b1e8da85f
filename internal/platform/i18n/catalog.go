// Package i18n provides localized user-facing copy for the around client.
//
// Messages are compiled into the binary per locale and registered with
// golang.org/x/text/message so callers format through a message.Printer.
package i18n

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// BaseLocale is the canonical source locale for catalogs.
const BaseLocale = "en-US"

var (
	registerOnce sync.Once
	matcher      language.Matcher
	supported    []language.Tag
)

// Register installs every compiled catalog into the x/text message catalog.
// It is safe to call repeatedly.
func Register() {
	registerOnce.Do(func() {
		locales := Locales()
		supported = make([]language.Tag, 0, len(locales))
		for _, locale := range locales {
			tag := language.MustParse(locale)
			supported = append(supported, tag)
			for key, value := range catalogs[locale] {
				_ = message.SetString(tag, key, value)
			}
		}
		matcher = language.NewMatcher(supported)
	})
}

// Locales returns the compiled locales with the base locale first.
func Locales() []string {
	out := make([]string, 0, len(catalogs))
	for locale := range catalogs {
		if locale != BaseLocale {
			out = append(out, locale)
		}
	}
	sort.Strings(out)
	return append([]string{BaseLocale}, out...)
}

// ResolveTag matches a requested locale against the compiled catalogs.
// Unknown or blank locales resolve to BaseLocale.
func ResolveTag(locale string) language.Tag {
	Register()
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return supported[0]
	}
	requested, err := language.Parse(locale)
	if err != nil {
		return supported[0]
	}
	_, index, confidence := matcher.Match(requested)
	if confidence == language.No {
		return supported[0]
	}
	return supported[index]
}

// Printer returns a message printer for locale.
func Printer(locale string) *message.Printer {
	return message.NewPrinter(ResolveTag(locale))
}

// Localize formats key through p and falls back to the base catalog when the
// printer has no translation.
func Localize(p *message.Printer, key string, args ...any) string {
	if p != nil {
		// Missing translations echo the key back.
		value := strings.TrimSpace(p.Sprintf(key, args...))
		if value != "" && !strings.HasPrefix(value, key) {
			return value
		}
	}
	fallback, ok := catalogs[BaseLocale][key]
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(fallback, args...)
	}
	return fallback
}
