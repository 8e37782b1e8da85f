package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstraintTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rule Constraint
		want string
	}{
		{name: "text", rule: Constraint{Required: true, MinLength: 2, MaxLength: 40}, want: "required,min=2,max=40"},
		{name: "email", rule: Constraint{Required: true, Type: TypeEmail}, want: "required,email"},
		{name: "optional url", rule: Constraint{Type: TypeURL}, want: "omitempty,url"},
		{name: "password", rule: Constraint{Required: true, Type: TypePassword, MinLength: 8}, want: "required,min=8"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.rule.Tag())
		})
	}
}

func TestSchemaCheckMessages(t *testing.T) {
	t.Parallel()

	schema := NewSchema("en-US", map[field]Constraint{
		"title":  {Required: true, MinLength: 2, MaxLength: 5},
		"email":  {Required: true, Type: TypeEmail},
		"avatar": {Required: true, Type: TypeURL},
	})

	tests := []struct {
		name  string
		field field
		value string
		want  Validity
	}{
		{name: "missing", field: "title", value: "", want: Invalid("Please fill out this field.")},
		{name: "short", field: "title", value: "é", want: Invalid("Please lengthen this text to 2 characters or more (you are currently using 1 characters).")},
		{name: "long", field: "title", value: "abcdefg", want: Invalid("Please shorten this text to 5 characters or less (you are currently using 7 characters).")},
		{name: "ok", field: "title", value: "abc", want: Valid},
		{name: "bad email", field: "email", value: "a@", want: Invalid("Please enter an email address.")},
		{name: "good email", field: "email", value: "a@b.com", want: Valid},
		{name: "bad url", field: "avatar", value: "avatar.png", want: Invalid("Please enter a URL.")},
		{name: "good url", field: "avatar", value: "https://example.com/a.png", want: Valid},
		{name: "no rule", field: "other", value: "", want: Valid},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, schema.Check(tc.field, tc.value))
		})
	}
}

func TestSchemaLocalizesMessages(t *testing.T) {
	t.Parallel()

	schema := NewSchema("pt-BR", map[field]Constraint{"title": {Required: true}})
	assert.Equal(t, Invalid("Preencha este campo."), schema.Check("title", ""))

	rule, ok := schema.Constraint("title")
	assert.True(t, ok)
	assert.True(t, rule.Required)
}
