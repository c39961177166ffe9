package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLoginRequest_Validate_BlankUsername(t *testing.T) {
	fes := LoginRequest{UsernameOrEmail: "", Password: "secret"}.Validate(language.Russian)

	require.Equal(t, []FieldError{
		{Field: "usernameOrEmail", Message: "Логин или email не могут быть пустыми"},
	}, fes)
}

func TestLoginRequest_Validate_OneErrorPerBlankField(t *testing.T) {
	cases := []struct {
		name   string
		req    LoginRequest
		fields []string
	}{
		{"valid", LoginRequest{UsernameOrEmail: "alina", Password: "secret"}, nil},
		{"blank password", LoginRequest{UsernameOrEmail: "alina", Password: ""}, []string{"password"}},
		{"whitespace only", LoginRequest{UsernameOrEmail: " \t ", Password: "x"}, []string{"usernameOrEmail"}},
		{"both blank", LoginRequest{}, []string{"usernameOrEmail", "password"}},
		{"both whitespace", LoginRequest{UsernameOrEmail: " ", Password: "  "}, []string{"usernameOrEmail", "password"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fes := tc.req.Validate(language.Russian)
			require.Len(t, fes, len(tc.fields))
			for i, f := range tc.fields {
				assert.Equal(t, f, fes[i].Field)
				assert.NotEmpty(t, fes[i].Message)
			}
		})
	}
}

func TestLoginRequest_Validate_English(t *testing.T) {
	fes := LoginRequest{}.Validate(language.English)
	require.Len(t, fes, 2)
	assert.Equal(t, "Username or email must not be blank", fes[0].Message)
	assert.Equal(t, "Password must not be blank", fes[1].Message)
}

func TestRegisterRequest_Validate(t *testing.T) {
	valid := RegisterRequest{Username: "alina", Email: "alina@example.com", Password: "long-enough"}
	assert.Nil(t, valid.Validate(language.Russian))

	fes := RegisterRequest{Username: "", Email: "not-an-email", Password: "short"}.Validate(language.English)
	require.Len(t, fes, 3)
	assert.Equal(t, FieldError{Field: "username", Message: "Username must not be blank"}, fes[0])
	assert.Equal(t, FieldError{Field: "email", Message: "Email is not a valid address"}, fes[1])
	assert.Equal(t, FieldError{Field: "password", Message: "Password must be at least 8 characters long"}, fes[2])
}

func TestRegisterRequest_Validate_GenericRuleMessage(t *testing.T) {
	long := make([]byte, 121)
	for i := range long {
		long[i] = 'a'
	}
	req := RegisterRequest{Username: "alina", Email: "a@example.com", Password: "long-enough", DisplayName: string(long)}

	fes := req.Validate(language.English)
	require.Len(t, fes, 1)
	assert.Equal(t, "displayName", fes[0].Field)
	assert.Equal(t, "is too long (maximum 120)", fes[0].Message)
}

func TestBulkRenameRequest_Validate(t *testing.T) {
	assert.Nil(t, BulkRenameRequest{IDs: []string{"a"}, DisplayNames: []string{"A", "B"}}.Validate(language.English))

	fes := BulkRenameRequest{}.Validate(language.English)
	require.Len(t, fes, 2)
	assert.Equal(t, "ids", fes[0].Field)
	assert.Equal(t, "displayNames", fes[1].Field)
}

func TestValidate_NonStruct(t *testing.T) {
	fes := Validate("nope", language.English)
	require.Len(t, fes, 1)
	assert.Equal(t, "body", fes[0].Field)
	assert.Equal(t, "is invalid", fes[0].Message)
}

func TestMatchLocale(t *testing.T) {
	cases := []struct {
		header string
		def    language.Tag
		want   language.Tag
	}{
		{"", language.Russian, language.Russian},
		{"", language.English, language.English},
		{"en-US,en;q=0.9", language.Russian, language.English},
		{"ru-RU", language.English, language.Russian},
		{"fr", language.English, language.English},
		{"de-DE", language.English, language.English},
		{"fr", language.Russian, language.Russian},
		{"fr-FR,en;q=0.5", language.Russian, language.English},
		{";;;", language.English, language.English},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MatchLocale(tc.header, tc.def), "header %q def %v", tc.header, tc.def)
	}
}

func TestRegisterRequest_Validate_PasswordByteLimit(t *testing.T) {
	base := RegisterRequest{Username: "alina", Email: "alina@example.com"}

	// 36 Cyrillic letters are exactly 72 bytes.
	base.Password = strings.Repeat("п", 36)
	assert.Nil(t, base.Validate(language.Russian))

	base.Password = strings.Repeat("п", 40)
	fes := base.Validate(language.Russian)
	require.Len(t, fes, 1)
	assert.Equal(t, "password", fes[0].Field)
	assert.Contains(t, fes[0].Message, "72 байта")

	base.Password = strings.Repeat("a", 73)
	fes = base.Validate(language.English)
	require.Len(t, fes, 1)
	assert.Equal(t, FieldError{Field: "password", Message: "Password must not exceed 72 bytes"}, fes[0])
}

func TestRegisterRequest_Validate_UsernameWithoutAt(t *testing.T) {
	req := RegisterRequest{Username: "victim@example.com", Email: "squatter@example.com", Password: "long-enough"}

	fes := req.Validate(language.English)
	require.Len(t, fes, 1)
	assert.Equal(t, FieldError{Field: "username", Message: "Username must not contain @"}, fes[0])

	fes = req.Validate(language.Russian)
	require.Len(t, fes, 1)
	assert.Equal(t, "Имя пользователя не может содержать символ @", fes[0].Message)
}

func TestParseLocale(t *testing.T) {
	tag, err := ParseLocale("en-GB")
	require.NoError(t, err)
	assert.Equal(t, language.English, tag)

	tag, err = ParseLocale("ru")
	require.NoError(t, err)
	assert.Equal(t, language.Russian, tag)

	_, err = ParseLocale("??")
	assert.Error(t, err)
}
