package dto

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// SupportedLocales lists the languages validation messages are available in.
// The first entry is the default.
var SupportedLocales = []language.Tag{language.Russian, language.English}

var localeMatcher = language.NewMatcher(SupportedLocales)

// MatchLocale picks the supported locale that best fits an Accept-Language
// header value. An empty, malformed or unsupported header yields def.
func MatchLocale(acceptLanguage string, def language.Tag) language.Tag {
	if strings.TrimSpace(acceptLanguage) == "" {
		return def
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return def
	}
	_, idx, conf := localeMatcher.Match(tags...)
	if conf == language.No {
		return def
	}
	return SupportedLocales[idx]
}

// ParseLocale parses a configured locale name ("ru", "en-US", ...) and maps it
// to a supported one.
func ParseLocale(s string) (language.Tag, error) {
	t, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return language.Und, err
	}
	_, idx, _ := localeMatcher.Match(t)
	return SupportedLocales[idx], nil
}

type localized struct {
	ru, en string
}

// fieldMessages hold the wording for a specific (field, rule) pair, keyed
// "<field>.<rule>". They take no arguments.
var fieldMessages = map[string]localized{
	"usernameOrEmail.notblank": {"Логин или email не могут быть пустыми", "Username or email must not be blank"},
	"password.notblank":        {"Пароль не может быть пустым", "Password must not be blank"},
	"password.min":             {"Пароль должен содержать не менее 8 символов", "Password must be at least 8 characters long"},
	"password.bcryptmax":       {"Пароль не должен превышать 72 байта (около 36 символов кириллицы)", "Password must not exceed 72 bytes"},
	"username.notblank":        {"Имя пользователя не может быть пустым", "Username must not be blank"},
	"username.excludes":        {"Имя пользователя не может содержать символ @", "Username must not contain @"},
	"email.notblank":           {"Email не может быть пустым", "Email must not be blank"},
	"email.email":              {"Некорректный email", "Email is not a valid address"},
	"ids.min":                  {"Список идентификаторов не может быть пустым", "ids must not be empty"},
	"displayNames.min":         {"Список имён не может быть пустым", "displayNames must not be empty"},
}

// ruleMessages are the generic fallbacks per rule, keyed "rule.<rule>".
// Entries with a %s verb receive the rule parameter.
var ruleMessages = map[string]localized{
	"rule.notblank":  {"Поле не может быть пустым", "must not be blank"},
	"rule.required":  {"Поле обязательно", "is required"},
	"rule.email":     {"Некорректный email", "must be a valid email address"},
	"rule.min":       {"Значение слишком короткое (минимум %s)", "is too short (minimum %s)"},
	"rule.max":       {"Значение слишком длинное (максимум %s)", "is too long (maximum %s)"},
	"rule.bcryptmax": {"Значение слишком длинное (максимум 72 байта)", "is too long (maximum 72 bytes)"},
	"rule.excludes":  {"Значение содержит недопустимый символ %s", "must not contain %s"},
	"rule.invalid":   {"Некорректное значение", "is invalid"},
}

var messages = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(SupportedLocales[0]))
	for _, set := range []map[string]localized{fieldMessages, ruleMessages} {
		for key, m := range set {
			if err := b.SetString(language.Russian, key, m.ru); err != nil {
				panic(err)
			}
			if err := b.SetString(language.English, key, m.en); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// translate renders the message for a failed rule on field.
func translate(lang language.Tag, field, rule, param string) string {
	p := message.NewPrinter(lang, message.Catalog(messages))

	if _, ok := fieldMessages[field+"."+rule]; ok {
		return p.Sprintf(field + "." + rule)
	}
	key := "rule." + rule
	m, ok := ruleMessages[key]
	if !ok {
		return p.Sprintf("rule.invalid")
	}
	if strings.Contains(m.ru, "%s") {
		return p.Sprintf(key, param)
	}
	return p.Sprintf(key)
}
