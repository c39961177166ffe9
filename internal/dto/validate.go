package dto

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
)

// BcryptMaxBytes is the longest password bcrypt accepts.
const BcryptMaxBytes = 72

// validate is shared by all envelopes; *validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names so FieldError.Field matches what the client sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	// notblank: present and not only whitespace.
	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(err)
	}

	// bcryptmax: at most BcryptMaxBytes bytes of UTF-8.
	if err := v.RegisterValidation("bcryptmax", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= BcryptMaxBytes
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks the `validate` tags of the struct v and returns one
// FieldError per violated field, in the order the violations were detected
// (struct field order). It returns nil when v is valid.
//
// Messages are rendered in lang; unsupported languages fall back to the
// default catalog language.
func Validate(v any, lang language.Tag) []FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Message: translate(lang, "", "invalid", "")}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: translate(lang, fe.Field(), fe.Tag(), fe.Param()),
		})
	}
	return out
}
