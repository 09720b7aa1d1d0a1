package util

import (
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"
)

var (
	usernameTag   = "username"
	usernameText  = "username must be 4-20 characters and contain only letters, digits or underscores"
	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{4,20}$`)

	passwordTag  = "password"
	passwordText = "password must be at least 8 characters with an uppercase letter, a lowercase letter and a digit, letters and digits only"

	notBlankTag  = "notblank"
	notBlankText = "{0} must not be blank"

	requiredTag  = "required"
	requiredText = "{0} is required"
)

var (
	validatorOnce sync.Once
	translator    ut.Translator
)

// InitValidators registers the custom tags and English messages on gin's validator.
// It is safe to call more than once.
func InitValidators() {
	validatorOnce.Do(func() {
		english := en.New()
		translator, _ = ut.New(english, english).GetTranslator("en")

		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = en_translations.RegisterDefaultTranslations(v, translator)

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, key := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})

		_ = v.RegisterValidation(usernameTag, func(fl validator.FieldLevel) bool {
			return ValidUsername(fl.Field().String())
		})
		_ = v.RegisterValidation(passwordTag, func(fl validator.FieldLevel) bool {
			return ValidPassword(fl.Field().String())
		})
		_ = v.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})

		registerTranslation(v, usernameTag, usernameText, false)
		registerTranslation(v, passwordTag, passwordText, false)
		registerTranslation(v, notBlankTag, notBlankText, false)
		registerTranslation(v, requiredTag, requiredText, true)
	})
}

func registerTranslation(v *validator.Validate, tag, text string, override bool) {
	_ = v.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, override) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

func ValidUsername(s string) bool {
	return usernameRegex.MatchString(s)
}

func ValidPassword(s string) bool {
	if len(s) < PasswordMinLen {
		return false
	}
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case r > unicode.MaxASCII:
			return false
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			return false
		}
	}
	return upper && lower && digit
}

// BindError converts a gin binding failure into a ValidationError with one entry per field.
func BindError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Err: "invalid request body"}
	}

	out := &ValidationError{Err: "invalid input"}
	for _, fe := range verrs {
		msg := fe.Error()
		if translator != nil {
			msg = fe.Translate(translator)
		}
		out.Add(fe.Field(), msg)
	}
	return out
}
