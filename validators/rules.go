// Package validators holds the validation engine shared by the HTTP validators
// and the service layer.
package validators

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var lettersAndSpaces = regexp.MustCompile(`^[A-Za-z\s]+$`)

// Validate is the shared validator instance with the custom tags registered
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report json names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("alphaspace", func(fl validator.FieldLevel) bool {
		return IsLettersAndSpaces(fl.Field().String())
	})
	_ = v.RegisterValidation("percent", func(fl validator.FieldLevel) bool {
		_, ok := ParsePercent(fl.Field().String())
		return ok
	})
	return v
}

// ParsePercent parses a decimal percentage in [0,100]
func ParsePercent(value string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || f < 0 || f > 100 {
		return 0, false
	}
	return f, true
}

// IsLettersAndSpaces applies the alphaspace rule to a single value
func IsLettersAndSpaces(value string) bool {
	return strings.TrimSpace(value) != "" && lettersAndSpaces.MatchString(value)
}

var messages = map[string]string{
	"required":   "is required",
	"alphaspace": "only letters and spaces are allowed",
	"percent":    "must be a number between 0 and 100",
	"gt":         "must be greater than %s",
	"gte":        "must be at least %s",
	"min":        "must be at least %s characters",
	"max":        "must be at most %s characters",
}

// FieldErrors turns a validator error into a field -> message map.
// Errors that are not validation errors yield nil.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		if strings.Contains(msg, "%s") {
			msg = strings.Replace(msg, "%s", fe.Param(), 1)
		}
		out[fe.Field()] = msg
	}
	return out
}

// HasTag reports whether any failed rule in err used tag
func HasTag(err error, tag string) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, fe := range verrs {
		if fe.Tag() == tag {
			return true
		}
	}
	return false
}
