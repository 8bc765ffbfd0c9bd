package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// institutionalDomains are the email domains accepted at signup and on email
// updates. Accounts outside these domains are rejected before any state changes.
var institutionalDomains = []string{"@alumno.ipn.mx", "@ipn.mx"}

// v is the package-level singleton validator. It is initialised once at
// package load time. Any custom type registrations must be made during init()
// before the first call to Struct.
var v = validator.New()

func init() {
	_ = v.RegisterValidation("institutional_email", func(fl validator.FieldLevel) bool {
		email := strings.ToLower(fl.Field().String())
		for _, d := range institutionalDomains {
			if strings.HasSuffix(email, d) {
				return true
			}
		}
		return false
	})
}

// Struct validates the given struct using its validate tags.
// Returns a human-readable error string or nil.
func Struct(s interface{}) error {
	if err := v.Struct(s); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var msgs []string
		for _, fe := range ve {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}
