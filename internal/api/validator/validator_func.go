package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

const (
	referenceRegex = `^[A-Za-z0-9_.=-]{1,100}$`
)

const (
	ReferenceTag = "reference"
)

var referencePattern = regexp.MustCompile(referenceRegex)

var valid = map[string]func(fl validator.FieldLevel) bool{
	ReferenceTag: ValidateReference,
}

// ValidateReference accepts the characters the gateway allows in a
// transaction reference.
func ValidateReference(fl validator.FieldLevel) bool {
	return referencePattern.MatchString(fl.Field().String())
}
