package models

import (
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	cepPattern = regexp.MustCompile(`^\d{5}-?\d{3}$`)

	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator with the "cep" and "uf" tags registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("cep", func(fl validator.FieldLevel) bool {
			return cepPattern.MatchString(fl.Field().String())
		})
		_ = validate.RegisterValidation("uf", func(fl validator.FieldLevel) bool {
			v := fl.Field().String()
			return len(v) == 2 && strings.ToUpper(v) == v && IsRegionCode(v)
		})
	})
	return validate
}

// Validate checks the AddressComponents invariants.
func (c AddressComponents) Validate() error {
	return Validator().Struct(c)
}
