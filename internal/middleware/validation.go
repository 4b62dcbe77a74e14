package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/healthbridge/records-api/pkg/identifier"
)

// RegisterValidators installs the custom binding validators. It must run once
// at startup, before any request binding happens.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// recordid accepts the external PAT-/DOC- identifiers.
	if err := v.RegisterValidation("recordid", func(fl validator.FieldLevel) bool {
		return identifier.Valid(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return fld.Name
		}
		return name
	})
}
