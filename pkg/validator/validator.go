package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
	apperrors "github.com/Maxfurry/Hospital-Managment-Software/pkg/errors"
)

// Validator checks request payloads before any side effect.
type Validator interface {
	Validate(interface{}) error
}

type validator struct {
	v *playground.Validate
}

func New() Validator {
	v := playground.New()

	// Report fields by their JSON name so messages match the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("role", func(fl playground.FieldLevel) bool {
		_, err := model.ParseRole(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}

	return &validator{v: v}
}

// Validate returns a validation AppError describing the first violated
// constraint, or nil.
func (v *validator) Validate(obj interface{}) error {
	if obj == nil {
		return apperrors.Validation("request body is required")
	}

	err := v.v.Struct(obj)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return apperrors.Validation(describe(fieldErrs[0]))
	}
	return apperrors.Validation(err.Error())
}

func describe(e playground.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "uuid":
		return fmt.Sprintf("%s is required or Invalid", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, e.Param())
	case "role":
		return fmt.Sprintf("%s must be one of [ADMIN STAFF DOCTOR NURSE]", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
