package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/MKhiriev/study-marks/models"
)

// StructValidator implements [Validator] on top of go-playground/validator.
type StructValidator struct {
	v *validator.Validate
}

// NewStructValidator builds a validator with the custom tags registered and
// JSON names used in error messages.
func NewStructValidator() *StructValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("content_type", func(fl validator.FieldLevel) bool {
		return models.ContentType(fl.Field().String()).Valid()
	})

	return &StructValidator{v: v}
}

// Validate validates obj. When fields are given only those struct fields
// (Go names) are checked.
func (s *StructValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = s.v.StructPartialCtx(ctx, obj, fields...)
	} else {
		err = s.v.StructCtx(ctx, obj)
	}
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrors := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = friendlyMessage(e)
	}
	return &ValidationError{Fields: fieldErrors}
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "content_type":
		return "must be one of: " + contentTypeList()
	default:
		return "is invalid"
	}
}

func contentTypeList() string {
	names := make([]string, 0, len(models.ContentTypes))
	for _, c := range models.ContentTypes {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
