package utils

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/upkeep-inc/upkeep/internal/shared/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(tagName)

	// gin validates binding tags with its own engine
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(tagName)
	}
}

// tagName reports json field names, falling back to yaml ones.
func tagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "" {
		name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
	}
	if name == "" {
		name = strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
	}
	if name == "-" {
		return ""
	}
	return name
}

// ValidateStruct validates s and folds every field failure into one
// ValidationError.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.NewValidationError("Validation failed", err.Error())
	}
	return errors.NewValidationError("Validation failed", joinFieldErrors(validationErrors))
}

// BindingError converts a gin ShouldBind failure (malformed JSON, bad
// query value or failed binding tag) into a ValidationError.
func BindingError(err error) error {
	var validationErrors validator.ValidationErrors
	if stderrors.As(err, &validationErrors) {
		return errors.NewValidationError("Invalid request", joinFieldErrors(validationErrors))
	}
	return errors.NewValidationError("Invalid request", err.Error())
}

func joinFieldErrors(validationErrors validator.ValidationErrors) string {
	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, fieldErrorMessage(fe))
	}
	return strings.Join(messages, "; ")
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must match layout %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation for '%s'", field, fe.Tag())
	}
}

// RequireNonBlank returns a ValidationError naming the first blank field.
// Fields are checked in the order given.
func RequireNonBlank(fields ...Field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return errors.NewValidationError(fmt.Sprintf("%s is required", f.Name))
		}
	}
	return nil
}

// Field pairs a field name with its submitted value.
type Field struct {
	Name  string
	Value string
}
