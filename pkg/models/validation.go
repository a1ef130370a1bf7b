package models

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Customization instruction bounds, counted in characters after trimming.
const (
	MinCustomizationLength = 10
	MaxCustomizationLength = 1000
)

// ValidationError reports input rejected before it reaches the service.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("customization", func(fl validator.FieldLevel) bool {
			return CustomizationLengthOK(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// CustomizationLength returns the counted length of an instruction.
func CustomizationLength(instruction string) int {
	return utf8.RuneCountInString(strings.TrimSpace(instruction))
}

// CustomizationLengthOK reports whether an instruction is within bounds.
func CustomizationLengthOK(instruction string) bool {
	n := CustomizationLength(instruction)
	return n >= MinCustomizationLength && n <= MaxCustomizationLength
}

// ValidateCustomization checks a customization request.
func ValidateCustomization(req CustomizationRequest) error {
	return convertValidationError(validatorInstance().Struct(req))
}

// ValidateCreatePrompt checks an upload request against the catalog limits.
func ValidateCreatePrompt(req CreatePromptRequest) error {
	return convertValidationError(validatorInstance().Struct(req))
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return NewValidationError("", err.Error(), err)
	}

	fe := verrs[0]
	field := jsonFieldName(fe.Field())
	if field == "customization_message" || (field == "prompt_id" && fe.Tag() == "required") {
		return customizationError(fe, err)
	}

	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "min":
		msg = fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		msg = fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		msg = fmt.Sprintf("failed %q validation", fe.Tag())
	}
	return NewValidationError(field, msg, err)
}

// customizationError words customization failures the way the detail view
// shows them.
func customizationError(fe validator.FieldError, err error) error {
	if fe.Field() == "PromptID" {
		return NewValidationError("prompt_id", "prompt ID not found", err)
	}
	msg := fmt.Sprintf("please enter at least %d characters for customization", MinCustomizationLength)
	if CustomizationLength(fmt.Sprint(fe.Value())) > MaxCustomizationLength {
		msg = fmt.Sprintf("customization cannot exceed %d characters", MaxCustomizationLength)
	}
	return NewValidationError("customization_message", msg, err)
}

var fieldNames = map[string]string{
	"Name":        "name",
	"Description": "description",
	"Category":    "category",
	"Prompt":      "prompt",
	"AuthorID":    "author_id",
	"PromptID":    "prompt_id",
	"Message":     "customization_message",
}

func jsonFieldName(field string) string {
	if name, ok := fieldNames[field]; ok {
		return name
	}
	return strings.ToLower(field)
}
