package dataset

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// statTextPattern is the only accepted shape for a record's display text.
var statTextPattern = regexp.MustCompile(`^\d+ out of \d+$`)

// ValidationError describes one failed constraint in the dataset document.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ValidationErrors aggregates every failed constraint from one validation pass.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(v))
	for _, err := range v {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("dataset: validation failed: %d error(s): [%s]", len(v), strings.Join(msgs, "; "))
}

// Unwrap marks validation failures as a kind of load failure.
func (v ValidationErrors) Unwrap() error { return ErrLoad }

// Validator checks a parsed dataset document against its schema.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a dataset validator with the stat_text rule registered.
func NewValidator() (*Validator, error) {
	v := validator.New()
	if err := v.RegisterValidation("stat_text", func(fl validator.FieldLevel) bool {
		return statTextPattern.MatchString(fl.Field().String())
	}); err != nil {
		return nil, fmt.Errorf("dataset: register stat_text rule: %w", err)
	}
	return &Validator{validate: v}, nil
}

// Validate returns nil for a well-formed dataset, or ValidationErrors listing
// every violated constraint.
func (v *Validator) Validate(ds *Dataset) error {
	err := v.validate.Struct(ds)
	if err == nil {
		return nil
	}
	var ferrs validator.ValidationErrors
	if !errors.As(err, &ferrs) {
		return fmt.Errorf("dataset: validate: %w", err)
	}
	out := make(ValidationErrors, 0, len(ferrs))
	for _, fe := range ferrs {
		out = append(out, ValidationError{
			Field:   fe.Namespace(),
			Message: describeRule(fe),
		})
	}
	return out
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "stat_text":
		return `must match "<integer> out of <integer>"`
	case "len", "alpha":
		return "key must be a two-letter state code"
	default:
		return fmt.Sprintf("failed %q constraint", fe.Tag())
	}
}
