package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate rejects out-of-range thresholds.
func (s Settings) Validate() error {
	return validateStruct(s)
}

// Validate rejects an assignment without a title, a type or questions,
// or with malformed settings.
func (a Assignment) Validate() error {
	return validateStruct(a)
}

// ValidateScore rejects a percentage score outside 0..100.
func ValidateScore(score float64) error {
	if score < 0 || score > 100 {
		return fmt.Errorf("score %.2f out of range 0..100: %w", score, ErrInvalidInput)
	}
	return nil
}

// ValidateQuality rejects a recall quality outside 0..5.
func ValidateQuality(quality int) error {
	if quality < 0 || quality > 5 {
		return fmt.Errorf("quality %d out of range 0..5: %w", quality, ErrInvalidInput)
	}
	return nil
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validate: %w", err)
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		msgs = append(msgs, fmt.Sprintf("%s failed on %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%s: %w", strings.Join(msgs, ", "), ErrInvalidInput)
}
