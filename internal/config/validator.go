package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// SM-2 treats a quality below minRecallQuality as a lapse.
const (
	minRecallQuality = 3
	maxQuality       = 5
)

type customValidation struct {
	tag     string
	fn      validator.Func
	message string
}

var customValidations = []customValidation{
	{tag: "file", fn: isFileReadable, message: "{0} must be an existing and readable file"},
	{tag: "recall", fn: isRecallQuality, message: "{0} must be a passing recall quality (3 to 5)"},
	{tag: "lapse", fn: isLapseQuality, message: "{0} must be a failing recall quality (0 to 2)"},
}

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	// Report fields by their config key.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	for _, v := range customValidations {
		if err := registerValidation(validate, trans, v); err != nil {
			return nil, nil, err
		}
	}
	return validate, trans, nil
}

func registerValidation(validate *validator.Validate, trans ut.Translator, v customValidation) error {
	if err := validate.RegisterValidation(v.tag, v.fn); err != nil {
		return fmt.Errorf("failed to register %s validation: %w", v.tag, err)
	}
	if err := validate.RegisterTranslation(v.tag, trans, func(ut ut.Translator) error {
		return ut.Add(v.tag, v.message, true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T(v.tag, strings.TrimPrefix(fe.Namespace(), "Config."))
		return t
	}); err != nil {
		return fmt.Errorf("failed to register %s translation: %w", v.tag, err)
	}
	return nil
}

func isFileReadable(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode().Perm()&0o400 != 0
}

func isRecallQuality(fl validator.FieldLevel) bool {
	q := fl.Field().Int()
	return q >= minRecallQuality && q <= maxQuality
}

func isLapseQuality(fl validator.FieldLevel) bool {
	q := fl.Field().Int()
	return q >= 0 && q < minRecallQuality
}
