package dataprep

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tgallego/stock-gains/internal/settings"
)

var validate = validator.New()

func init() {
	// Report violations under the configuration key, not the Go field name.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		tag := strings.Split(field.Tag.Get("yaml"), ",")[0]
		if tag == "" || tag == "-" {
			return field.Name
		}
		return tag
	})
}

// Settings drives one preparation run. Presence of every field is the
// loader's concern; Validate covers the value-level constraints.
type Settings struct {
	Target   string  `yaml:"target" validate:"required"`
	TestSize float64 `yaml:"test_size" validate:"gt=0,lt=1"`
	InPath   string  `yaml:"in_path" validate:"required"`
	OutTrain string  `yaml:"out_train" validate:"required"`
	OutTest  string  `yaml:"out_test" validate:"required"`
}

// Validate checks the loaded values against their constraints.
func (s Settings) Validate() error {
	return validateValues("preparation settings", s)
}

// WindowSettings drives one windowing run: the dataset is clipped to Span,
// keeping Warmup worth of history before its start.
type WindowSettings struct {
	InPath  string              `yaml:"in_path" validate:"required"`
	OutPath string              `yaml:"out_path" validate:"required"`
	Span    settings.Period     `yaml:"span"`
	Warmup  settings.DateOffset `yaml:"warmup"`
}

// Validate checks the loaded values against their constraints.
func (s WindowSettings) Validate() error {
	if err := validateValues("window settings", s); err != nil {
		return err
	}
	if s.Span.IsZero() {
		return errors.New("invalid window settings: span must cover a period")
	}
	return nil
}

// validateValues runs struct tag validation and flattens the result into one
// readable error.
func validateValues(what string, s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validate %s: %w", what, err)
	}

	parts := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		constraint := fieldErr.Tag()
		if param := fieldErr.Param(); param != "" {
			constraint += "=" + param
		}
		parts = append(parts, fmt.Sprintf("%s must satisfy %s", fieldErr.Field(), constraint))
	}
	return fmt.Errorf("invalid %s: %s", what, strings.Join(parts, "; "))
}
