package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Default values.
const (
	DefaultDataFile     = "tasks.json"
	DefaultTaskPriority = 3
)

// Config holds the full configuration for taskdeck.
type Config struct {
	// Task file location and encoding. An empty data_format means
	// "infer from the file extension".
	DataFile   string `toml:"data_file" validate:"required"`
	DataFormat string `toml:"data_format" validate:"omitempty,oneof=json yaml yml"`

	// Priority assigned by add when -priority is omitted
	DefaultPriority int `toml:"default_priority" validate:"min=1,max=5"`

	// Output
	Color string `toml:"color" validate:"oneof=auto always never"`

	// Logging configuration
	LogLevel      string `toml:"log_level" validate:"oneof=debug info warn error fatal"`
	LogFormat     string `toml:"log_format" validate:"oneof=text json logfmt"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Directory relative paths resolve against (computed)
	WorkDir string `toml:"-"`
}

var validate = newValidator()

// newValidator builds a validator that reports fields by their toml
// key, so error messages match what the user wrote in the config file.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.Split(field.Tag.Get("toml"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the merged configuration after all sources are
// applied.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s must be set", fe.Field())
	case "oneof":
		return fmt.Errorf("invalid %s %q, must be one of: %s",
			fe.Field(), fmt.Sprint(fe.Value()), strings.Join(strings.Fields(fe.Param()), ", "))
	case "min":
		return fmt.Errorf("invalid %s %v, must be at least %s", fe.Field(), fe.Value(), fe.Param())
	case "max":
		return fmt.Errorf("invalid %s %v, must be at most %s", fe.Field(), fe.Value(), fe.Param())
	}
	return fmt.Errorf("invalid %s: fails %s check", fe.Field(), fe.Tag())
}
