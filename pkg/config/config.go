package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

var validate = validator.New()

// O is a configuration object represented as a nested map.
// It provides methods for accessing configuration values using dot-notation paths.
type O map[string]any

// Get retrieves a value at the given dot-notation path.
// Returns the value and true if found, or nil and false if the path doesn't exist.
func (this O) Get(path string) (any, bool) {
	parts := strings.Split(path, ".")
	var current any = this

	for _, p := range parts {
		m, ok := current.(O)
		if !ok {
			m, ok = current.(map[string]any)
			if !ok {
				return nil, false
			}
		}
		current, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// GetString retrieves a value at the given path and returns it as a string.
// Returns an empty string if the key doesn't exist.
func (this O) GetString(path string) string {
	v, ok := this.Get(path)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// GetStringOrDefault retrieves a value at the given path and returns it as a
// string, or the provided default if the key doesn't exist.
func (this O) GetStringOrDefault(path string, defaultValue string) string {
	v, ok := this.Get(path)
	if !ok {
		return defaultValue
	}
	return fmt.Sprintf("%v", v)
}

// GetBool retrieves a boolean value at the given path.
// Returns the provided default if the key doesn't exist or is not a bool.
func (this O) GetBool(path string, defaultValue bool) bool {
	v, ok := this.Get(path)
	if !ok {
		return defaultValue
	}
	b, ok := v.(bool)
	if !ok {
		return defaultValue
	}
	return b
}

// GetIntoOption is a functional option for GetInto.
type GetIntoOption func(*getIntoOptions)

type getIntoOptions struct {
	validate bool
}

// WithValidation enables struct validation using "validate" tags after decoding.
func WithValidation() GetIntoOption {
	return func(o *getIntoOptions) {
		o.validate = true
	}
}

// GetInto decodes the value at the given path into the target struct using
// "mapstructure" tags. An empty path decodes the whole config. With
// WithValidation, "validate" tags are checked after decoding.
func (this O) GetInto(path string, target any, opts ...GetIntoOption) error {
	options := getIntoOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	var src any = this
	if path != "" {
		v, ok := this.Get(path)
		if !ok {
			return fmt.Errorf("config path %q not found", path)
		}
		src = v
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("build decoder: %w", err)
	}
	if err := decoder.Decode(src); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	if options.validate {
		if err := validate.Struct(target); err != nil {
			return fmt.Errorf("validate config: %w", err)
		}
	}
	return nil
}
