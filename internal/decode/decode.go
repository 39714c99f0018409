// Package decode wraps YAML and JSONC parsing to isolate the external
// dependencies. Both decoders are strict: unknown fields are rejected.
package decode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/tidwall/jsonc"
)

// MaxInputSize limits decoder input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("decode: nil or empty data")
	ErrNilDestination = errors.New("decode: nil destination pointer")
	ErrInputTooLarge  = errors.New("decode: input exceeds maximum size")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// YAML decodes data into v, rejecting unknown fields.
// Errors carry the offending source line.
func YAML(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("decode: %s", yaml.FormatError(err, false, true))
	}
	return nil
}

// JSONC decodes JSON extended with comments and trailing commas into v,
// rejecting unknown fields.
func JSONC(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
