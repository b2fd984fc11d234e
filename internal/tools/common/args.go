package common

import (
	"fmt"
	"math"
)

// RequiredString extracts a required string argument.
func RequiredString(args map[string]interface{}, name string) (string, error) {
	v, ok := args[name]
	if !ok {
		return "", fmt.Errorf("%s is required", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", name)
	}
	if s == "" {
		return "", fmt.Errorf("%s cannot be empty", name)
	}
	return s, nil
}

// OptionalString extracts an optional string argument, returning "" if
// absent.
func OptionalString(args map[string]interface{}, name string) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", name)
	}
	return s, nil
}

// OptionalInt extracts an optional integer argument. JSON numbers
// arrive as float64; non-integral values are rejected.
func OptionalInt(args map[string]interface{}, name string) (*int, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return nil, nil
	}

	var n int
	switch f := v.(type) {
	case float64:
		if f != math.Trunc(f) {
			return nil, fmt.Errorf("%s must be an integer", name)
		}
		n = int(f)
	case int:
		n = f
	default:
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &n, nil
}

// OptionalBool extracts an optional boolean argument.
func OptionalBool(args map[string]interface{}, name string) (*bool, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return nil, nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("%s must be a boolean", name)
	}
	return &b, nil
}
