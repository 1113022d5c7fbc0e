package tools

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Args is the untyped argument map of one invocation. Handlers extract typed
// values through the Require/Optional accessors and never pass the raw map
// further down.
type Args map[string]any

// ArgError is a validation failure naming the offending parameter
type ArgError struct {
	Name   string
	Reason string
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("parameter %q %s", e.Name, e.Reason)
}

func missingArg(name string) error {
	return &ArgError{Name: name, Reason: "is required"}
}

// RequireString extracts a required string argument
func (a Args) RequireString(name string) (string, error) {
	v, ok := a[name]
	if !ok || v == nil {
		return "", missingArg(name)
	}
	s, ok := v.(string)
	if !ok {
		return "", &ArgError{Name: name, Reason: "must be a string"}
	}
	if s == "" {
		return "", &ArgError{Name: name, Reason: "must not be empty"}
	}
	return s, nil
}

// OptionalString extracts an optional string argument, "" when absent
func (a Args) OptionalString(name string) (string, error) {
	v, ok := a[name]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &ArgError{Name: name, Reason: "must be a string"}
	}
	return s, nil
}

// RequireInt extracts a required integer argument. Native numbers, floats
// (truncated toward zero), and numeric strings all coerce; anything else is
// a validation failure.
func (a Args) RequireInt(name string) (int, error) {
	v, ok := a[name]
	if !ok || v == nil {
		return 0, missingArg(name)
	}
	n, ok := coerceInt(v)
	if !ok {
		return 0, &ArgError{Name: name, Reason: "must be an integer"}
	}
	return n, nil
}

// OptionalInt extracts an optional integer argument with a default
func (a Args) OptionalInt(name string, def int) (int, error) {
	v, ok := a[name]
	if !ok || v == nil {
		return def, nil
	}
	n, ok := coerceInt(v)
	if !ok {
		return 0, &ArgError{Name: name, Reason: "must be an integer"}
	}
	return n, nil
}

// RequireBool extracts a required boolean argument. Native booleans and
// parseable boolean strings coerce.
func (a Args) RequireBool(name string) (bool, error) {
	v, ok := a[name]
	if !ok || v == nil {
		return false, missingArg(name)
	}
	b, ok := coerceBool(v)
	if !ok {
		return false, &ArgError{Name: name, Reason: "must be a boolean"}
	}
	return b, nil
}

// OptionalBool extracts an optional boolean argument, false when absent
func (a Args) OptionalBool(name string) (bool, error) {
	v, ok := a[name]
	if !ok || v == nil {
		return false, nil
	}
	b, ok := coerceBool(v)
	if !ok {
		return false, &ArgError{Name: name, Reason: "must be a boolean"}
	}
	return b, nil
}

// RequireObject extracts a required JSON object argument
func (a Args) RequireObject(name string) (map[string]any, error) {
	v, ok := a[name]
	if !ok || v == nil {
		return nil, missingArg(name)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &ArgError{Name: name, Reason: "must be an object"}
	}
	if len(m) == 0 {
		return nil, &ArgError{Name: name, Reason: "must not be empty"}
	}
	return m, nil
}

// RequireConfirm enforces the explicit confirmation flag destructive tools
// carry. Absence and false are both validation failures, never a silent skip.
func (a Args) RequireConfirm() error {
	v, ok := a["confirm"]
	if !ok || v == nil {
		return &ArgError{Name: "confirm", Reason: "is required: pass confirm=true to proceed with this destructive operation"}
	}
	b, ok := coerceBool(v)
	if !ok {
		return &ArgError{Name: "confirm", Reason: "must be a boolean"}
	}
	if !b {
		return &ArgError{Name: "confirm", Reason: "must be true to proceed with this destructive operation"}
	}
	return nil
}

func coerceInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil {
			return int(f), true
		}
		return 0, false
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func coerceBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(b)
		if err != nil {
			return false, false
		}
		return parsed, true
	default:
		return false, false
	}
}
