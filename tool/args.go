package tool

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/lattice-ai/runloop"
)

// Args holds validated, cast tool arguments keyed by parameter name.
// The typed accessors assume resolution has already run; a missing key
// returns the zero value.
type Args map[string]any

// String returns the named string argument.
func (a Args) String(name string) string {
	v, _ := a[name].(string)
	return v
}

// Int returns the named integer argument.
func (a Args) Int(name string) int {
	v, _ := a[name].(int)
	return v
}

// Float returns the named float argument.
func (a Args) Float(name string) float64 {
	v, _ := a[name].(float64)
	return v
}

// Bool returns the named boolean argument.
func (a Args) Bool(name string) bool {
	v, _ := a[name].(bool)
	return v
}

// resolve validates and casts the raw argument object against the declared
// parameters. Every declared parameter is required; a missing value or a
// failed cast is a *runloop.ValidationError naming the parameter and the
// expected type. Casting is idempotent: resolving already-cast values yields
// the same values.
func resolve(params []Param, raw map[string]any) (Args, error) {
	args := make(Args, len(params))
	for _, p := range params {
		v, ok := raw[p.Name]
		if !ok || v == nil {
			return nil, &runloop.ValidationError{Field: p.Name, Msg: "missing required argument"}
		}
		cast, err := castValue(p.Type, v)
		if err != nil {
			return nil, &runloop.ValidationError{
				Field: p.Name,
				Msg:   fmt.Sprintf("invalid value: expected %s", p.Type),
			}
		}
		if len(p.Enum) > 0 {
			if err := checkEnum(p, cast); err != nil {
				return nil, err
			}
		}
		args[p.Name] = cast
	}
	return args, nil
}

// castValue coerces a raw JSON value to the declared scalar type. JSON
// numbers decode as float64, so integer parameters accept whole floats; the
// string forms the model sometimes produces ("2", "3.5", "true") are parsed.
func castValue(t ParamType, v any) (any, error) {
	switch t {
	case TypeString:
		switch val := v.(type) {
		case string:
			return val, nil
		case float64:
			return strconv.FormatFloat(val, 'f', -1, 64), nil
		case bool:
			return strconv.FormatBool(val), nil
		}
	case TypeInt:
		switch val := v.(type) {
		case int:
			return val, nil
		case int64:
			return int(val), nil
		case float64:
			return int(val), nil
		case string:
			n, err := strconv.Atoi(val)
			if err != nil {
				return nil, err
			}
			return n, nil
		case bool:
			if val {
				return 1, nil
			}
			return 0, nil
		}
	case TypeFloat:
		switch val := v.(type) {
		case float64:
			return val, nil
		case int:
			return float64(val), nil
		case int64:
			return float64(val), nil
		case string:
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return nil, err
			}
			return f, nil
		}
	case TypeBool:
		switch val := v.(type) {
		case bool:
			return val, nil
		case string:
			b, err := strconv.ParseBool(val)
			if err != nil {
				return nil, err
			}
			return b, nil
		case float64:
			return val != 0, nil
		}
	}
	return nil, fmt.Errorf("cannot cast %T to %s", v, t)
}

// checkEnum verifies the cast value is one of the allowed options. Enum
// entries pass through the same cast as the value so that, for example,
// integer enums declared as untyped constants still match.
func checkEnum(p Param, value any) error {
	for _, e := range p.Enum {
		allowed, err := castValue(p.Type, e)
		if err != nil {
			continue
		}
		if allowed == value {
			return nil
		}
	}
	return &runloop.ValidationError{
		Field: p.Name,
		Msg:   fmt.Sprintf("value %v is not one of the allowed options", value),
	}
}

// parseArguments decodes the serialized argument object produced by the
// model. An empty string is treated as an empty object.
func parseArguments(arguments string) (map[string]any, error) {
	if arguments == "" {
		return map[string]any{}, nil
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(arguments), &raw); err != nil {
		return nil, &runloop.ValidationError{Field: "arguments", Msg: "malformed argument object: " + err.Error()}
	}
	return raw, nil
}
