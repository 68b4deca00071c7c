package value

import (
	"fmt"
	"sort"
	"strconv"

	json "github.com/goccy/go-json"
)

// ToValue converts an arbitrary Go value into a Value, routed through the
// JSON codec so that struct tags and Marshaler implementations apply. Object
// keys are re-validated; the first invalid key fails the whole conversion.
func ToValue(v any) (Value, error) {
	switch t := v.(type) {
	case Value:
		return t, nil
	case nil:
		return Null(), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case float64:
		return Float(t), nil
	case json.Number:
		return Number(t), nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return Value{}, err
	}
	return FromJSON(data)
}

// FromValue interprets a Value as the target type, routed through the JSON
// codec.
func FromValue(v Value, target any) error {
	data, err := v.MarshalJSON()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

// FromAny converts an already-decoded generic tree (maps, slices, scalars)
// into a Value. Map keys must satisfy Key validation.
func FromAny(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint64:
		return Number(json.Number(strconv.FormatUint(t, 10))), nil
	case float64:
		return Float(t), nil
	case []any:
		items := make([]Value, 0, len(t))
		for _, item := range t {
			converted, err := FromAny(item)
			if err != nil {
				return Value{}, err
			}
			items = append(items, converted)
		}
		return Array(items...), nil
	case map[string]any:
		var m Map[Value]
		// Sort for determinism: generic maps carry no order of their own.
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, raw := range keys {
			key, err := ParseKey(raw)
			if err != nil {
				return Value{}, err
			}
			converted, err := FromAny(t[raw])
			if err != nil {
				return Value{}, err
			}
			m.Set(key, converted)
		}
		return Object(m), nil
	default:
		return Value{}, fmt.Errorf("value: cannot convert %T", v)
	}
}

func formatInt(i int64) string { return strconv.FormatInt(i, 10) }

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
