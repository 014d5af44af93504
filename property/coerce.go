package property

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"prtgctl/data/model"
	"prtgctl/location"
)

// Value is a value that has been checked against its descriptor. Raw holds
// the canonical form for the descriptor's Kind, or nil to clear the
// property:
//
//	KindBool       bool
//	KindInt        int64
//	KindDouble     float64, or a numeric string written verbatim
//	KindString     string
//	KindEnum       int
//	KindStringList []string
//	KindLocation   *location.Location, or a string still to be resolved
type Value struct {
	Descriptor *Descriptor
	Raw        any
}

func (v Value) Property() Property { return v.Descriptor.Property }

func (v Value) IsNull() bool { return v.Raw == nil }

// Text is a human readable rendering of the value, used in error messages.
func (v Value) Text() string {
	switch r := v.Raw.(type) {
	case nil:
		return ""
	case []string:
		return strings.Join(r, ", ")
	case *location.Location:
		return r.String()
	case int:
		if v.Descriptor.Kind == KindEnum {
			for _, m := range v.Descriptor.Enum.Members {
				if m.Int() == r {
					return m.String()
				}
			}
		}
	}
	return fmt.Sprint(v.Raw)
}

var decimalText = regexp.MustCompile(`^[-+]?\d+([.,]\d+)?$`)

// Coerce checks raw against d and converts it to its canonical form. A nil
// raw value is always accepted and clears the property.
func Coerce(d *Descriptor, raw any) (Value, error) {
	if isNil(raw) {
		return Value{Descriptor: d}, nil
	}

	switch d.Kind {
	case KindEnum:
		return coerceEnum(d, raw)
	case KindBool:
		return coerceBool(d, raw)
	case KindInt:
		return coerceInt(d, raw)
	case KindDouble:
		return coerceDouble(d, raw)
	case KindStringList:
		return coerceList(d, raw)
	case KindLocation:
		return coerceLocation(d, raw)
	default:
		switch r := raw.(type) {
		case string:
			return Value{Descriptor: d, Raw: r}, nil
		case model.Enum:
		case fmt.Stringer:
			return Value{Descriptor: d, Raw: r.String()}, nil
		}
		return Value{}, mismatch(d, raw, "")
	}
}

func coerceEnum(d *Descriptor, raw any) (Value, error) {
	if e, ok := raw.(model.Enum); ok {
		if e.EnumName() != d.Enum.Name {
			return Value{}, mismatch(d, raw, "")
		}
		return Value{Descriptor: d, Raw: e.Int()}, nil
	}
	if _, ok := asInt(raw); ok {
		return Value{}, &InvalidEnumValueError{Enum: d.Enum.Name, Value: raw, Valid: d.Enum.Names()}
	}
	if s, ok := raw.(string); ok {
		if m, ok := d.Enum.Lookup(s); ok {
			return Value{Descriptor: d, Raw: m.Int()}, nil
		}
		return Value{}, &InvalidEnumValueError{Enum: d.Enum.Name, Value: raw, Valid: d.Enum.Names()}
	}
	return Value{}, mismatch(d, raw, "")
}

func coerceBool(d *Descriptor, raw any) (Value, error) {
	switch r := raw.(type) {
	case bool:
		return Value{Descriptor: d, Raw: r}, nil
	case model.Enum:
		return Value{}, mismatch(d, raw, "")
	case string:
		b, err := strconv.ParseBool(r)
		if err != nil {
			return Value{}, mismatch(d, raw, "")
		}
		return Value{Descriptor: d, Raw: b}, nil
	}
	if overflowsInt(raw) {
		return Value{}, outOfRange(d, raw)
	}
	if i, ok := asInt(raw); ok {
		if i != 0 && i != 1 {
			return Value{}, mismatch(d, raw, fmt.Sprintf("value %d must be 0 or 1", i))
		}
		return Value{Descriptor: d, Raw: i == 1}, nil
	}
	return Value{}, mismatch(d, raw, "")
}

func coerceInt(d *Descriptor, raw any) (Value, error) {
	switch r := raw.(type) {
	case bool, model.Enum:
		return Value{}, mismatch(d, raw, "")
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(r), 10, 64)
		if err != nil {
			return Value{}, mismatch(d, raw, "")
		}
		return Value{Descriptor: d, Raw: i}, nil
	}
	if overflowsInt(raw) {
		return Value{}, outOfRange(d, raw)
	}
	if i, ok := asInt(raw); ok {
		return Value{Descriptor: d, Raw: i}, nil
	}
	if f, ok := asFloat(raw); ok {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Value{}, mismatch(d, raw, "value is not finite")
		}
		return Value{Descriptor: d, Raw: int64(f)}, nil
	}
	return Value{}, mismatch(d, raw, "")
}

func coerceDouble(d *Descriptor, raw any) (Value, error) {
	switch r := raw.(type) {
	case bool, model.Enum:
		return Value{}, mismatch(d, raw, "")
	case string:
		s := strings.TrimSpace(r)
		if !decimalText.MatchString(s) {
			return Value{}, mismatch(d, raw, fmt.Sprintf("'%s' is not a number", r))
		}
		return Value{Descriptor: d, Raw: s}, nil
	}
	if i, ok := asInt(raw); ok {
		return Value{Descriptor: d, Raw: float64(i)}, nil
	}
	if f, ok := asFloat(raw); ok {
		return Value{Descriptor: d, Raw: f}, nil
	}
	return Value{}, mismatch(d, raw, "")
}

func coerceList(d *Descriptor, raw any) (Value, error) {
	switch r := raw.(type) {
	case string:
		return Value{Descriptor: d, Raw: []string{r}}, nil
	case []string:
		return Value{Descriptor: d, Raw: append([]string(nil), r...)}, nil
	case []any:
		out := make([]string, 0, len(r))
		for _, item := range r {
			s, ok := item.(string)
			if !ok {
				return Value{}, mismatch(d, raw, fmt.Sprintf("element %v is not a string", item))
			}
			out = append(out, s)
		}
		return Value{Descriptor: d, Raw: out}, nil
	}
	return Value{}, mismatch(d, raw, "")
}

func coerceLocation(d *Descriptor, raw any) (Value, error) {
	switch r := raw.(type) {
	case string:
		return Value{Descriptor: d, Raw: r}, nil
	case *location.Location:
		return Value{Descriptor: d, Raw: r}, nil
	case location.Location:
		return Value{Descriptor: d, Raw: &r}, nil
	case [2]float64:
		return Value{Descriptor: d, Raw: location.FromCoordinates(r[0], r[1])}, nil
	case []float64:
		if len(r) != 2 {
			return Value{}, mismatch(d, raw, fmt.Sprintf("expected 2 coordinates, got %d", len(r)))
		}
		return Value{Descriptor: d, Raw: location.FromCoordinates(r[0], r[1])}, nil
	}
	return Value{}, mismatch(d, raw, "")
}

func mismatch(d *Descriptor, raw any, detail string) error {
	return &TypeMismatchError{
		Property: d.Property,
		Expected: d.Kind.String(),
		Actual:   typeName(raw),
		Detail:   detail,
	}
}

func typeName(raw any) string {
	if e, ok := raw.(model.Enum); ok {
		return e.EnumName()
	}
	t := reflect.TypeOf(raw)
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

func isNil(raw any) bool {
	if raw == nil {
		return true
	}
	v := reflect.ValueOf(raw)
	switch v.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// asInt reports integers of any width. Enums are excluded by callers.
func asInt(raw any) (int64, bool) {
	if _, ok := raw.(model.Enum); ok {
		return 0, false
	}
	v := reflect.ValueOf(raw)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v.Uint() > math.MaxInt64 {
			return 0, false
		}
		return int64(v.Uint()), true
	}
	return 0, false
}

// overflowsInt reports an unsigned value too large for an int64.
func overflowsInt(raw any) bool {
	v := reflect.ValueOf(raw)
	switch v.Kind() {
	case reflect.Uint, reflect.Uint64:
		return v.Uint() > math.MaxInt64
	}
	return false
}

func outOfRange(d *Descriptor, raw any) error {
	return mismatch(d, raw, fmt.Sprintf("value %v is out of range", raw))
}

func asFloat(raw any) (float64, bool) {
	v := reflect.ValueOf(raw)
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}
