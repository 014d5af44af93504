package property

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseValue converts command line text for p into a value Coerce accepts.
// The empty string and "null" clear the property.
func ParseValue(p Property, text string) (any, error) {
	d, err := Describe(p)
	if err != nil {
		return nil, err
	}
	if text == "" || strings.EqualFold(text, "null") {
		return nil, nil
	}
	return d.Parse(text)
}

func defaultParser(d *Descriptor) func(string) (any, error) {
	switch d.Kind {
	case KindBool:
		return func(s string) (any, error) {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return nil, fmt.Errorf("%v expects true or false, got '%s'", d.Property, s)
			}
			return b, nil
		}
	case KindInt:
		return func(s string) (any, error) {
			i, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%v expects an integer, got '%s'", d.Property, s)
			}
			return i, nil
		}
	case KindEnum:
		return func(s string) (any, error) {
			m, ok := d.Enum.Lookup(s)
			if !ok {
				return nil, &InvalidEnumValueError{Enum: d.Enum.Name, Value: s, Valid: d.Enum.Names()}
			}
			return m, nil
		}
	case KindStringList:
		return func(s string) (any, error) {
			parts := strings.Split(s, ",")
			out := make([]string, 0, len(parts))
			for _, p := range parts {
				if p = strings.TrimSpace(p); p != "" {
					out = append(out, p)
				}
			}
			return out, nil
		}
	default:
		// Strings, doubles and locations are validated by Coerce.
		return func(s string) (any, error) { return s, nil }
	}
}

// parseInterval accepts seconds or a Go duration such as "5m".
func parseInterval(s string) (any, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return nil, fmt.Errorf("interval expects seconds or a duration, got '%s'", s)
	}
	return int64(dur / time.Second), nil
}
