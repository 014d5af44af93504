package property

import (
	"fmt"
	"strconv"
	"strings"

	"prtgctl/data/model"
	"prtgctl/location"
)

const lonLatWire = "lonlat_"

// BuildOptions configures how values are written.
type BuildOptions struct {
	Locale Locale
	// Channel is appended to channel property names.
	Channel int
}

// WireName is the parameter name d is written under.
func WireName(d *Descriptor, channel int) string {
	if _, ok := d.Property.(ChannelProperty); ok {
		return d.Wire + "_" + strconv.Itoa(channel)
	}
	return d.Wire
}

// Serialize renders a single value. Most values produce one parameter,
// locations produce two and properties merged into another produce none.
func Serialize(v Value, opts BuildOptions) (model.Parameters, error) {
	d := v.Descriptor
	if d.Wire == "" {
		return nil, nil
	}
	name := WireName(d, opts.Channel)

	if d.Kind == KindLocation {
		loc, err := asLocation(v)
		if err != nil {
			return nil, err
		}
		return model.Parameters{
			model.NewParameter(name, loc.String()),
			model.NewParameter(lonLatWire, loc.LonLat()),
		}, nil
	}

	s, err := format(v, opts.Locale)
	if err != nil {
		return nil, err
	}
	return model.Parameters{model.NewParameter(name, s)}, nil
}

func format(v Value, loc Locale) (string, error) {
	switch r := v.Raw.(type) {
	case nil:
		return "", nil
	case bool:
		if r {
			return "1", nil
		}
		return "0", nil
	case int64:
		return strconv.FormatInt(r, 10), nil
	case int:
		return strconv.Itoa(r), nil
	case float64:
		return loc.FormatFloat(r), nil
	case string:
		return r, nil
	case []string:
		return strings.Join(r, v.Descriptor.Separator), nil
	}
	return "", fmt.Errorf("cannot serialize %T for %v", v.Raw, v.Property())
}

func asLocation(v Value) (*location.Location, error) {
	switch r := v.Raw.(type) {
	case nil:
		return &location.Location{}, nil
	case *location.Location:
		return r, nil
	case string:
		p := location.Parse(r)
		if p.Coordinates {
			return location.FromCoordinates(p.Latitude, p.Longitude).WithLabel(p.Label), nil
		}
		if p.Query == "" {
			return &location.Location{}, nil
		}
		return nil, fmt.Errorf("location '%s' must be resolved before it can be set", r)
	}
	return nil, fmt.Errorf("cannot serialize %T as a location", v.Raw)
}

// CheckDependencies fails when a value requires a companion property that
// is not part of the same request.
func CheckDependencies(values []Value) error {
	for _, v := range values {
		req := v.Descriptor.RequiresWith
		if req == nil || contains(values, req) {
			continue
		}
		return &InvalidOperationError{
			Message: fmt.Sprintf("%s '%v' must be used in conjunction with property '%v'", v.Property().Scope(), v.Property(), req),
		}
	}
	return nil
}

// Build serializes values in order and appends the parameters they imply.
// Implied and cleared parameters are skipped when the caller set the same
// property or when a parameter of that name is already present.
func Build(values []Value, opts BuildOptions) (model.Parameters, error) {
	if err := CheckDependencies(values); err != nil {
		return nil, err
	}
	values = applyLocationName(values)

	var params model.Parameters
	for _, v := range values {
		p, err := Serialize(v, opts)
		if err != nil {
			return nil, err
		}
		params = append(params, p...)
	}

	for _, v := range values {
		if v.IsNull() {
			continue
		}
		for _, imp := range v.Descriptor.Implies {
			if contains(values, imp.Property) {
				continue
			}
			d, err := Describe(imp.Property)
			if err != nil {
				return nil, err
			}
			iv, err := Coerce(d, imp.Value)
			if err != nil {
				return nil, err
			}
			if params, err = appendMissing(params, iv, opts); err != nil {
				return nil, err
			}
		}
	}

	for _, v := range values {
		if off, ok := v.Raw.(bool); !ok || off {
			continue
		}
		for _, p := range v.Descriptor.ClearsOnFalse {
			if contains(values, p) {
				continue
			}
			d, err := Describe(p)
			if err != nil {
				return nil, err
			}
			if params, err = appendMissing(params, Value{Descriptor: d}, opts); err != nil {
				return nil, err
			}
		}
	}
	return params, nil
}

func appendMissing(params model.Parameters, v Value, opts BuildOptions) (model.Parameters, error) {
	extra, err := Serialize(v, opts)
	if err != nil {
		return nil, err
	}
	for _, p := range extra {
		if !params.Has(p.Name) {
			params = append(params, p)
		}
	}
	return params, nil
}

// applyLocationName folds a LocationName value into the Location label.
func applyLocationName(values []Value) []Value {
	label, ok := "", false
	for _, v := range values {
		if v.Property() == LocationName && !v.IsNull() {
			label, ok = fmt.Sprint(v.Raw), true
		}
	}
	if !ok {
		return values
	}

	out := make([]Value, len(values))
	copy(out, values)
	for i, v := range out {
		if v.Property() != Location {
			continue
		}
		loc, err := asLocation(v)
		if err != nil || loc.IsZero() {
			continue
		}
		out[i].Raw = loc.WithLabel(label)
	}
	return out
}

func contains(values []Value, p Property) bool {
	for _, v := range values {
		if v.Property() == p {
			return true
		}
	}
	return false
}
