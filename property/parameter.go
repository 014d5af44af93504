package property

// ObjectParameter pairs an object property with the value to set.
type ObjectParameter struct {
	Property ObjectProperty
	Value    any
}

func NewObjectParameter(p ObjectProperty, value any) ObjectParameter {
	return ObjectParameter{Property: p, Value: value}
}

// ChannelParameter pairs a channel property with the value to set.
type ChannelParameter struct {
	Property ChannelProperty
	Value    any
}

func NewChannelParameter(p ChannelProperty, value any) ChannelParameter {
	return ChannelParameter{Property: p, Value: value}
}

// CoerceAll describes and coerces each pair, stopping at the first error.
func CoerceAll[P Property](props []P, raws []any) ([]Value, error) {
	values := make([]Value, 0, len(props))
	for i, p := range props {
		d, err := Describe(p)
		if err != nil {
			return nil, err
		}
		v, err := Coerce(d, raws[i])
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// CoerceObject coerces a set of object parameters.
func CoerceObject(params []ObjectParameter) ([]Value, error) {
	props := make([]ObjectProperty, len(params))
	raws := make([]any, len(params))
	for i, p := range params {
		props[i], raws[i] = p.Property, p.Value
	}
	return CoerceAll(props, raws)
}

// CoerceChannel coerces a set of channel parameters.
func CoerceChannel(params []ChannelParameter) ([]Value, error) {
	props := make([]ChannelProperty, len(params))
	raws := make([]any, len(params))
	for i, p := range params {
		props[i], raws[i] = p.Property, p.Value
	}
	return CoerceAll(props, raws)
}
