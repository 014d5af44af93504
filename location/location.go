package location

import (
	"context"
	"errors"
	"strconv"
)

// ErrNoProvider is returned when an address needs geocoding but the Resolver
// has no Provider.
var ErrNoProvider = errors.New("no geolocation provider configured")

// Location is what PRTG stores for an object's location: an optional label
// shown on maps, the address text and its coordinates.
type Location struct {
	Label     string
	Address   string
	Latitude  float64
	Longitude float64
}

// FromCoordinates builds a Location whose address is the coordinate pair
// itself.
func FromCoordinates(lat, lon float64) *Location {
	return &Location{
		Address:   FormatCoordinate(lat) + ", " + FormatCoordinate(lon),
		Latitude:  lat,
		Longitude: lon,
	}
}

// WithLabel returns a copy of l carrying label.
func (l *Location) WithLabel(label string) *Location {
	if l == nil {
		return nil
	}
	c := *l
	c.Label = label
	return &c
}

// IsZero reports whether the location clears the property.
func (l *Location) IsZero() bool {
	return l == nil || l.Address == ""
}

// String is the value written to location_.
func (l *Location) String() string {
	if l.IsZero() {
		return ""
	}
	if l.Label != "" {
		return l.Label + "\n" + l.Address
	}
	return l.Address
}

// LonLat is the value written to lonlat_. Note the reversed order.
func (l *Location) LonLat() string {
	if l.IsZero() {
		return ""
	}
	return FormatCoordinate(l.Longitude) + "," + FormatCoordinate(l.Latitude)
}

// FormatCoordinate renders the shortest decimal that round trips.
func FormatCoordinate(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Result is a geocoded address.
type Result struct {
	Address   string
	Latitude  float64
	Longitude float64
}

// Provider turns free text into an address and coordinates.
type Provider interface {
	Geocode(ctx context.Context, query string) (*Result, error)
}

type Resolver struct {
	Provider Provider
}

func NewResolver(p Provider) *Resolver {
	return &Resolver{Provider: p}
}

// Resolve parses text and geocodes it when it does not already contain
// coordinates. Empty text resolves to an empty Location.
func (r *Resolver) Resolve(ctx context.Context, text string) (*Location, error) {
	p := Parse(text)
	if p.Coordinates {
		return FromCoordinates(p.Latitude, p.Longitude).WithLabel(p.Label), nil
	}
	if p.Query == "" {
		return &Location{}, nil
	}
	if r == nil || r.Provider == nil {
		return nil, ErrNoProvider
	}

	res, err := r.Provider.Geocode(ctx, p.Query)
	if err != nil {
		return nil, err
	}
	return &Location{
		Label:     p.Label,
		Address:   res.Address,
		Latitude:  res.Latitude,
		Longitude: res.Longitude,
	}, nil
}
