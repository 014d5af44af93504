package property

import (
	"errors"
	"testing"

	"golang.org/x/text/language"
)

func build(t *testing.T, channel int, loc Locale, pairs ...any) string {
	t.Helper()
	var values []Value
	for i := 0; i < len(pairs); i += 2 {
		v, err := Coerce(MustDescribe(pairs[i].(Property)), pairs[i+1])
		if err != nil {
			t.Fatalf("Coerce(%v): %v", pairs[i], err)
		}
		values = append(values, v)
	}
	params, err := Build(values, BuildOptions{Locale: loc, Channel: channel})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return params.Encode()
}

func TestBuildImplications(t *testing.T) {
	tests := []struct {
		name  string
		pairs []any
		want  string
	}{
		{
			name:  "windows credentials",
			pairs: []any{WindowsUserName, "username", WindowsPassword, "password"},
			want:  "windowsloginusername_=username&windowsloginpassword_=password&windowsconnection=0",
		},
		{
			name:  "coordinates",
			pairs: []any{Location, "12.3456, -7.8910"},
			want:  "location_=12.3456%2C+-7.891&lonlat_=-7.891%2C12.3456&locationgroup=0",
		},
		{
			name:  "location name",
			pairs: []any{Location, "12.3456, -7.8910", LocationName, "Headquarters"},
			want:  "location_=Headquarters%0A12.3456%2C+-7.891&lonlat_=-7.891%2C12.3456&locationgroup=0",
		},
		{
			name:  "explicit companion wins",
			pairs: []any{Interval, 60, InheritInterval, true},
			want:  "interval_=60&intervalgroup=1",
		},
		{
			name:  "null does not imply",
			pairs: []any{Interval, nil},
			want:  "interval_=",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := build(t, 0, Invariant, tt.pairs...); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestBuildChannelImplications(t *testing.T) {
	tests := []struct {
		name  string
		pairs []any
		want  string
	}{
		{
			name:  "error message",
			pairs: []any{ErrorLimitMessage, "test"},
			want:  "limiterrormsg_2=test&limitmode_2=1",
		},
		{
			name:  "spike filter",
			pairs: []any{SpikeFilterMax, 100},
			want:  "spikemax_2=100&spikemode_2=1",
		},
		{
			name:  "limits disabled",
			pairs: []any{LimitsEnabled, false},
			want:  "limitmode_2=0&limitmaxerror_2=&limitmaxwarning_2=&limitminerror_2=&limitminwarning_2=&limiterrormsg_2=&limitwarningmsg_2=",
		},
		{
			name:  "two thresholds share limit mode",
			pairs: []any{UpperErrorLimit, 100, LowerErrorLimit, 20},
			want:  "limitmaxerror_2=100&limitminerror_2=20&limitmode_2=1",
		},
		{
			name:  "cleared threshold",
			pairs: []any{UpperErrorLimit, nil},
			want:  "limitmaxerror_2=",
		},
		{
			name:  "line color",
			pairs: []any{LineColor, "#ff0000"},
			want:  "color_2=%23ff0000&colmode_2=1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := build(t, 2, Invariant, tt.pairs...); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestBuildLocationNameWithoutLocation(t *testing.T) {
	v, err := Coerce(MustDescribe(LocationName), "Test")
	if err != nil {
		t.Fatal(err)
	}
	_, err = Build([]Value{v}, BuildOptions{})
	var opErr *InvalidOperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected InvalidOperationError, got %v", err)
	}
	want := "ObjectProperty 'LocationName' must be used in conjunction with property 'Location'"
	if err.Error() != want {
		t.Fatalf("error = %q, want %q", err, want)
	}
}

func TestBuildUnresolvedAddress(t *testing.T) {
	v, err := Coerce(MustDescribe(Location), "23 Fleet Street")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Build([]Value{v}, BuildOptions{}); err == nil {
		t.Fatal("expected an error for an address that was never geocoded")
	}
}

func TestLocaleDecimalSeparator(t *testing.T) {
	german := NewLocale(language.MustParse("de-DE"))
	american := NewLocale(language.MustParse("en-US"))

	if got := serializeOne(t, ScalingDivision, "1.1", american); got != "1.1" {
		t.Errorf("en-US \"1.1\" = %q", got)
	}
	if got := serializeOne(t, ScalingDivision, "1,1", german); got != "1,1" {
		t.Errorf("de-DE \"1,1\" = %q", got)
	}
	if got := serializeOne(t, ScalingDivision, 1.1, german); got != "1,1" {
		t.Errorf("de-DE 1.1 = %q", got)
	}
	if got := serializeOne(t, ScalingDivision, 1.1, american); got != "1.1" {
		t.Errorf("en-US 1.1 = %q", got)
	}
	if got := (Locale{}).FormatFloat(2.5); got != "2.5" {
		t.Errorf("zero Locale = %q", got)
	}
}

func TestParseLocale(t *testing.T) {
	loc, err := ParseLocale("de-DE")
	if err != nil {
		t.Fatal(err)
	}
	if loc.DecimalSeparator() != "," {
		t.Fatalf("separator = %q", loc.DecimalSeparator())
	}
	if _, err := ParseLocale("not a locale!"); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue(IntervalErrorMode, "twowarningsthendown")
	if err != nil {
		t.Fatal(err)
	}
	if got := serializeOne(t, IntervalErrorMode, v, Invariant); got != "2" {
		t.Errorf("IntervalErrorMode = %q", got)
	}

	v, err = ParseValue(Interval, "5m")
	if err != nil {
		t.Fatal(err)
	}
	if v.(int64) != 300 {
		t.Errorf("interval = %v", v)
	}

	v, err = ParseValue(Tags, "a, b,c")
	if err != nil {
		t.Fatal(err)
	}
	if got := serializeOne(t, Tags, v, Invariant); got != "a b c" {
		t.Errorf("tags = %q", got)
	}

	if v, _ := ParseValue(Name, "null"); v != nil {
		t.Errorf("null = %v", v)
	}
	if _, err := ParseValue(InheritInterval, "maybe"); err == nil {
		t.Error("expected bool parse error")
	}
}
