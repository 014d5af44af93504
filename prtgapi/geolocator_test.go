package prtgapi

import (
	"context"
	"errors"
	"testing"

	"prtgctl/data/model"
	"prtgctl/location"
)

const (
	googleOK = `{"results":[{"formatted_address":"23 Fleet St, Boston, MA 02113, USA",` +
		`"geometry":{"location":{"lat":42.3643847,"lng":-71.0527997}}}],"status":"OK"}`
	googleNoResults = `{"results":[],"status":"ZERO_RESULTS"}`
	googleNoKey     = `{"error_message":"Keyless access to Google Maps Platform is deprecated. Please use an API key with all your API calls to avoid service interruption. For further details please refer to http://g.co/dev/maps-no-account.",` +
		`"results":[],"status":"OVER_QUERY_LIMIT"}`
	hereOK = `{"Response":{"View":[{"Result":[{"Location":{"Address":{"Label":"100 HERE Lane"},` +
		`"DisplayPosition":{"Latitude":62.3643847,"Longitude":-91.0527997}}}]}]}}`
	hereNoResults = `{"Response":{"View":[]}}`
)

func geoClient(t *testing.T, v model.Version, body string) (*Client, *recorder) {
	rec := &recorder{responses: map[string]string{geolocatorEndpoint: body}}
	return newTestClient(t, rec, WithVersion(v)), rec
}

func TestGeocodeProviders(t *testing.T) {
	tests := []struct {
		name    string
		version model.Version
		body    string
		query   string
		url     string
		want    location.Result
	}{
		{
			name:    "google",
			version: model.NewVersion(14, 4),
			body:    googleOK,
			query:   "google google",
			url:     "https://prtg.example.com/api/geolocator.htm?cache=false&dom=0&path=google%2Bgoogle&username=username&passhash=12345678",
			want:    location.Result{Address: "23 Fleet St, Boston, MA 02113, USA", Latitude: 42.3643847, Longitude: -71.0527997},
		},
		{
			name:    "here",
			version: model.NewVersion(17, 4),
			body:    hereOK,
			query:   "here here",
			url:     "https://prtg.example.com/api/geolocator.htm?cache=false&dom=2&path=here%2Bhere&username=username&passhash=12345678",
			want:    location.Result{Address: "100 HERE Lane", Latitude: 62.3643847, Longitude: -91.0527997},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := geoClient(t, tt.version, tt.body)
			res, err := c.Geocode(context.Background(), tt.query)
			if err != nil {
				t.Fatal(err)
			}
			if *res != tt.want {
				t.Errorf("Geocode() = %+v, want %+v", *res, tt.want)
			}
			if len(rec.urls) != 1 || rec.urls[0] != tt.url {
				t.Errorf("urls = %q, want %s", rec.urls, tt.url)
			}
		})
	}
}

func TestGeocodeFailures(t *testing.T) {
	google, here := model.NewVersion(14, 4), model.NewVersion(18, 1)
	tests := []struct {
		name    string
		version model.Version
		body    string
		query   string
		want    string
	}{
		{"google no results", google, googleNoResults, "something", "Could not resolve 'something' to an actual address"},
		{"here no results", here, hereNoResults, "something", "Could not resolve 'something' to an actual address"},
		{"google unavailable", google, "", "something", "Could not resolve 'something' to an actual address: the PRTG map provider is not currently available"},
		{"here unavailable", here, "<html>", "something", "Could not resolve 'something' to an actual address: the PRTG map provider is not currently available"},
		{
			"google no api key", google, googleNoKey, "google",
			"Could not resolve 'google' to an actual address: server responded with 'Keyless access to Google Maps Platform is deprecated. Please use an API key with all your API calls to avoid service interruption. For further details please refer to http://g.co/dev/maps-no-account. OVER_QUERY_LIMIT'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := geoClient(t, tt.version, tt.body)
			_, err := c.Geocode(context.Background(), tt.query)
			var reqErr *RequestError
			if !errors.As(err, &reqErr) {
				t.Fatalf("expected RequestError, got %v", err)
			}
			if err.Error() != tt.want {
				t.Errorf("error\n got  %s\n want %s", err, tt.want)
			}
		})
	}
}

func TestGeocodeProbesVersion(t *testing.T) {
	rec := &recorder{responses: map[string]string{
		statusEndpoint:     `{"Version":"18.1.37.1234"}`,
		geolocatorEndpoint: hereOK,
	}}
	c := newTestClient(t, rec)

	r := location.NewResolver(c)
	loc, err := r.Resolve(context.Background(), "Headquarters\r23 Fleet Street")
	if err != nil {
		t.Fatal(err)
	}
	if loc.Address != "100 HERE Lane" {
		t.Errorf("address = %q", loc.Address)
	}
	want := []string{
		"https://prtg.example.com/api/getstatus.htm?id=0&username=username&passhash=12345678",
		"https://prtg.example.com/api/geolocator.htm?cache=false&dom=2&path=Headquarters%0D23%2BFleet%2BStreet&username=username&passhash=12345678",
	}
	if len(rec.urls) != len(want) {
		t.Fatalf("urls = %q", rec.urls)
	}
	for i := range want {
		if rec.urls[i] != want[i] {
			t.Errorf("url %d\n got  %s\n want %s", i, rec.urls[i], want[i])
		}
	}
}

func TestProviderFor(t *testing.T) {
	tests := []struct {
		v    model.Version
		want string
	}{
		{model.Version{}, "google"},
		{model.NewVersion(14, 4), "google"},
		{model.Version{Major: 17, Minor: 3, Build: 99}, "google"},
		{model.NewVersion(17, 4), "here"},
		{model.NewVersion(20, 1), "here"},
	}
	for _, tt := range tests {
		if got := providerFor(tt.v).name; got != tt.want {
			t.Errorf("providerFor(%v) = %s, want %s", tt.v, got, tt.want)
		}
	}
}
