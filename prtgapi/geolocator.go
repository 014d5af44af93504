package prtgapi

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"prtgctl/data/model"
	"prtgctl/location"
)

// geoProvider is the map service PRTG proxies geolocation requests to. The
// service changed over PRTG releases.
type geoProvider struct {
	name   string
	since  model.Version
	dom    int
	decode func(body string) (res *location.Result, detail string, err error)
}

// Ordered by version. The last entry whose version is not greater than the
// server's applies.
var geoProviders = []geoProvider{
	{name: "google", since: model.Version{}, dom: 0, decode: decodeGoogle},
	{name: "here", since: model.NewVersion(17, 4), dom: 2, decode: decodeHere},
}

func providerFor(v model.Version) geoProvider {
	p := geoProviders[0]
	for _, candidate := range geoProviders {
		if v.AtLeast(candidate.since) {
			p = candidate
		}
	}
	return p
}

// Geocode resolves query through the server's geolocation proxy. It
// implements location.Provider.
func (c *Client) Geocode(ctx context.Context, query string) (*location.Result, error) {
	v, err := c.Version(ctx)
	if err != nil {
		return nil, err
	}
	p := providerFor(v)

	params := model.Parameters{
		model.NewParameter("cache", "false"),
		model.NewParameter("dom", strconv.Itoa(p.dom)),
		model.NewParameter("path", strings.ReplaceAll(query, " ", "+")),
	}
	body, err := c.Do(ctx, geolocatorEndpoint, params)
	if err != nil {
		return nil, err
	}

	unresolved := fmt.Sprintf("Could not resolve '%s' to an actual address", query)
	if strings.TrimSpace(body) == "" {
		return nil, &RequestError{Message: unresolved + ": the PRTG map provider is not currently available"}
	}
	res, detail, err := p.decode(body)
	if err != nil {
		c.logger.Debug("undecodable geolocation response", "provider", p.name, "error", err)
		return nil, &RequestError{Message: unresolved + ": the PRTG map provider is not currently available"}
	}
	if res == nil {
		if detail != "" {
			return nil, &RequestError{Message: fmt.Sprintf("%s: server responded with '%s'", unresolved, detail)}
		}
		return nil, &RequestError{Message: unresolved}
	}
	return res, nil
}

type googleResponse struct {
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

func decodeGoogle(body string) (*location.Result, string, error) {
	var r googleResponse
	if err := json.UnmarshalFromString(body, &r); err != nil {
		return nil, "", err
	}
	if len(r.Results) == 0 {
		if r.ErrorMessage != "" {
			return nil, strings.TrimSpace(r.ErrorMessage + " " + r.Status), nil
		}
		return nil, "", nil
	}
	first := r.Results[0]
	return &location.Result{
		Address:   first.FormattedAddress,
		Latitude:  first.Geometry.Location.Lat,
		Longitude: first.Geometry.Location.Lng,
	}, "", nil
}

type hereResponse struct {
	Response struct {
		View []struct {
			Result []struct {
				Location struct {
					Address struct {
						Label string `json:"Label"`
					} `json:"Address"`
					DisplayPosition struct {
						Latitude  float64 `json:"Latitude"`
						Longitude float64 `json:"Longitude"`
					} `json:"DisplayPosition"`
				} `json:"Location"`
			} `json:"Result"`
		} `json:"View"`
	} `json:"Response"`
}

func decodeHere(body string) (*location.Result, string, error) {
	var r hereResponse
	if err := json.UnmarshalFromString(body, &r); err != nil {
		return nil, "", err
	}
	for _, view := range r.Response.View {
		if len(view.Result) == 0 {
			continue
		}
		loc := view.Result[0].Location
		return &location.Result{
			Address:   loc.Address.Label,
			Latitude:  loc.DisplayPosition.Latitude,
			Longitude: loc.DisplayPosition.Longitude,
		}, "", nil
	}
	return nil, "", nil
}
