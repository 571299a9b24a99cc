// In file: internal/tools/geocoding.go
package tools

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ErrLocationNotFound is returned when the geocoding lookup has no match.
var ErrLocationNotFound = errors.New("location not found")

// DefaultGeocodingURL is the Open-Meteo geocoding search endpoint.
const DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

// Place is the first geocoding match for a city name.
type Place struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// Label renders the place as "Name, Country".
func (p Place) Label() string {
	return fmt.Sprintf("%s, %s", p.Name, p.Country)
}

// Geocoder resolves city names through the Open-Meteo geocoding API.
type Geocoder struct {
	baseURL    string
	httpClient *http.Client
}

// NewGeocoder creates a Geocoder against baseURL.
func NewGeocoder(baseURL string, httpClient *http.Client) *Geocoder {
	return &Geocoder{baseURL: baseURL, httpClient: httpClient}
}

// Resolve returns the first match for city.
func (g *Geocoder) Resolve(ctx context.Context, city string) (Place, error) {
	u, err := url.Parse(g.baseURL)
	if err != nil {
		return Place{}, fmt.Errorf("invalid geocoding URL: %w", err)
	}
	params := url.Values{}
	params.Set("name", city)
	params.Set("count", "1")
	params.Set("language", "en")
	params.Set("format", "json")
	u.RawQuery = params.Encode()

	var resp struct {
		Results []Place `json:"results"`
	}
	if err := getJSON(ctx, g.httpClient, u.String(), "Geocoding API", &resp); err != nil {
		return Place{}, err
	}
	if len(resp.Results) == 0 {
		return Place{}, fmt.Errorf("location '%s' not found: %w", city, ErrLocationNotFound)
	}
	return resp.Results[0], nil
}

// cityArg extracts the required "city" argument.
func cityArg(args Arguments) (string, error) {
	city, ok := args.String("city")
	if !ok || city == "" {
		return "", errors.New("argument 'city' is required")
	}
	return city, nil
}
