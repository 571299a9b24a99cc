// In file: internal/tools/weather_tool.go
package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// --- Weather Tool Implementation ---

// DefaultWeatherURL is the Open-Meteo forecast endpoint.
const DefaultWeatherURL = "https://api.open-meteo.com/v1/forecast"

const currentWeatherFields = "temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m"

// weatherCodes maps WMO weather interpretation codes to text.
var weatherCodes = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// DescribeWeatherCode returns the condition text for code, or "Unknown condition".
func DescribeWeatherCode(code int) string {
	if desc, ok := weatherCodes[code]; ok {
		return desc
	}
	return "Unknown condition"
}

// openMeteoForecast is the subset of the forecast response the tool reads.
type openMeteoForecast struct {
	Current struct {
		Time               string  `json:"time"`
		Temperature2m      float64 `json:"temperature_2m"`
		RelativeHumidity2m float64 `json:"relative_humidity_2m"`
		WeatherCode        int     `json:"weather_code"`
		WindSpeed10m       float64 `json:"wind_speed_10m"`
	} `json:"current"`
	CurrentUnits struct {
		Temperature2m      string `json:"temperature_2m"`
		RelativeHumidity2m string `json:"relative_humidity_2m"`
		WindSpeed10m       string `json:"wind_speed_10m"`
	} `json:"current_units"`
}

// Coordinates of a resolved place.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// WeatherReport is the normalized weather payload returned to the model.
type WeatherReport struct {
	Location    string      `json:"location"`
	Coordinates Coordinates `json:"coordinates"`
	Temperature string      `json:"temperature"`
	Humidity    string      `json:"humidity"`
	WindSpeed   string      `json:"wind_speed"`
	Condition   string      `json:"condition"`
	Time        string      `json:"time"`
}

// WeatherTool resolves a city and fetches its current conditions from Open-Meteo.
type WeatherTool struct {
	geocoder   *Geocoder
	baseURL    string
	httpClient *http.Client
}

// Statically verify that WeatherTool implements the ToolExecutor interface.
var _ ToolExecutor = (*WeatherTool)(nil)

// NewWeatherTool creates a WeatherTool. The HTTP client should carry a timeout.
func NewWeatherTool(geocoder *Geocoder, baseURL string, httpClient *http.Client) *WeatherTool {
	return &WeatherTool{
		geocoder:   geocoder,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (wt *WeatherTool) Definition() Tool {
	tool, _ := Lookup(string(GetWeather))
	return tool
}

// Execute geocodes the city, then queries the forecast API for current
// conditions.
func (wt *WeatherTool) Execute(ctx context.Context, args Arguments) (Result, error) {
	city, err := cityArg(args)
	if err != nil {
		return Result{}, err
	}
	place, err := wt.geocoder.Resolve(ctx, city)
	if err != nil {
		return Result{}, err
	}

	u, err := url.Parse(wt.baseURL)
	if err != nil {
		return Result{}, fmt.Errorf("invalid weather URL: %w", err)
	}
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(place.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(place.Longitude, 'f', -1, 64))
	params.Set("current", currentWeatherFields)
	u.RawQuery = params.Encode()

	var forecast openMeteoForecast
	if err := getJSON(ctx, wt.httpClient, u.String(), "Weather API", &forecast); err != nil {
		return Result{}, err
	}

	cur, units := forecast.Current, forecast.CurrentUnits
	return PayloadResult(WeatherReport{
		Location:    place.Label(),
		Coordinates: Coordinates{Lat: place.Latitude, Lon: place.Longitude},
		Temperature: withUnit(cur.Temperature2m, units.Temperature2m),
		Humidity:    withUnit(cur.RelativeHumidity2m, units.RelativeHumidity2m),
		WindSpeed:   withUnit(cur.WindSpeed10m, units.WindSpeed10m),
		Condition:   DescribeWeatherCode(cur.WeatherCode),
		Time:        cur.Time,
	})
}

func withUnit(v float64, unit string) string {
	return fmt.Sprintf("%s %s", strconv.FormatFloat(v, 'f', -1, 64), unit)
}
