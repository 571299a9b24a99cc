package tools_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dileep-u-k/chat-gateway/internal/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.March, 7, 9, 5, 3, 0, time.UTC)

const tokyoGeo = `{"results":[{"name":"Tokyo","country":"Japan","latitude":35.6895,"longitude":139.69171,"timezone":"Asia/Tokyo"}]}`

const forecastBody = `{
	"current": {"time":"2026-03-07T18:00","temperature_2m":12.4,"relative_humidity_2m":61,"weather_code":%d,"wind_speed_10m":9.7},
	"current_units": {"temperature_2m":"°C","relative_humidity_2m":"%%","wind_speed_10m":"km/h"}
}`

// newBackends starts a fake Open-Meteo pair and returns a manager wired to it.
func newBackends(t *testing.T, geo http.HandlerFunc, forecast http.HandlerFunc) *tools.ToolManager {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/search", geo)
	mux.HandleFunc("/v1/forecast", forecast)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return tools.NewDefaultManager(tools.Config{
		GeocodingURL: srv.URL + "/v1/search",
		WeatherURL:   srv.URL + "/v1/forecast",
		SearchURL:    srv.URL,
		MatrixURL:    srv.URL,
		HanoiURL:     srv.URL,
		Timeout:      2 * time.Second,
		Now:          func() time.Time { return fixedNow },
	})
}

func decode(t *testing.T, res tools.Result) map[string]any {
	t.Helper()
	require.False(t, res.Failed(), "unexpected error result: %s", res.Err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(res.Payload, &out))
	return out
}

func TestWeather_Success(t *testing.T) {
	t.Parallel()

	var geoQuery, forecastQuery map[string][]string
	tm := newBackends(t,
		func(w http.ResponseWriter, r *http.Request) {
			geoQuery = r.URL.Query()
			_, _ = io.WriteString(w, tokyoGeo)
		},
		func(w http.ResponseWriter, r *http.Request) {
			forecastQuery = r.URL.Query()
			_, _ = io.WriteString(w, fmt.Sprintf(forecastBody, 3))
		},
	)

	out := decode(t, tm.Execute(context.Background(), "get_weather", tools.Arguments{"city": "Tokyo"}))

	assert.Equal(t, []string{"Tokyo"}, geoQuery["name"])
	assert.Equal(t, []string{"1"}, geoQuery["count"])
	assert.Equal(t, []string{"35.6895"}, forecastQuery["latitude"])
	assert.Equal(t, []string{"temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m"}, forecastQuery["current"])

	assert.Equal(t, "Tokyo, Japan", out["location"])
	assert.Equal(t, "12.4 °C", out["temperature"])
	assert.Equal(t, "61 %", out["humidity"])
	assert.Equal(t, "9.7 km/h", out["wind_speed"])
	assert.Equal(t, "Overcast", out["condition"])
	assert.Equal(t, "2026-03-07T18:00", out["time"])
	assert.Equal(t, map[string]any{"lat": 35.6895, "lon": 139.69171}, out["coordinates"])
}

func TestWeather_UnknownCode(t *testing.T) {
	t.Parallel()

	tm := newBackends(t,
		func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, tokyoGeo) },
		func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, fmt.Sprintf(forecastBody, 42)) },
	)
	out := decode(t, tm.Execute(context.Background(), "get_weather", tools.Arguments{"city": "Tokyo"}))
	assert.Equal(t, "Unknown condition", out["condition"])
}

func TestDescribeWeatherCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Clear sky", tools.DescribeWeatherCode(0))
	assert.Equal(t, "Thunderstorm with heavy hail", tools.DescribeWeatherCode(99))
	assert.Equal(t, "Unknown condition", tools.DescribeWeatherCode(-1))
	assert.Equal(t, "Unknown condition", tools.DescribeWeatherCode(100))
}

func TestWeather_UnknownCity(t *testing.T) {
	t.Parallel()

	forecastCalled := false
	tm := newBackends(t,
		func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, `{"generationtime_ms":0.5}`) },
		func(w http.ResponseWriter, r *http.Request) { forecastCalled = true },
	)

	for _, name := range []string{"get_weather", "get_city_time"} {
		res := tm.Execute(context.Background(), name, tools.Arguments{"city": "Atlantis"})
		require.True(t, res.Failed(), name)
		assert.Contains(t, res.Err, "Atlantis", name)
		assert.Contains(t, res.Err, "not found", name)
	}
	assert.False(t, forecastCalled)
}

func TestWeather_BackendStatus(t *testing.T) {
	t.Parallel()

	tm := newBackends(t,
		func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, tokyoGeo) },
		func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) },
	)
	res := tm.Execute(context.Background(), "get_weather", tools.Arguments{"city": "Tokyo"})
	require.True(t, res.Failed())
	assert.Equal(t, "Tool execution failed: Weather API returned status 502", res.Err)
}

func TestGeocoding_BackendStatus(t *testing.T) {
	t.Parallel()

	tm := newBackends(t,
		func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTooManyRequests) },
		func(w http.ResponseWriter, r *http.Request) {},
	)
	res := tm.Execute(context.Background(), "get_city_time", tools.Arguments{"city": "Tokyo"})
	require.True(t, res.Failed())
	assert.Contains(t, res.Err, "status 429")
}

func TestWeather_MalformedPayload(t *testing.T) {
	t.Parallel()

	tm := newBackends(t,
		func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, tokyoGeo) },
		func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, "<html>oops</html>") },
	)
	res := tm.Execute(context.Background(), "get_weather", tools.Arguments{"city": "Tokyo"})
	require.True(t, res.Failed())
	assert.Contains(t, res.Err, "failed to parse Weather API response")
}

func TestWeather_MissingCity(t *testing.T) {
	t.Parallel()

	tm := newBackends(t,
		func(w http.ResponseWriter, r *http.Request) { t.Error("geocoder should not be called") },
		func(w http.ResponseWriter, r *http.Request) {},
	)
	res := tm.Execute(context.Background(), "get_weather", tools.Arguments{})
	require.True(t, res.Failed())
	assert.Contains(t, res.Err, "city")
}

func TestCityTime(t *testing.T) {
	t.Parallel()

	tm := newBackends(t,
		func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, tokyoGeo) },
		func(w http.ResponseWriter, r *http.Request) {},
	)
	out := decode(t, tm.Execute(context.Background(), "get_city_time", tools.Arguments{"city": "Tokyo"}))
	assert.Equal(t, "Tokyo, Japan", out["location"])
	assert.Equal(t, "Asia/Tokyo", out["timezone"])
	assert.Equal(t, "07/03/2026, 18:05:03", out["datetime"])
}

func TestCityTime_BadTimezone(t *testing.T) {
	t.Parallel()

	tm := newBackends(t,
		func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"results":[{"name":"Nowhere","country":"X","timezone":"Mars/Olympus"}]}`)
		},
		func(w http.ResponseWriter, r *http.Request) {},
	)
	res := tm.Execute(context.Background(), "get_city_time", tools.Arguments{"city": "Nowhere"})
	require.True(t, res.Failed())
	assert.Contains(t, res.Err, "Mars/Olympus")
}

func TestLocalTime(t *testing.T) {
	t.Parallel()

	tm := tools.NewDefaultManager(tools.Config{Now: func() time.Time { return fixedNow }})
	out := decode(t, tm.Execute(context.Background(), "get_local_time", nil))
	assert.Equal(t, "Server Local Time", out["location"])
	assert.Equal(t, fixedNow.Local().Format("02/01/2006, 15:04:05"), out["datetime"])
}

func TestGeocoder_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	g := tools.NewGeocoder(srv.URL, &http.Client{Timeout: 50 * time.Millisecond})
	_, err := g.Resolve(context.Background(), "Tokyo")
	assert.Error(t, err)
}
