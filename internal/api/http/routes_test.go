package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/metoffice-forecast/internal/datahub"
	"github.com/i474232898/metoffice-forecast/internal/locate"
	"github.com/i474232898/metoffice-forecast/internal/units"
	"github.com/i474232898/metoffice-forecast/internal/weather"
)

type fakeFetcher struct {
	calls int
	lat   float64
	lon   float64
	g     weather.Granularity
	err   error
	data  []byte
}

func (f *fakeFetcher) Forecast(_ context.Context, g weather.Granularity, lat units.Latitude, lon units.Longitude) (any, error) {
	f.calls++
	f.g = g
	f.lat = lat.Degrees()
	f.lon = lon.Degrees()
	if f.err != nil {
		return nil, f.err
	}
	return weather.ParseAs(g, f.data)
}

type fakeResolver struct {
	point locate.Point
	err   error
}

func (r fakeResolver) Resolve(_ context.Context, city, country string) (locate.Point, error) {
	return r.point, r.err
}

func readSample(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile("../../weather/testdata/" + name)
	require.NoError(t, err)
	return b
}

func newApp(fetcher Fetcher, resolver locate.Resolver) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app, fetcher, resolver, nil)
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return resp.StatusCode, out
}

func TestHealth(t *testing.T) {
	app := newApp(&fakeFetcher{}, nil)

	code, body := do(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestForecastByCoordinates(t *testing.T) {
	fetcher := &fakeFetcher{data: readSample(t, "hourly.json")}
	app := newApp(fetcher, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/forecast/hourly?lat=50.727&lon=-3.474", nil)
	code, body := do(t, app, req)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Exeter", body["locationName"])
	assert.Len(t, body["predictions"], 49)
	assert.Equal(t, weather.GranularityHourly, fetcher.g)
	assert.Equal(t, 50.727, fetcher.lat)
	assert.Equal(t, -3.474, fetcher.lon)
}

func TestForecastByPlaceName(t *testing.T) {
	point, err := locate.FromDegrees(51.5, -0.12)
	require.NoError(t, err)
	fetcher := &fakeFetcher{data: readSample(t, "daily.json")}
	app := newApp(fetcher, fakeResolver{point: point})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/forecast/daily?city=London&country=GB", nil)
	code, body := do(t, app, req)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 51.5, fetcher.lat)
	assert.Equal(t, weather.GranularityDaily, fetcher.g)

	predictions := body["predictions"].([]any)
	first := predictions[0].(map[string]any)
	assert.Equal(t, "past", first["day"].(map[string]any)["kind"])
}

func TestForecastValidation(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"no location", "/api/v1/forecast/hourly"},
		{"latitude only", "/api/v1/forecast/hourly?lat=50"},
		{"city only", "/api/v1/forecast/hourly?city=Exeter"},
		{"latitude out of range", "/api/v1/forecast/hourly?lat=95&lon=0"},
		{"longitude out of range", "/api/v1/forecast/hourly?lat=0&lon=181"},
		{"not a number", "/api/v1/forecast/hourly?lat=north&lon=0"},
		{"unknown granularity", "/api/v1/forecast/weekly?lat=50&lon=0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &fakeFetcher{}
			app := newApp(fetcher, fakeResolver{})

			code, body := do(t, app, httptest.NewRequest(http.MethodGet, tt.url, nil))
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, true, body["error"])
			assert.Zero(t, fetcher.calls)
		})
	}
}

func TestForecastErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"schema", &weather.SchemaError{Err: io.ErrUnexpectedEOF}, http.StatusUnprocessableEntity},
		{"unknown condition", &units.UnknownConditionError{Code: 4}, http.StatusUnprocessableEntity},
		{"unauthorized", datahub.ErrUnauthorized, http.StatusBadGateway},
		{"circuit open", datahub.ErrCircuitOpen, http.StatusBadGateway},
		{"no api key", datahub.ErrNoAPIKey, http.StatusServiceUnavailable},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp(&fakeFetcher{err: tt.err}, nil)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/forecast/three-hourly?lat=50&lon=0", nil)
			code, _ := do(t, app, req)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestForecastResolverErrors(t *testing.T) {
	app := newApp(&fakeFetcher{}, fakeResolver{err: locate.ErrNotFound})
	code, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/forecast/daily?city=Nowhere&country=XX", nil))
	assert.Equal(t, http.StatusNotFound, code)

	app = newApp(&fakeFetcher{}, nil)
	code, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/forecast/daily?city=Exeter&country=GB", nil))
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestParse(t *testing.T) {
	app := newApp(&fakeFetcher{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse/three-hourly", strings.NewReader(string(readSample(t, "three-hourly.json"))))
	req.Header.Set("Content-Type", "application/json")
	code, body := do(t, app, req)

	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["predictions"], 8)
	coords := body["coordinates"].(map[string]any)
	assert.Equal(t, 50.727, coords["latitude"])
	assert.Equal(t, -3.474, coords["longitude"])
}

func TestParseInvalidPayload(t *testing.T) {
	app := newApp(&fakeFetcher{}, nil)

	tests := map[string]string{
		"not json":    `{"type":`,
		"no features": `{"type":"FeatureCollection","features":[]}`,
		"bad coordinates": `{"type":"FeatureCollection","features":[{"type":"Feature",
			"geometry":{"type":"Point","coordinates":[0,95,0]},
			"properties":{"location":{"name":"x"},"requestPointDistance":1,"modelRunDate":"2023-07-05T10:00Z","timeSeries":[]}}]}`,
	}
	want := map[string]int{
		"not json":        http.StatusUnprocessableEntity,
		"no features":     http.StatusUnprocessableEntity,
		"bad coordinates": http.StatusBadRequest,
	}
	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/parse/daily", strings.NewReader(payload))
			code, _ := do(t, app, req)
			assert.Equal(t, want[name], code)
		})
	}
}

func TestURL(t *testing.T) {
	app := newApp(&fakeFetcher{}, nil)

	code, body := do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/url/daily?lat=50.727&lon=-3.474", nil))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "daily", body["granularity"])
	assert.Equal(t,
		"https://data.hub.api.metoffice.gov.uk/sitespecific/v0/point/daily?dataSource=BD1&excludeParameterMetadata=true&includeLocationName=true&latitude=50.727&longitude=-3.474",
		body["url"])

	code, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/url/daily?lat=50.727", nil))
	assert.Equal(t, http.StatusBadRequest, code)
}
