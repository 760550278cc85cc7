package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/skycast-app/skycast/internal/store"
	"github.com/skycast-app/skycast/internal/theme"
	"github.com/skycast-app/skycast/internal/weather"
)

type fakeProvider struct {
	currentErr  error
	forecastErr error
	airErr      error
	geocodeErr  error
}

func (f *fakeProvider) CurrentConditions(ctx context.Context, lat, lon float64, units string) (weather.Observation, error) {
	if f.currentErr != nil {
		return weather.Observation{}, f.currentErr
	}
	return weather.Observation{
		City:        "Paris",
		Country:     "FR",
		Lat:         lat,
		Lon:         lon,
		Temp:        18.2,
		FeelsLike:   17.5,
		Condition:   "Clear",
		Icon:        "01d",
		Humidity:    40,
		WindSpeedMS: 3,
		Pressure:    1018,
		VisibilityM: 10000,
		Sunrise:     time.Date(2024, 6, 1, 4, 50, 0, 0, time.UTC).Unix(),
		Sunset:      time.Date(2024, 6, 1, 19, 40, 0, 0, time.UTC).Unix(),
	}, nil
}

func (f *fakeProvider) ForecastSamples(ctx context.Context, lat, lon float64, units string) ([]weather.ForecastSample, error) {
	if f.forecastErr != nil {
		return nil, f.forecastErr
	}
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	var samples []weather.ForecastSample
	for i := 0; i < 16; i++ {
		samples = append(samples, weather.ForecastSample{
			Timestamp: start.Add(time.Duration(i) * 3 * time.Hour).Unix(),
			Temp:      19,
			TempMin:   14,
			TempMax:   22,
			Condition: "Clear",
			Icon:      "01d",
		})
	}
	return samples, nil
}

func (f *fakeProvider) AirPollution(ctx context.Context, lat, lon float64) (weather.AirPollutionSample, error) {
	if f.airErr != nil {
		return weather.AirPollutionSample{}, f.airErr
	}
	return weather.AirPollutionSample{AQI: 1, PM25: 4.2}, nil
}

func (f *fakeProvider) Geocode(ctx context.Context, query string, limit int) ([]weather.LocationResult, error) {
	if f.geocodeErr != nil {
		return nil, f.geocodeErr
	}
	return []weather.LocationResult{
		{Name: "Paris", Country: "FR", Lat: 48.8566, Lon: 2.3522},
	}, nil
}

func newTestApp(t *testing.T, provider weather.Provider) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	service := weather.NewService(provider, time.UTC)
	themes := theme.NewManager(store.NewMemoryStore(), false)
	themes.Initialize()

	RegisterRoutes(app, service, themes)
	return app
}

func TestWeatherEndpointSuccess(t *testing.T) {
	app := newTestApp(t, &fakeProvider{})

	req := httptest.NewRequest(http.MethodGet, "/api/weather/48.8566/2.3522?units=metric", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var body weather.WeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Current.Location.City != "Paris" {
		t.Errorf("expected city Paris, got %q", body.Current.Location.City)
	}
	if body.Current.Current.Temperature != 18 {
		t.Errorf("expected temperature 18, got %d", body.Current.Current.Temperature)
	}
	if len(body.Hourly) != 12 {
		t.Errorf("expected 12 hourly entries, got %d", len(body.Hourly))
	}
	if body.AirQuality == nil || body.AirQuality.Level != "Good" {
		t.Errorf("unexpected air quality: %+v", body.AirQuality)
	}
}

func TestWeatherEndpointUpstreamFailure(t *testing.T) {
	app := newTestApp(t, &fakeProvider{forecastErr: errors.New("upstream 500")})

	req := httptest.NewRequest(http.MethodGet, "/api/weather/48.8566/2.3522", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.StatusCode)
	}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Message != "Failed to fetch weather data" {
		t.Errorf("unexpected message %q", body.Message)
	}
	if body.Error == "" {
		t.Error("expected original cause in error field")
	}
}

func TestWeatherEndpointAirQualityDegraded(t *testing.T) {
	app := newTestApp(t, &fakeProvider{airErr: errors.New("upstream 503")})

	req := httptest.NewRequest(http.MethodGet, "/api/weather/48.8566/2.3522", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var body weather.WeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.AirQuality != nil {
		t.Errorf("expected null airQuality, got %+v", body.AirQuality)
	}
}

func TestWeatherEndpointValidation(t *testing.T) {
	app := newTestApp(t, &fakeProvider{})

	for _, path := range []string{
		"/api/weather/abc/2.3522",
		"/api/weather/48.85/xyz",
		"/api/weather/123.0/2.3522",
		"/api/weather/48.85/200.0",
		"/api/weather/48.85/2.35?units=kelvin",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", path, err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", path, resp.StatusCode)
		}
	}
}

func TestSearchEndpoint(t *testing.T) {
	app := newTestApp(t, &fakeProvider{})

	req := httptest.NewRequest(http.MethodGet, "/api/search/Paris", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var results []weather.LocationResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(results) != 1 || results[0].Name != "Paris" {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestSearchEndpointUpstreamFailure(t *testing.T) {
	app := newTestApp(t, &fakeProvider{geocodeErr: errors.New("upstream 502")})

	req := httptest.NewRequest(http.MethodGet, "/api/search/Paris", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.StatusCode)
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Message != "Failed to search cities" {
		t.Errorf("unexpected message %q", body.Message)
	}
}

func TestPreferencesToggleCycle(t *testing.T) {
	app := newTestApp(t, &fakeProvider{})

	var state struct {
		State   theme.State `json:"state"`
		Markers []string    `json:"markers"`
	}

	// Three theme toggles close the cycle back to light.
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/preferences/theme/toggle", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	if state.State.Theme != theme.ThemeLight {
		t.Errorf("expected light after full cycle, got %q", state.State.Theme)
	}
	if len(state.Markers) != 0 {
		t.Errorf("expected no markers for light/none, got %v", state.Markers)
	}
}

func TestPreferencesSetUnits(t *testing.T) {
	app := newTestApp(t, &fakeProvider{})

	body := bytes.NewBufferString(`{"units":"imperial"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/preferences/units", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var state struct {
		State theme.State `json:"state"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if state.State.Units != theme.UnitsImperial {
		t.Errorf("expected imperial, got %q", state.State.Units)
	}

	// Invalid unit systems are rejected.
	bad := bytes.NewBufferString(`{"units":"kelvin"}`)
	req = httptest.NewRequest(http.MethodPut, "/api/preferences/units", bad)
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", resp.StatusCode)
	}
}
