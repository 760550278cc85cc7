package weather

import "context"

// Observation is a raw current-conditions reading as delivered by the
// provider, before normalization. Wind speed is m/s, visibility is
// meters, sunrise/sunset are epoch seconds.
type Observation struct {
	City    string
	Country string
	Lat     float64
	Lon     float64

	Temp        float64
	FeelsLike   float64
	Condition   string
	Icon        string
	Humidity    int
	WindSpeedMS float64
	Pressure    int
	VisibilityM int
	Sunrise     int64
	Sunset      int64
}

// ForecastSample is one 3-hour forecast data point from the provider.
// Samples arrive in ascending timestamp order and are immutable.
type ForecastSample struct {
	Timestamp   int64
	Temp        float64
	TempMin     float64
	TempMax     float64
	Condition   string
	Icon        string
	Pop         float64 // precipitation probability, 0..1
	WindSpeedMS float64
}

// AirPollutionSample is the provider's air quality reading. Component
// concentrations missing from the payload stay zero.
type AirPollutionSample struct {
	AQI  int
	PM25 float64
	PM10 float64
	O3   float64
	NO2  float64
	SO2  float64
	CO   float64
}

// Provider abstracts the upstream weather/geocoding data source.
// The air-pollution endpoint is never unit-scaled by the provider, so
// AirPollution takes no units parameter.
type Provider interface {
	CurrentConditions(ctx context.Context, lat, lon float64, units string) (Observation, error)
	ForecastSamples(ctx context.Context, lat, lon float64, units string) ([]ForecastSample, error)
	AirPollution(ctx context.Context, lat, lon float64) (AirPollutionSample, error)
	Geocode(ctx context.Context, query string, limit int) ([]LocationResult, error)
}
