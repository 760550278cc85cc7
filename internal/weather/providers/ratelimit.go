package providers

import (
	"context"

	"github.com/skycast-app/skycast/internal/weather"
	"golang.org/x/time/rate"
)

// RateLimitedProvider wraps a weather.Provider with a token-bucket
// limiter so a burst of dashboard requests cannot blow the upstream
// API quota. Waiting for a token respects context cancellation.
type RateLimitedProvider struct {
	inner   weather.Provider
	limiter *rate.Limiter
}

// NewRateLimitedProvider allows rps requests per second with the given
// burst size.
func NewRateLimitedProvider(inner weather.Provider, rps float64, burst int) *RateLimitedProvider {
	return &RateLimitedProvider{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (p *RateLimitedProvider) CurrentConditions(ctx context.Context, lat, lon float64, units string) (weather.Observation, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return weather.Observation{}, err
	}
	return p.inner.CurrentConditions(ctx, lat, lon, units)
}

func (p *RateLimitedProvider) ForecastSamples(ctx context.Context, lat, lon float64, units string) ([]weather.ForecastSample, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return p.inner.ForecastSamples(ctx, lat, lon, units)
}

func (p *RateLimitedProvider) AirPollution(ctx context.Context, lat, lon float64) (weather.AirPollutionSample, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return weather.AirPollutionSample{}, err
	}
	return p.inner.AirPollution(ctx, lat, lon)
}

func (p *RateLimitedProvider) Geocode(ctx context.Context, query string, limit int) ([]weather.LocationResult, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return p.inner.Geocode(ctx, query, limit)
}
