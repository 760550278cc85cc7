package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

var (
	// ErrWeatherFetch is returned when either mandatory upstream call
	// (current conditions or forecast) fails. No partial weather
	// response is ever returned.
	ErrWeatherFetch = errors.New("failed to fetch weather data")

	// ErrCitySearch is returned when the geocoding upstream fails.
	ErrCitySearch = errors.New("failed to search cities")
)

// searchLimit caps geocoding results per the dashboard's search box.
const searchLimit = 5

var aqiLevels = [...]string{"Good", "Fair", "Moderate", "Poor", "Very Poor"}

// Service orchestrates the upstream provider calls and reshapes their
// combined result into the dashboard's response contract.
type Service struct {
	provider Provider
	loc      *time.Location
	now      func() time.Time
}

// NewService creates a Service. loc is the frame used for day
// boundaries and clock labels; nil means UTC.
func NewService(provider Provider, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		provider: provider,
		loc:      loc,
		now:      time.Now,
	}
}

// FetchWeather issues the current-conditions, forecast and air-quality
// calls concurrently and joins on all three. The two mandatory calls
// decide success; a failed air-quality call only degrades the response
// (AirQuality stays nil). Once issued, all three calls are awaited --
// there is no early return on first failure.
func (s *Service) FetchWeather(ctx context.Context, lat, lon float64, units string) (*WeatherResponse, error) {
	var (
		wg      sync.WaitGroup
		obs     Observation
		obsErr  error
		samples []ForecastSample
		fcErr   error
		air     AirPollutionSample
		airErr  error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		obs, obsErr = s.provider.CurrentConditions(ctx, lat, lon, units)
	}()
	go func() {
		defer wg.Done()
		samples, fcErr = s.provider.ForecastSamples(ctx, lat, lon, units)
	}()
	go func() {
		defer wg.Done()
		air, airErr = s.provider.AirPollution(ctx, lat, lon)
	}()
	wg.Wait()

	if obsErr != nil {
		log.Printf("ERROR: current conditions fetch failed for %.4f,%.4f: %v", lat, lon, obsErr)
		return nil, fmt.Errorf("%w: %v", ErrWeatherFetch, obsErr)
	}
	if fcErr != nil {
		log.Printf("ERROR: forecast fetch failed for %.4f,%.4f: %v", lat, lon, fcErr)
		return nil, fmt.Errorf("%w: %v", ErrWeatherFetch, fcErr)
	}

	current := s.normalizeCurrent(obs)
	hourly, daily := Aggregate(samples, s.loc)

	// The forecast feed carries no per-day sun times; reuse today's.
	for i := range daily {
		daily[i].Sunrise = current.Current.Sunrise
		daily[i].Sunset = current.Current.Sunset
	}

	resp := &WeatherResponse{
		Current: current,
		Hourly:  hourly,
		Daily:   daily,
		Alerts:  []WeatherAlert{},
	}

	if airErr != nil {
		log.Printf("INFO: air quality unavailable for %.4f,%.4f: %v", lat, lon, airErr)
	} else {
		resp.AirQuality = normalizeAirQuality(air)
	}

	return resp, nil
}

// SearchLocations passes the query through to the provider's geocoding
// endpoint, capped at 5 results.
func (s *Service) SearchLocations(ctx context.Context, query string) ([]LocationResult, error) {
	results, err := s.provider.Geocode(ctx, query, searchLimit)
	if err != nil {
		log.Printf("ERROR: city search failed for %q: %v", query, err)
		return nil, fmt.Errorf("%w: %v", ErrCitySearch, err)
	}
	if results == nil {
		results = []LocationResult{}
	}
	return results, nil
}

func (s *Service) normalizeCurrent(obs Observation) CurrentWeather {
	return CurrentWeather{
		Location: Location{
			City:    obs.City,
			Country: obs.Country,
			Lat:     obs.Lat,
			Lon:     obs.Lon,
		},
		Current: CurrentConditions{
			Temperature: round(obs.Temp),
			FeelsLike:   round(obs.FeelsLike),
			Condition:   obs.Condition,
			Icon:        MapIcon(obs.Icon),
			Humidity:    obs.Humidity,
			WindSpeed:   round(obs.WindSpeedMS * 3.6),
			Pressure:    obs.Pressure,
			Visibility:  round(float64(obs.VisibilityM) / 1000),
			// UV index is not available from the base endpoints.
			UVIndex: 0,
			Sunrise: s.clock12(obs.Sunrise),
			Sunset:  s.clock12(obs.Sunset),
		},
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}
}

// clock12 formats an epoch-seconds instant as a localized 12-hour
// clock string such as "6:05 AM".
func (s *Service) clock12(epoch int64) string {
	return time.Unix(epoch, 0).In(s.loc).Format("3:04 PM")
}

// normalizeAirQuality maps the provider's 1-5 index onto its label
// scale; out-of-range values read "Unknown".
func normalizeAirQuality(a AirPollutionSample) *AirQuality {
	level := "Unknown"
	if a.AQI >= 1 && a.AQI <= len(aqiLevels) {
		level = aqiLevels[a.AQI-1]
	}
	return &AirQuality{
		AQI:   a.AQI,
		Level: level,
		PM25:  a.PM25,
		PM10:  a.PM10,
		O3:    a.O3,
		NO2:   a.NO2,
		SO2:   a.SO2,
		CO:    a.CO,
	}
}
