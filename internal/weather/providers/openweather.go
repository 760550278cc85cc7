package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/skycast-app/skycast/internal/weather"
	"github.com/sony/gobreaker"
)

// OpenWeatherProvider implements weather.Provider against the
// OpenWeatherMap current-conditions, 5-day/3-hour forecast,
// air-pollution and direct-geocoding endpoints.
type OpenWeatherProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenWeatherProvider{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org",
		client:  client,
		circuit: cb,
	}
}

func (p *OpenWeatherProvider) CurrentConditions(ctx context.Context, lat, lon float64, units string) (weather.Observation, error) {
	values := p.coordQuery(lat, lon)
	values.Set("units", units)

	resp, err := doRequest(ctx, p.client, p.circuit, p.endpoint("/data/2.5/weather", values))
	if err != nil {
		return weather.Observation{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Name string `json:"name"`
		Sys  struct {
			Country string `json:"country"`
			Sunrise int64  `json:"sunrise"`
			Sunset  int64  `json:"sunset"`
		} `json:"sys"`
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
			Pressure  int     `json:"pressure"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Visibility int `json:"visibility"`
		Weather    []struct {
			Main string `json:"main"`
			Icon string `json:"icon"`
		} `json:"weather"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Observation{}, fmt.Errorf("decoding current conditions: %w", err)
	}

	obs := weather.Observation{
		City:        payload.Name,
		Country:     payload.Sys.Country,
		Lat:         payload.Coord.Lat,
		Lon:         payload.Coord.Lon,
		Temp:        payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		Humidity:    payload.Main.Humidity,
		WindSpeedMS: payload.Wind.Speed,
		Pressure:    payload.Main.Pressure,
		VisibilityM: payload.Visibility,
		Sunrise:     payload.Sys.Sunrise,
		Sunset:      payload.Sys.Sunset,
	}
	if len(payload.Weather) > 0 {
		obs.Condition = payload.Weather[0].Main
		obs.Icon = payload.Weather[0].Icon
	}
	return obs, nil
}

func (p *OpenWeatherProvider) ForecastSamples(ctx context.Context, lat, lon float64, units string) ([]weather.ForecastSample, error) {
	values := p.coordQuery(lat, lon)
	values.Set("units", units)

	resp, err := doRequest(ctx, p.client, p.circuit, p.endpoint("/data/2.5/forecast", values))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp    float64 `json:"temp"`
				TempMin float64 `json:"temp_min"`
				TempMax float64 `json:"temp_max"`
			} `json:"main"`
			Weather []struct {
				Main string `json:"main"`
				Icon string `json:"icon"`
			} `json:"weather"`
			Pop  float64 `json:"pop"`
			Wind struct {
				Speed float64 `json:"speed"`
			} `json:"wind"`
		} `json:"list"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding forecast: %w", err)
	}

	samples := make([]weather.ForecastSample, 0, len(payload.List))
	for _, item := range payload.List {
		s := weather.ForecastSample{
			Timestamp:   item.Dt,
			Temp:        item.Main.Temp,
			TempMin:     item.Main.TempMin,
			TempMax:     item.Main.TempMax,
			Pop:         item.Pop,
			WindSpeedMS: item.Wind.Speed,
		}
		if len(item.Weather) > 0 {
			s.Condition = item.Weather[0].Main
			s.Icon = item.Weather[0].Icon
		}
		samples = append(samples, s)
	}
	return samples, nil
}

// AirPollution deliberately omits the units parameter; the provider
// does not unit-scale this endpoint.
func (p *OpenWeatherProvider) AirPollution(ctx context.Context, lat, lon float64) (weather.AirPollutionSample, error) {
	values := p.coordQuery(lat, lon)

	resp, err := doRequest(ctx, p.client, p.circuit, p.endpoint("/data/2.5/air_pollution", values))
	if err != nil {
		return weather.AirPollutionSample{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		List []struct {
			Main struct {
				AQI int `json:"aqi"`
			} `json:"main"`
			Components struct {
				PM25 float64 `json:"pm2_5"`
				PM10 float64 `json:"pm10"`
				O3   float64 `json:"o3"`
				NO2  float64 `json:"no2"`
				SO2  float64 `json:"so2"`
				CO   float64 `json:"co"`
			} `json:"components"`
		} `json:"list"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.AirPollutionSample{}, fmt.Errorf("decoding air pollution: %w", err)
	}
	if len(payload.List) == 0 {
		return weather.AirPollutionSample{}, errors.New("empty air pollution response")
	}

	item := payload.List[0]
	return weather.AirPollutionSample{
		AQI:  item.Main.AQI,
		PM25: item.Components.PM25,
		PM10: item.Components.PM10,
		O3:   item.Components.O3,
		NO2:  item.Components.NO2,
		SO2:  item.Components.SO2,
		CO:   item.Components.CO,
	}, nil
}

func (p *OpenWeatherProvider) Geocode(ctx context.Context, query string, limit int) ([]weather.LocationResult, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("limit", strconv.Itoa(limit))
	values.Set("appid", p.apiKey)

	resp, err := doRequest(ctx, p.client, p.circuit, p.endpoint("/geo/1.0/direct", values))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload []struct {
		Name    string  `json:"name"`
		Country string  `json:"country"`
		State   string  `json:"state"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding geocoding results: %w", err)
	}

	results := make([]weather.LocationResult, 0, len(payload))
	for _, item := range payload {
		results = append(results, weather.LocationResult{
			Name:    item.Name,
			Country: item.Country,
			State:   item.State,
			Lat:     item.Lat,
			Lon:     item.Lon,
		})
	}
	return results, nil
}

func (p *OpenWeatherProvider) coordQuery(lat, lon float64) url.Values {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("appid", p.apiKey)
	return values
}

func (p *OpenWeatherProvider) endpoint(path string, values url.Values) string {
	return fmt.Sprintf("%s%s?%s", p.baseURL, path, values.Encode())
}
