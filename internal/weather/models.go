package weather

// Location identifies the place the current conditions were observed at.
type Location struct {
	City    string  `json:"city"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// CurrentConditions holds the normalized current observation values.
// Temperatures are rounded to whole degrees, wind speed is km/h and
// visibility is km regardless of the provider's native units.
type CurrentConditions struct {
	Temperature int    `json:"temperature"`
	FeelsLike   int    `json:"feelsLike"`
	Condition   string `json:"condition"`
	Icon        string `json:"icon"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"windSpeed"`
	Pressure    int    `json:"pressure"`
	Visibility  int    `json:"visibility"`
	UVIndex     int    `json:"uvIndex"`
	Sunrise     string `json:"sunrise"`
	Sunset      string `json:"sunset"`
}

// CurrentWeather is the current-conditions section of a weather response.
type CurrentWeather struct {
	Location  Location          `json:"location"`
	Current   CurrentConditions `json:"current"`
	Timestamp string            `json:"timestamp"`
}

// HourlyPoint is a single entry of the truncated hourly view, derived
// 1:1 from a raw forecast sample.
type HourlyPoint struct {
	Time          string `json:"time"`
	Temperature   int    `json:"temperature"`
	Condition     string `json:"condition"`
	Icon          string `json:"icon"`
	Precipitation int    `json:"precipitation"`
	WindSpeed     int    `json:"windSpeed"`
}

// DailyBucket is the per-calendar-day rollup of the forecast samples
// sharing a date. High/low fold max/min over the whole day; condition,
// icon and precipitation come from the first sample of the day.
type DailyBucket struct {
	Date          string `json:"date"`
	DayName       string `json:"dayName"`
	High          int    `json:"high"`
	Low           int    `json:"low"`
	Condition     string `json:"condition"`
	Icon          string `json:"icon"`
	Precipitation int    `json:"precipitation"`
	Sunrise       string `json:"sunrise"`
	Sunset        string `json:"sunset"`
}

// AirQuality is the provider's 1-5 AQI reading with component
// concentrations. Level is the human-readable label for the index.
type AirQuality struct {
	AQI   int     `json:"aqi"`
	Level string  `json:"level"`
	PM25  float64 `json:"pm25"`
	PM10  float64 `json:"pm10"`
	O3    float64 `json:"o3"`
	NO2   float64 `json:"no2"`
	SO2   float64 `json:"so2"`
	CO    float64 `json:"co"`
}

// WeatherAlert is a severe-weather advisory. The base provider
// endpoints carry no alert feed, so responses currently always ship an
// empty list.
type WeatherAlert struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Issued      string `json:"issued"`
	Expires     string `json:"expires"`
}

// WeatherResponse is the full normalized payload assembled per request.
// AirQuality is nil when the air-pollution call failed; that is a
// degraded-but-successful response, not an error.
type WeatherResponse struct {
	Current    CurrentWeather `json:"current"`
	Hourly     []HourlyPoint  `json:"hourly"`
	Daily      []DailyBucket  `json:"daily"`
	AirQuality *AirQuality    `json:"airQuality"`
	Alerts     []WeatherAlert `json:"alerts"`
}

// LocationResult is one geocoding hit, passed through from the
// provider unchanged.
type LocationResult struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}
