package weather

// MapIcon converts an OpenWeatherMap icon code (e.g. "10d") to the
// dashboard's display icon identifier. Codes the dashboard has no art
// for fall back to "sun".
func MapIcon(code string) string {
	switch code {
	case "01d":
		return "sun"
	case "01n":
		return "moon"
	case "02d":
		return "cloud_sun"
	case "02n":
		return "cloud_moon"
	case "03d", "03n", "04d", "04n":
		return "cloud"
	case "09d", "09n", "10n":
		return "rain"
	case "10d":
		return "sun_rain"
	case "11d", "11n":
		return "storm"
	case "13d", "13n":
		return "snow"
	case "50d", "50n":
		return "fog"
	default:
		return "sun"
	}
}
