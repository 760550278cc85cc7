package httpapi

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/skycast-app/skycast/internal/theme"
	"github.com/skycast-app/skycast/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, themes *theme.Manager) {
	api := app.Group("/api")

	api.Get("/weather/:lat/:lon", func(c *fiber.Ctx) error {
		params, err := parseWeatherParams(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		resp, err := service.FetchWeather(c.Context(), params.Lat, params.Lon, params.Units)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to fetch weather data",
				"error":   err.Error(),
			})
		}
		return c.JSON(resp)
	})

	api.Get("/search/:query", func(c *fiber.Ctx) error {
		query := c.Params("query")
		if unescaped, err := url.PathUnescape(query); err == nil {
			query = unescaped
		}
		if strings.TrimSpace(query) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "search query is required")
		}

		results, err := service.SearchLocations(c.Context(), query)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to search cities",
				"error":   err.Error(),
			})
		}
		return c.JSON(results)
	})

	api.Get("/preferences", func(c *fiber.Ctx) error {
		return c.JSON(preferencesPayload(themes))
	})

	api.Post("/preferences/theme/toggle", func(c *fiber.Ctx) error {
		themes.ToggleTheme()
		return c.JSON(preferencesPayload(themes))
	})

	api.Post("/preferences/seasonal/toggle", func(c *fiber.Ctx) error {
		themes.ToggleSeasonal()
		return c.JSON(preferencesPayload(themes))
	})

	api.Put("/preferences/units", func(c *fiber.Ctx) error {
		var req unitsRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		themes.SetUnits(theme.Units(req.Units))
		return c.JSON(preferencesPayload(themes))
	})
}

// weatherParams holds the validated path/query parameters of the
// weather endpoint.
type weatherParams struct {
	Lat   float64 `validate:"latitude"`
	Lon   float64 `validate:"longitude"`
	Units string  `validate:"oneof=metric imperial"`
}

func parseWeatherParams(c *fiber.Ctx) (weatherParams, error) {
	var p weatherParams

	lat, err := strconv.ParseFloat(c.Params("lat"), 64)
	if err != nil {
		return p, errors.New("invalid lat parameter")
	}
	lon, err := strconv.ParseFloat(c.Params("lon"), 64)
	if err != nil {
		return p, errors.New("invalid lon parameter")
	}

	p.Lat = lat
	p.Lon = lon
	p.Units = c.Query("units", "metric")

	if err := validate.Struct(p); err != nil {
		return p, err
	}
	return p, nil
}

type unitsRequest struct {
	Units string `json:"units" validate:"oneof=metric imperial"`
}

func preferencesPayload(m *theme.Manager) fiber.Map {
	return fiber.Map{
		"state":   m.State(),
		"markers": m.Markers(),
	}
}
