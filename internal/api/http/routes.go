package httpapi

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/i474232898/metoffice-forecast/internal/datahub"
	"github.com/i474232898/metoffice-forecast/internal/locate"
	"github.com/i474232898/metoffice-forecast/internal/units"
	"github.com/i474232898/metoffice-forecast/internal/weather"
)

var validate = validator.New()

// Fetcher fetches and converts a forecast. *datahub.Client implements it.
type Fetcher interface {
	Forecast(ctx context.Context, g weather.Granularity, lat units.Latitude, lon units.Longitude) (any, error)
}

type handler struct {
	fetcher  Fetcher
	resolver locate.Resolver
	logger   *zap.Logger
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, fetcher Fetcher, resolver locate.Resolver, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handler{fetcher: fetcher, resolver: resolver, logger: logger}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "metoffice-forecast",
		})
	})

	v1 := app.Group("/api/v1")
	v1.Get("/forecast/:granularity", h.forecast)
	v1.Post("/parse/:granularity", h.parse)
	v1.Get("/url/:granularity", h.url)
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

func (h *handler) forecast(c *fiber.Ctx) error {
	g, err := granularityParam(c)
	if err != nil {
		return err
	}

	var q pointQuery
	q.bind(c)
	if err := validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var point locate.Point
	if q.Lat != "" {
		point, err = q.point()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	} else {
		if h.resolver == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "location lookup is not configured")
		}
		point, err = h.resolver.Resolve(c.UserContext(), q.City, q.Country)
		if err != nil {
			return h.fail(c, err)
		}
	}

	f, err := h.fetcher.Forecast(c.UserContext(), g, point.Latitude, point.Longitude)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(f)
}

func (h *handler) parse(c *fiber.Ctx) error {
	g, err := granularityParam(c)
	if err != nil {
		return err
	}
	f, err := weather.ParseAs(g, c.Body())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(f)
}

func (h *handler) url(c *fiber.Ctx) error {
	g, err := granularityParam(c)
	if err != nil {
		return err
	}

	var q coordinatesQuery
	q.Lat = c.Query("lat")
	q.Lon = c.Query("lon")
	if err := validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	point, err := locate.FromDegrees(mustFloat(q.Lat), mustFloat(q.Lon))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	u := weather.URLForLocation(g, point.Latitude, point.Longitude)
	return c.JSON(fiber.Map{
		"granularity": g.String(),
		"url":         u.String(),
	})
}

// fail maps domain and upstream errors onto a status code.
func (h *handler) fail(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	if code >= fiber.StatusInternalServerError {
		h.logger.Warn("request failed",
			zap.String("path", c.Path()),
			zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
			zap.Error(err))
	}
	return fiber.NewError(code, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, units.ErrOutOfBounds), errors.Is(err, locate.ErrBadRequest):
		return fiber.StatusBadRequest
	case errors.Is(err, weather.ErrSchema), errors.Is(err, units.ErrUnknownCondition):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, locate.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, datahub.ErrNoAPIKey), errors.Is(err, locate.ErrNoAPIKey):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusBadGateway
	}
}

func granularityParam(c *fiber.Ctx) (weather.Granularity, error) {
	g, err := weather.ParseGranularity(c.Params("granularity"))
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return g, nil
}

// pointQuery selects a forecast point by coordinates or by place name.
type pointQuery struct {
	Lat     string `validate:"required_with=Lon,omitempty,latitude"`
	Lon     string `validate:"required_with=Lat,omitempty,longitude"`
	City    string `validate:"required_without=Lat,omitempty,max=100"`
	Country string `validate:"required_with=City,omitempty,max=100"`
}

func (q *pointQuery) bind(c *fiber.Ctx) {
	q.Lat = c.Query("lat")
	q.Lon = c.Query("lon")
	q.City = c.Query("city")
	q.Country = c.Query("country")
}

func (q pointQuery) point() (locate.Point, error) {
	return locate.FromDegrees(mustFloat(q.Lat), mustFloat(q.Lon))
}

type coordinatesQuery struct {
	Lat string `validate:"required,latitude"`
	Lon string `validate:"required,longitude"`
}

// mustFloat parses a value already checked by the latitude or longitude tag.
func mustFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
