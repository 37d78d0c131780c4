package metrics

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

type MetricsController struct {
	Service MetricsService
}

func NewMetricsController(service MetricsService) *MetricsController {
	return &MetricsController{Service: service}
}

// Overview godoc
func (ctrl *MetricsController) Overview(c *fiber.Ctx) error {
	overview, err := ctrl.Service.Overview(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(overview)
}

// LagStats godoc
func (ctrl *MetricsController) LagStats(c *fiber.Ctx) error {
	window, err := parseWindow(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	stats, err := ctrl.Service.LagStats(c.Context(), c.Query("facility_id"), c.Query("target_id"), window)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(stats)
}

// SuccessRate godoc
func (ctrl *MetricsController) SuccessRate(c *fiber.Ctx) error {
	window, err := parseWindow(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	rate, err := ctrl.Service.SuccessRate(c.Context(), c.Query("facility_id"), c.Query("target_id"), window)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rate)
}

// OffsetComparison godoc
func (ctrl *MetricsController) OffsetComparison(c *fiber.Ctx) error {
	window, err := parseWindow(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	groups, err := ctrl.Service.OffsetComparison(c.Context(), window)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"offset_groups": groups})
}

// TimezoneStats godoc
func (ctrl *MetricsController) TimezoneStats(c *fiber.Ctx) error {
	stats, err := ctrl.Service.TimezoneStats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"timezone_stats": stats})
}

func parseWindow(c *fiber.Ctx) (Window, error) {
	window := Window{}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return window, errors.New("invalid from timestamp, expected RFC3339")
		}
		window.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return window, errors.New("invalid to timestamp, expected RFC3339")
		}
		window.To = t
	}
	return window, nil
}
