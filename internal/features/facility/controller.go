package facility

import (
	"errors"

	"go-datasync/internal/timezone"

	"github.com/gofiber/fiber/v2"
)

type FacilityController struct {
	Service FacilityService
}

func NewFacilityController(service FacilityService) *FacilityController {
	return &FacilityController{Service: service}
}

// CreateFacility godoc
func (ctrl *FacilityController) CreateFacility(c *fiber.Ctx) error {
	var body struct {
		Name     string `json:"facility_name"`
		Timezone string `json:"facility_timezone"`
		Location string `json:"facility_location"`
		IsActive *bool  `json:"is_active"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	f := Facility{
		Name:     body.Name,
		Timezone: body.Timezone,
		Location: body.Location,
		IsActive: true,
	}
	if body.IsActive != nil {
		f.IsActive = *body.IsActive
	}

	if err := ctrl.Service.CreateFacility(c.Context(), &f); err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, timezone.ErrUnknownTimezone) {
			status = fiber.StatusUnprocessableEntity
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":      "success",
		"message":     "Facility added successfully!",
		"facility_id": f.ID,
	})
}

// ListFacilities godoc
func (ctrl *FacilityController) ListFacilities(c *fiber.Ctx) error {
	filter := ListFilter{}
	if tz := c.Query("timezone"); tz != "" && tz != "all" {
		filter.Timezone = tz
	}
	if c.Query("active") == "true" {
		filter.ActiveOnly = true
	}

	facilities, err := ctrl.Service.ListFacilities(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(facilities)
}

// GetFacility godoc
func (ctrl *FacilityController) GetFacility(c *fiber.Ctx) error {
	f, err := ctrl.Service.GetFacility(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrFacilityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Facility not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(f)
}

// UpdateFacility godoc
func (ctrl *FacilityController) UpdateFacility(c *fiber.Ctx) error {
	var body struct {
		Name     *string `json:"facility_name"`
		Timezone *string `json:"facility_timezone"`
		Location *string `json:"facility_location"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updates := map[string]interface{}{}
	if body.Name != nil {
		updates["name"] = *body.Name
	}
	if body.Timezone != nil {
		updates["timezone"] = *body.Timezone
	}
	if body.Location != nil {
		updates["location"] = *body.Location
	}
	if body.IsActive != nil {
		updates["is_active"] = *body.IsActive
	}

	if err := ctrl.Service.UpdateFacility(c.Context(), c.Params("id"), updates); err != nil {
		if errors.Is(err, ErrFacilityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Facility not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Facility updated successfully!"})
}

// DeactivateFacility godoc
func (ctrl *FacilityController) DeactivateFacility(c *fiber.Ctx) error {
	if err := ctrl.Service.DeactivateFacility(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, ErrFacilityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Facility not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Facility deactivated"})
}

// ListTimezones godoc
func (ctrl *FacilityController) ListTimezones(c *fiber.Ctx) error {
	timezones, err := ctrl.Service.ListTimezones(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"timezones": timezones})
}

// GlobalOptions godoc
func (ctrl *FacilityController) GlobalOptions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"global_options": ctrl.Service.GlobalOptions()})
}
