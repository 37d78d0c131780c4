package target

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type TargetController struct {
	Service TargetService
}

func NewTargetController(service TargetService) *TargetController {
	return &TargetController{Service: service}
}

// CreateTarget godoc
func (ctrl *TargetController) CreateTarget(c *fiber.Ctx) error {
	var body struct {
		Name             string `json:"target_name"`
		Kind             Kind   `json:"target_type"`
		ConnectionString string `json:"connection_string"`
		IsActive         *bool  `json:"is_active"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	t := SyncTarget{
		Name:             body.Name,
		Kind:             body.Kind,
		ConnectionString: body.ConnectionString,
		IsActive:         true,
	}
	if body.IsActive != nil {
		t.IsActive = *body.IsActive
	}

	if err := ctrl.Service.CreateTarget(c.Context(), &t); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":    "success",
		"message":   "Target added successfully!",
		"target_id": t.ID,
	})
}

// ListTargets godoc
func (ctrl *TargetController) ListTargets(c *fiber.Ctx) error {
	filter := ListFilter{}
	if c.Query("active") == "true" {
		filter.ActiveOnly = true
	}
	targets, err := ctrl.Service.ListTargets(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(targets)
}

// GetTarget godoc
func (ctrl *TargetController) GetTarget(c *fiber.Ctx) error {
	t, err := ctrl.Service.GetTarget(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrTargetNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Target not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(t)
}

// UpdateTarget godoc
func (ctrl *TargetController) UpdateTarget(c *fiber.Ctx) error {
	var body struct {
		Name             *string `json:"target_name"`
		Kind             *Kind   `json:"target_type"`
		ConnectionString *string `json:"connection_string"`
		IsActive         *bool   `json:"is_active"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updates := map[string]interface{}{}
	if body.Name != nil {
		updates["name"] = *body.Name
	}
	if body.Kind != nil {
		updates["kind"] = *body.Kind
	}
	if body.ConnectionString != nil {
		updates["connection_string"] = *body.ConnectionString
	}
	if body.IsActive != nil {
		updates["is_active"] = *body.IsActive
	}

	if err := ctrl.Service.UpdateTarget(c.Context(), c.Params("id"), updates); err != nil {
		if errors.Is(err, ErrTargetNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Target not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Target updated successfully!"})
}

// DeactivateTarget godoc
func (ctrl *TargetController) DeactivateTarget(c *fiber.Ctx) error {
	if err := ctrl.Service.DeactivateTarget(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, ErrTargetNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Target not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Target deactivated"})
}
