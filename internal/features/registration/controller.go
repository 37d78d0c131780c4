package registration

import (
	"errors"

	"go-datasync/internal/features/facility"
	"go-datasync/internal/timezone"

	"github.com/gofiber/fiber/v2"
)

type RegistrationController struct {
	Service RegistrationService
}

func NewRegistrationController(service RegistrationService) *RegistrationController {
	return &RegistrationController{Service: service}
}

// RegisterPatient godoc
func (ctrl *RegistrationController) RegisterPatient(c *fiber.Ctx) error {
	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	reg, err := ctrl.Service.Register(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, facility.ErrFacilityNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Registration facility not found"})
		case errors.Is(err, timezone.ErrUnknownTimezone),
			errors.Is(err, timezone.ErrInvalidTimestamp):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":          "success",
		"message":         "Patient registered successfully",
		"patient_id":      reg.PatientID,
		"registration_id": reg.RegistrationID,
		"IST_Timestamp":   timezone.Format(reg.CanonicalTime),
	})
}

// ListPatients godoc
func (ctrl *RegistrationController) ListPatients(c *fiber.Ctx) error {
	regs, err := ctrl.Service.ListRegistrations(c.Context(), c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(regs)
}
