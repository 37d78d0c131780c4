package sync

import (
	"errors"
	"time"

	"go-datasync/internal/features/facility"
	"go-datasync/internal/features/target"
	"go-datasync/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SyncController struct {
	Service SyncService
	LogRepo OperationLogRepository
}

func NewSyncController(service SyncService, logRepo OperationLogRepository) *SyncController {
	return &SyncController{Service: service, LogRepo: logRepo}
}

// TriggerSync godoc
func (ctrl *SyncController) TriggerSync(c *fiber.Ctx) error {
	var body struct {
		FacilityID string `json:"source_facility_id"`
		TargetID   string `json:"target_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if body.FacilityID == "" || body.TargetID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "source_facility_id and target_id are required",
		})
	}

	actor := middleware.ActorFromCtx(c)
	result, err := ctrl.Service.TriggerSync(c.Context(), body.FacilityID, body.TargetID, KindManual, actor)
	if err != nil {
		switch {
		case errors.Is(err, ErrSyncAlreadyInProgress):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, facility.ErrFacilityNotFound), errors.Is(err, target.ErrTargetNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, ErrFacilityInactive), errors.Is(err, ErrTargetInactive):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status":  "accepted",
		"message": "Sync started",
		"log_id":  result.LogID,
	})
}

// GetOperation godoc
func (ctrl *SyncController) GetOperation(c *fiber.Ctx) error {
	log, err := ctrl.Service.GetOperation(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrOperationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Sync operation not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(log)
}

// CancelOperation godoc
func (ctrl *SyncController) CancelOperation(c *fiber.Ctx) error {
	if err := ctrl.Service.Cancel(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, ErrOperationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Sync operation not found"})
		}
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Cancellation requested"})
}

// ListLogs godoc
func (ctrl *SyncController) ListLogs(c *fiber.Ctx) error {
	filter, err := parseLogFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	logs, err := ctrl.Service.ListLogs(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if logs == nil {
		logs = []OperationLog{}
	}
	return c.JSON(logs)
}

// ExportLogs godoc
func (ctrl *SyncController) ExportLogs(c *fiber.Ctx) error {
	filter, err := parseLogFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	data, filename, err := ExportLogs(c.Context(), ctrl.LogRepo, filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

func parseLogFilter(c *fiber.Ctx) (LogFilter, error) {
	filter := LogFilter{
		FacilityID: c.Query("facility_id"),
		TargetID:   c.Query("target_id"),
		Status:     OperationStatus(c.Query("status")),
		Kind:       OperationKind(c.Query("operation_type")),
		Limit:      int64(c.QueryInt("limit")),
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return filter, errors.New("invalid from timestamp, expected RFC3339")
		}
		filter.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return filter, errors.New("invalid to timestamp, expected RFC3339")
		}
		filter.To = t
	}
	return filter, nil
}
