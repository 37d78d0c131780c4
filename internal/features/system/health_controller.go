package system

import (
	"context"
	"time"

	"go-datasync/internal/database"

	"github.com/gofiber/fiber/v2"
)

type HealthController struct {
	DB *database.MongodbDB
}

func NewHealthController(db *database.MongodbDB) *HealthController {
	return &HealthController{DB: db}
}

// Health godoc
func (ctrl *HealthController) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	status := fiber.StatusOK
	if err := ctrl.DB.DB.Client().Ping(ctx, nil); err != nil {
		dbStatus = "unreachable"
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status":   "up",
		"database": dbStatus,
		"time":     time.Now().UTC(),
	})
}
