package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
)

func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{Status: "ok"})
}
