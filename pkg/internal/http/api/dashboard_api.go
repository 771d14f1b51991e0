package api

import (
	"git.solsynth.dev/hypernet/circle/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"git.solsynth.dev/hypernet/circle/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

type dashboardResponse struct {
	services.Dashboard

	Auth  fiber.Map  `json:"auth"`
	Flash exts.Flash `json:"flash"`
}

func getDashboard(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	dashboard, err := services.AssembleDashboard(user)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(dashboardResponse{
		Dashboard: dashboard,
		Auth:      fiber.Map{"user": services.NewProfileView(user)},
		Flash:     exts.ConsumeFlash(c),
	})
}
