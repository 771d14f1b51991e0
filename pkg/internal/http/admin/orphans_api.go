package admin

import (
	"git.solsynth.dev/hypernet/circle/pkg/internal/database"
	"git.solsynth.dev/hypernet/circle/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"git.solsynth.dev/hypernet/circle/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func adminListOrphanFiles(c *fiber.Ctx) error {
	if err := exts.EnsureAdmin(c); err != nil {
		return err
	}

	take := c.QueryInt("take", 20)
	offset := c.QueryInt("offset", 0)
	take = max(1, min(take, 100))

	var count int64
	if err := database.C.Model(&models.OrphanFile{}).Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var items []models.OrphanFile
	if err := database.C.Order("created_at ASC").Limit(take).Offset(offset).Find(&items).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}

func adminTriggerOrphanCleanup(c *fiber.Ctx) error {
	if err := exts.EnsureAdmin(c); err != nil {
		return err
	}

	go services.DoAutoOrphanCleanup()

	return c.SendStatus(fiber.StatusAccepted)
}
