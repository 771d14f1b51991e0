package exts

import "github.com/gofiber/fiber/v2"

func RedirectBack(c *fiber.Ctx) error {
	if referer := c.Get(fiber.HeaderReferer); len(referer) > 0 {
		return c.Redirect(referer, fiber.StatusSeeOther)
	}
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}
