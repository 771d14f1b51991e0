package api

import (
	"git.solsynth.dev/hypernet/circle/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"git.solsynth.dev/hypernet/circle/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

// getFormField tells a missing field apart from an empty one.
func getFormField(c *fiber.Ctx, key string) *string {
	if form, err := c.MultipartForm(); err == nil {
		if values, ok := form.Value[key]; ok && len(values) > 0 {
			return &values[0]
		}
		return nil
	}

	if c.Request().PostArgs().Has(key) {
		value := string(c.Request().PostArgs().Peek(key))
		return &value
	}
	return nil
}

func getProfile(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	return c.JSON(fiber.Map{
		"user": services.NewProfileView(user),
	})
}

func updateProfile(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	picture, err := exts.ReadUpload(c, "profile_picture")
	if err != nil {
		return err
	}

	if _, err := services.UpdateProfile(user, services.ProfileUpdate{
		Name:           getFormField(c, "name"),
		Username:       getFormField(c, "username"),
		Bio:            getFormField(c, "bio"),
		Location:       getFormField(c, "location"),
		ProfilePicture: picture,
	}); err != nil {
		return serviceError(err)
	}

	exts.FlashSuccess(c, "Profile updated.")
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

func deleteProfile(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		Password string `json:"password" form:"password" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if err := services.DeleteAccount(user, data.Password); err != nil {
		return serviceError(err)
	}

	exts.ClearSessionCookie(c)
	return c.Redirect("/", fiber.StatusSeeOther)
}
