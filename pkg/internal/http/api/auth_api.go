package api

import (
	"git.solsynth.dev/hypernet/circle/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/circle/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func registerAccount(c *fiber.Ctx) error {
	var data struct {
		Name                 string `json:"name" form:"name" validate:"required,max=255"`
		Email                string `json:"email" form:"email" validate:"required,email,max=255"`
		Password             string `json:"password" form:"password" validate:"required,min=8"`
		PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation" validate:"required,eqfield=Password"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	user, err := services.RegisterAccount(data.Name, data.Email, data.Password)
	if err != nil {
		return serviceError(err)
	}

	if err := exts.SetSessionCookie(c, user); err != nil {
		return err
	}
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

func login(c *fiber.Ctx) error {
	var data struct {
		Email    string `json:"email" form:"email" validate:"required,email"`
		Password string `json:"password" form:"password" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	user, err := services.AuthenticateAccount(data.Email, data.Password)
	if err != nil {
		return serviceError(err)
	}

	if err := exts.SetSessionCookie(c, user); err != nil {
		return err
	}
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

func logout(c *fiber.Ctx) error {
	exts.ClearSessionCookie(c)
	return c.Redirect("/login", fiber.StatusSeeOther)
}
