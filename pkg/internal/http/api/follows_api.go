package api

import (
	"fmt"

	"git.solsynth.dev/hypernet/circle/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"git.solsynth.dev/hypernet/circle/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

func getAccountFromParams(c *fiber.Ctx) (models.Account, error) {
	id, err := c.ParamsInt("accountId", 0)
	if err != nil || id <= 0 {
		return models.Account{}, fiber.NewError(fiber.StatusNotFound, "account not found")
	}

	account, err := services.GetAccount(uint(id))
	if err != nil {
		return account, serviceError(err)
	}
	return account, nil
}

func followAccount(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	target, err := getAccountFromParams(c)
	if err != nil {
		return err
	}

	if user.ID == target.ID {
		exts.FlashError(c, "You cannot follow yourself.")
		return exts.RedirectBack(c)
	}

	followed, err := services.ToggleFollow(user, target)
	if err != nil {
		return serviceError(err)
	}

	exts.FlashSuccess(c, fmt.Sprintf(
		"%s %s.",
		lo.Ternary(followed, "Followed", "Unfollowed"),
		target.DisplayName(),
	))
	return exts.RedirectBack(c)
}

func unfollowAccount(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	target, err := getAccountFromParams(c)
	if err != nil {
		return err
	}

	if err := services.Unfollow(user, target); err != nil {
		return serviceError(err)
	}

	exts.FlashSuccess(c, fmt.Sprintf("Unfollowed %s.", target.DisplayName()))
	return exts.RedirectBack(c)
}
