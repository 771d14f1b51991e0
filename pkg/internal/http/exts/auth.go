package exts

import (
	"errors"
	"strings"
	"time"

	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"git.solsynth.dev/hypernet/circle/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const SessionCookieKey = "session"

// ContextMiddleware resolves the session into c.Locals("user"), anonymous requests pass through.
func ContextMiddleware(c *fiber.Ctx) error {
	token := c.Cookies(SessionCookieKey)
	if header := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(header, "Bearer ") {
		token = strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if len(token) == 0 {
		return c.Next()
	}

	id, err := services.ParseSessionToken(token)
	if err != nil {
		return c.Next()
	}

	user, err := services.GetAccount(id)
	if err != nil {
		if !errors.Is(err, services.ErrNotFound) {
			log.Warn().Err(err).Uint("account", id).Msg("Unable to load account of session...")
		}
		return c.Next()
	}

	c.Locals("user", user)
	return c.Next()
}

func EnsureAuthenticated(c *fiber.Ctx) error {
	if _, ok := c.Locals("user").(models.Account); !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthenticated")
	}
	return nil
}

func SetSessionCookie(c *fiber.Ctx, user models.Account) error {
	token, expiredAt, err := services.NewSessionToken(user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieKey,
		Value:    token,
		Path:     "/",
		Expires:  expiredAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

func ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieKey,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// EnsureAdmin allows the accounts listed in security.admin_accounts.
func EnsureAdmin(c *fiber.Ctx) error {
	if err := EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	if !lo.Contains(viper.GetIntSlice("security.admin_accounts"), int(user.ID)) {
		return fiber.NewError(fiber.StatusForbidden, "missing permission to access admin endpoints")
	}
	return nil
}
