package exts

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
)

const FlashCookieKey = "flash"

type Flash struct {
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

func setFlash(c *fiber.Ctx, flash Flash) {
	raw, err := jsoniter.Marshal(flash)
	if err != nil {
		return
	}

	c.Cookie(&fiber.Cookie{
		Name:     FlashCookieKey,
		Value:    url.QueryEscape(string(raw)),
		Path:     "/",
		Expires:  time.Now().Add(5 * time.Minute),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func FlashSuccess(c *fiber.Ctx, message string) {
	setFlash(c, Flash{Success: message})
}

func FlashError(c *fiber.Ctx, message string) {
	setFlash(c, Flash{Error: message})
}

// ConsumeFlash reads the pending flash once and expires the cookie.
func ConsumeFlash(c *fiber.Ctx) Flash {
	var flash Flash

	value := c.Cookies(FlashCookieKey)
	if len(value) == 0 {
		return flash
	}

	c.Cookie(&fiber.Cookie{
		Name:    FlashCookieKey,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
	})

	raw, err := url.QueryUnescape(value)
	if err != nil {
		return flash
	}
	_ = jsoniter.UnmarshalFromString(raw, &flash)
	return flash
}
