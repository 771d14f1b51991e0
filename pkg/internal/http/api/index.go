package api

import (
	"errors"

	"git.solsynth.dev/hypernet/circle/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func MapAPIs(app *fiber.App, baseURL string) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/login", fiber.StatusFound)
	})

	api := app.Group(baseURL)
	{
		api.Post("/register", registerAccount)
		api.Post("/login", login)
		api.Post("/logout", logout)

		api.Get("/dashboard", getDashboard)

		posts := api.Group("/posts")
		{
			posts.Post("/", createPost)
			posts.Delete("/:postId", deletePost)
			posts.Post("/:postId/like", likePost)
			posts.Post("/:postId/comments", createComment)
		}

		profile := api.Group("/profile")
		{
			profile.Get("/", getProfile)
			profile.Patch("/", updateProfile)
			profile.Delete("/", deleteProfile)
		}

		users := api.Group("/users")
		{
			users.Post("/:accountId/follow", followAccount)
			users.Post("/:accountId/unfollow", unfollowAccount)
		}
	}
}

func serviceError(err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr
	case errors.Is(err, services.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrSelfReference):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
