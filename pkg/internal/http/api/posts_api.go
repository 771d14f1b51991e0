package api

import (
	"git.solsynth.dev/hypernet/circle/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"git.solsynth.dev/hypernet/circle/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func getPostFromParams(c *fiber.Ctx) (models.Post, error) {
	id, err := c.ParamsInt("postId", 0)
	if err != nil || id <= 0 {
		return models.Post{}, fiber.NewError(fiber.StatusNotFound, "post not found")
	}

	post, err := services.GetPost(uint(id))
	if err != nil {
		return post, serviceError(err)
	}
	return post, nil
}

func createPost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	image, err := exts.ReadUpload(c, "image")
	if err != nil {
		return err
	}

	if _, err := services.CreatePost(user, c.FormValue("content"), image); err != nil {
		return serviceError(err)
	}

	return exts.RedirectBack(c)
}

func deletePost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	post, err := getPostFromParams(c)
	if err != nil {
		return err
	}

	if err := services.DeletePost(user, post); err != nil {
		return serviceError(err)
	}

	return exts.RedirectBack(c)
}

func likePost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	post, err := getPostFromParams(c)
	if err != nil {
		return err
	}

	if _, err := services.ToggleLike(user, post); err != nil {
		return serviceError(err)
	}

	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

func createComment(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	post, err := getPostFromParams(c)
	if err != nil {
		return err
	}

	var data struct {
		Content string `json:"content" form:"content"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	comment, err := services.AddComment(user, post, data.Content)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(services.NewCommentView(comment))
}
