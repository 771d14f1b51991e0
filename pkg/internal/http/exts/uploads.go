package exts

import (
	"errors"
	"fmt"
	"io"

	"git.solsynth.dev/hypernet/circle/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// ReadUpload loads the file of a multipart field, nil when the field was not sent.
// Files far above the image limit are rejected before they are read.
func ReadUpload(c *fiber.Ctx, field string) (*services.Upload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, fasthttp.ErrMissingFile) || errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return nil, nil
		}
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if header.Size > services.MaxImageSize {
		return nil, services.NewValidationError(
			field,
			fmt.Sprintf("The %s field must not be greater than %d kilobytes.", field, services.MaxImageSize/1024),
		)
	}

	file, err := header.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return &services.Upload{Filename: header.Filename, Data: data}, nil
}
