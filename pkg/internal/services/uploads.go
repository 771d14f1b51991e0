package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"git.solsynth.dev/hypernet/circle/pkg/internal/storage"
	"github.com/gabriel-vasile/mimetype"
	"github.com/samber/lo"
)

const MaxImageSize = 2 * 1024 * 1024

var (
	PostImageTypes      = []string{"image/jpeg", "image/png", "image/gif"}
	ProfilePictureTypes = []string{"image/jpeg", "image/png"}
)

// Upload is a file received from a client, fully read into memory.
type Upload struct {
	Filename string
	Data     []byte
}

// checkImage sniffs the upload content, the client supplied filename and content type are ignored.
func checkImage(out *ValidationError, field string, upload *Upload, allowed []string) *mimetype.MIME {
	if upload == nil {
		return nil
	}

	if len(upload.Data) == 0 {
		out.Add(field, fmt.Sprintf("The %s field must be an image.", field))
		return nil
	}
	if len(upload.Data) > MaxImageSize {
		out.Add(field, fmt.Sprintf("The %s field must not be greater than %d kilobytes.", field, MaxImageSize/1024))
		return nil
	}

	mime := mimetype.Detect(upload.Data)
	if !mime.Is("image/jpeg") && !mime.Is("image/png") && !mime.Is("image/gif") {
		out.Add(field, fmt.Sprintf("The %s field must be an image.", field))
		return nil
	}
	if !lo.ContainsBy(allowed, func(item string) bool { return mime.Is(item) }) {
		extensions := lo.Map(allowed, func(item string, _ int) string {
			return mimetype.Lookup(item).Extension()[1:]
		})
		out.Add(field, fmt.Sprintf("The %s field must be a file of type: %s.", field, strings.Join(extensions, ", ")))
		return nil
	}
	return mime
}

func storeImage(dir string, upload *Upload, mime *mimetype.MIME) (string, error) {
	path := storage.NewPath(dir, mime.Extension())
	if err := storage.S.Put(
		context.Background(),
		path,
		bytes.NewReader(upload.Data),
		int64(len(upload.Data)),
		mime.String(),
	); err != nil {
		return path, fmt.Errorf("unable to store image: %v", err)
	}
	return path, nil
}
