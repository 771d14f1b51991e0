package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	DirPosts           = "posts"
	DirProfilePictures = "profile_pictures"
)

// DefaultLocalPublicURL is where the local driver is served when storage.public_url is unset.
const DefaultLocalPublicURL = "http://localhost:8444/storage"

// Storage keeps uploaded files in a public namespace, only the returned path is persisted.
type Storage interface {
	Put(ctx context.Context, path string, body io.Reader, size int64, contentType string) error
	// Delete removes the file, a missing file is not an error.
	Delete(ctx context.Context, path string) error
	URL(path string) string
}

var S Storage

// NewPath generates a collision free path inside dir, ext must include the leading dot.
func NewPath(dir, ext string) string {
	return path.Join(dir, uuid.NewString()+ext)
}

func NewStorage() error {
	switch driver := viper.GetString("storage.driver"); driver {
	case "local":
		publicURL := viper.GetString("storage.public_url")
		if len(publicURL) == 0 {
			publicURL = DefaultLocalPublicURL
		}
		S = NewLocalStorage(viper.GetString("storage.local.root"), publicURL)
	case "s3":
		s3, err := NewS3Storage(context.Background(), S3Config{
			Bucket:    viper.GetString("storage.s3.bucket"),
			Region:    viper.GetString("storage.s3.region"),
			Endpoint:  viper.GetString("storage.s3.endpoint"),
			AccessKey: viper.GetString("storage.s3.access_key"),
			SecretKey: viper.GetString("storage.s3.secret_key"),
			PublicURL: viper.GetString("storage.public_url"),
		})
		if err != nil {
			return fmt.Errorf("unable to create s3 storage: %v", err)
		}
		S = s3
	default:
		return fmt.Errorf("unsupported storage driver: %s", driver)
	}

	log.Info().Str("driver", viper.GetString("storage.driver")).Msg("File storage is ready.")
	return nil
}
