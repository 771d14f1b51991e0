package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	pkg "git.solsynth.dev/hypernet/circle/pkg/internal"
	localCache "git.solsynth.dev/hypernet/circle/pkg/internal/cache"
	"git.solsynth.dev/hypernet/circle/pkg/internal/database"
	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"git.solsynth.dev/hypernet/circle/pkg/internal/storage"
	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// flakyStorage wraps the local driver and can be told to fail deletes.
type flakyStorage struct {
	*storage.LocalStorage
	failDelete bool
}

func (v *flakyStorage) Delete(ctx context.Context, path string) error {
	if v.failDelete {
		return fmt.Errorf("storage is unavailable")
	}
	return v.LocalStorage.Delete(ctx, path)
}

func setupTestEnv(t *testing.T) *flakyStorage {
	t.Helper()

	pkg.SetDefaultSettings()
	viper.Set("security.session_secret", "circle-test-secret")

	db, err := database.Open(sqlite.Open(filepath.Join(t.TempDir(), "circle.db")))
	require.NoError(t, err)
	require.NoError(t, database.RunMigration(db))
	database.C = db

	fs := &flakyStorage{LocalStorage: storage.NewLocalStorage(t.TempDir(), "http://localhost/storage")}
	storage.S = fs
	localCache.S = nil

	t.Cleanup(func() {
		if raw, err := db.DB(); err == nil {
			_ = raw.Close()
		}
	})

	return fs
}

func createTestAccount(t *testing.T, name string) models.Account {
	t.Helper()

	account, err := RegisterAccount(name, fmt.Sprintf("%s@example.com", name), "password123")
	require.NoError(t, err)
	return account
}

func createTestPost(t *testing.T, user models.Account, content string) models.Post {
	t.Helper()

	post, err := CreatePost(user, content, nil)
	require.NoError(t, err)
	return post
}

func encodeTestImage(t *testing.T, format string) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		t.Fatalf("unknown image format %s", format)
	}
	require.NoError(t, err)
	return buf.Bytes()
}

func fileExists(fs *flakyStorage, path string) bool {
	_, err := os.Stat(filepath.Join(fs.Root, filepath.FromSlash(path)))
	return err == nil
}

func countPostLikes(t *testing.T, post uint) int64 {
	t.Helper()

	var count int64
	require.NoError(t, database.C.Model(&models.Like{}).Where("post_id = ?", post).Count(&count).Error)
	return count
}

func isPostLiked(t *testing.T, user uint, post uint) bool {
	t.Helper()

	var count int64
	require.NoError(t, database.C.Model(&models.Like{}).
		Where("account_id = ? AND post_id = ?", user, post).
		Count(&count).Error)
	return count > 0
}

func isFollowing(t *testing.T, user uint, target uint) bool {
	t.Helper()

	var count int64
	require.NoError(t, database.C.Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", user, target).
		Count(&count).Error)
	return count > 0
}

func countFollowers(t *testing.T, account uint) int64 {
	t.Helper()

	var count int64
	require.NoError(t, database.C.Model(&models.Follow{}).Where("followee_id = ?", account).Count(&count).Error)
	return count
}
