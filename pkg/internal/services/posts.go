package services

import (
	"errors"
	"fmt"
	"strings"

	"git.solsynth.dev/hypernet/circle/pkg/internal/database"
	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"git.solsynth.dev/hypernet/circle/pkg/internal/storage"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func GetPost(id uint) (models.Post, error) {
	var post models.Post
	if err := database.C.Where("id = ?", id).Preload("Account").First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return post, notFound("post", id)
		}
		return post, fmt.Errorf("unable to get post: %v", err)
	}
	return post, nil
}

func ListPosts() ([]models.Post, error) {
	var posts []models.Post
	if err := database.C.
		Preload("Account").
		Order("created_at DESC, id DESC").
		Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("unable to list posts: %v", err)
	}
	return posts, nil
}

func CountPosts() (int64, error) {
	var count int64
	if err := database.C.Model(&models.Post{}).Count(&count).Error; err != nil {
		return count, err
	}
	return count, nil
}

func CountLikes() (int64, error) {
	var count int64
	if err := database.C.Model(&models.Like{}).Count(&count).Error; err != nil {
		return count, err
	}
	return count, nil
}

func CreatePost(user models.Account, content string, image *Upload) (models.Post, error) {
	content = strings.TrimSpace(content)

	verr := &ValidationError{}
	validateVar(verr, "content", content, fmt.Sprintf("required,max=%d", models.PostContentMaxLength))
	mime := checkImage(verr, "image", image, PostImageTypes)
	if verr.HasErrors() {
		return models.Post{}, verr
	}

	post := models.Post{
		Content:   content,
		Language:  DetectLanguage(content),
		AccountID: user.ID,
	}

	if mime != nil {
		path, err := storeImage(storage.DirPosts, image, mime)
		if err != nil {
			return post, err
		}
		post.Image = &path
	}

	if err := database.C.Omit("Account").Create(&post).Error; err != nil {
		if post.Image != nil {
			DeleteFileOrDefer(*post.Image, "post creation failed")
		}
		return post, fmt.Errorf("unable to create post: %v", err)
	}
	post.Account = user

	log.Debug().Uint("post", post.ID).Uint("account", user.ID).Msg("A new post has been created.")
	return post, nil
}

// DeletePost drops the row with its likes and comments first, the image goes after commit.
// A failed file delete leaves an orphan for the sweep instead of a dangling reference.
func DeletePost(user models.Account, post models.Post) error {
	if post.AccountID != user.ID {
		return ErrForbidden
	}

	if err := database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, post.ID).Error
	}); err != nil {
		return fmt.Errorf("unable to delete post: %v", err)
	}

	if post.Image != nil {
		DeleteFileOrDefer(*post.Image, "post deleted")
	}

	return nil
}
