package services

import (
	"fmt"
	"strings"

	"git.solsynth.dev/hypernet/circle/pkg/internal/database"
	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
)

// AddComment appends a comment, comments cannot be edited or deleted on their own afterwards.
func AddComment(user models.Account, post models.Post, content string) (models.Comment, error) {
	content = strings.TrimSpace(content)

	verr := &ValidationError{}
	validateVar(verr, "content", content, fmt.Sprintf("required,max=%d", models.CommentContentMaxLength))
	if verr.HasErrors() {
		return models.Comment{}, verr
	}

	comment := models.Comment{
		Content:   content,
		PostID:    post.ID,
		AccountID: user.ID,
	}
	if err := database.C.Create(&comment).Error; err != nil {
		return comment, fmt.Errorf("unable to create comment: %v", err)
	}
	comment.Account = user

	return comment, nil
}

func CountComments() (int64, error) {
	var count int64
	if err := database.C.Model(&models.Comment{}).Count(&count).Error; err != nil {
		return count, err
	}
	return count, nil
}

func BatchListPostComments(ids []uint) (map[uint][]models.Comment, error) {
	out := make(map[uint][]models.Comment, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var comments []models.Comment
	if err := database.C.Where("post_id IN ?", ids).
		Preload("Account").
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		return out, fmt.Errorf("unable to list comments: %v", err)
	}

	for _, comment := range comments {
		out[comment.PostID] = append(out[comment.PostID], comment)
	}
	return out, nil
}
