package services

import (
	"fmt"

	"git.solsynth.dev/hypernet/circle/pkg/internal/database"
	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ToggleLike flips the like of user on post and reports whether the post is liked afterwards.
func ToggleLike(user models.Account, post models.Post) (bool, error) {
	var liked bool
	if err := database.C.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("account_id = ? AND post_id = ?", user.ID, post.ID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		} else if res.RowsAffected > 0 {
			liked = false
			return nil
		}

		liked = true
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.Like{
			AccountID: user.ID,
			PostID:    post.ID,
		}).Error
	}); err != nil {
		return false, fmt.Errorf("unable to toggle like: %v", err)
	}

	return liked, nil
}

func BatchCountPostLikes(ids []uint) (map[uint]int64, error) {
	out := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []struct {
		PostID uint
		Count  int64
	}
	if err := database.C.Model(&models.Like{}).
		Select("post_id, COUNT(id) as count").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&rows).Error; err != nil {
		return out, fmt.Errorf("unable to count likes: %v", err)
	}

	for _, row := range rows {
		out[row.PostID] = row.Count
	}
	return out, nil
}

func ListLikedPostIDs(user uint, ids []uint) (map[uint]bool, error) {
	out := make(map[uint]bool)
	if len(ids) == 0 {
		return out, nil
	}

	var likes []models.Like
	if err := database.C.Where("account_id = ? AND post_id IN ?", user, ids).Find(&likes).Error; err != nil {
		return out, fmt.Errorf("unable to list likes: %v", err)
	}
	for _, like := range likes {
		out[like.PostID] = true
	}
	return out, nil
}
