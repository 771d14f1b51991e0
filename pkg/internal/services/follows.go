package services

import (
	"fmt"

	"git.solsynth.dev/hypernet/circle/pkg/internal/database"
	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ToggleFollow flips the edge from user to target and reports whether user now follows target.
// The pair index keeps at most one edge however toggles interleave.
func ToggleFollow(user models.Account, target models.Account) (bool, error) {
	if user.ID == target.ID {
		return false, ErrSelfReference
	}

	var followed bool
	if err := database.C.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND followee_id = ?", user.ID, target.ID).Delete(&models.Follow{})
		if res.Error != nil {
			return res.Error
		} else if res.RowsAffected > 0 {
			followed = false
			return nil
		}

		followed = true
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.Follow{
			FollowerID: user.ID,
			FolloweeID: target.ID,
		}).Error
	}); err != nil {
		return false, fmt.Errorf("unable to toggle follow: %v", err)
	}

	return followed, nil
}

func Follow(user models.Account, target models.Account) error {
	if user.ID == target.ID {
		return ErrSelfReference
	}

	if err := database.C.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.Follow{
		FollowerID: user.ID,
		FolloweeID: target.ID,
	}).Error; err != nil {
		return fmt.Errorf("unable to follow: %v", err)
	}
	return nil
}

// Unfollow removes the edge if present, it is a no-op otherwise.
func Unfollow(user models.Account, target models.Account) error {
	if err := database.C.
		Where("follower_id = ? AND followee_id = ?", user.ID, target.ID).
		Delete(&models.Follow{}).Error; err != nil {
		return fmt.Errorf("unable to unfollow: %v", err)
	}
	return nil
}

// ListFollowerIDs returns who follows the account, most recent edge first.
func ListFollowerIDs(account uint) ([]uint, error) {
	var edges []models.Follow
	if err := database.C.Where("followee_id = ?", account).
		Order("created_at DESC, id DESC").
		Find(&edges).Error; err != nil {
		return nil, fmt.Errorf("unable to list followers: %v", err)
	}
	return lo.Map(edges, func(item models.Follow, _ int) uint {
		return item.FollowerID
	}), nil
}

func ListFollowingIDs(account uint) ([]uint, error) {
	var edges []models.Follow
	if err := database.C.Where("follower_id = ?", account).
		Order("created_at DESC, id DESC").
		Find(&edges).Error; err != nil {
		return nil, fmt.Errorf("unable to list following: %v", err)
	}
	return lo.Map(edges, func(item models.Follow, _ int) uint {
		return item.FolloweeID
	}), nil
}

// BatchCountFollowers counts followers of every id in one query, ids without followers are absent.
func BatchCountFollowers(ids []uint) (map[uint]int64, error) {
	out := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []struct {
		AccountID uint
		Count     int64
	}
	if err := database.C.Model(&models.Follow{}).
		Select("followee_id as account_id, COUNT(id) as count").
		Where("followee_id IN ?", ids).
		Group("followee_id").
		Scan(&rows).Error; err != nil {
		return out, fmt.Errorf("unable to count followers: %v", err)
	}

	for _, row := range rows {
		out[row.AccountID] = row.Count
	}
	return out, nil
}

// ListSuggestedAccounts samples accounts unrelated to the viewer in random order.
func ListSuggestedAccounts(viewer uint, exclude []uint, take int) ([]models.Account, error) {
	tx := database.C.Where("id <> ?", viewer)
	if len(exclude) > 0 {
		tx = tx.Where("id NOT IN ?", exclude)
	}

	var accounts []models.Account
	if err := tx.Order("RANDOM()").Limit(take).Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("unable to list suggested accounts: %v", err)
	}
	return accounts, nil
}
