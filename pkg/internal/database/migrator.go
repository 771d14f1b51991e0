package database

import (
	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"gorm.io/gorm"
)

// AccountOwnedRange lists the records carrying an account_id column,
// children before parents so they can be removed in order.
var AccountOwnedRange = []any{
	&models.Like{},
	&models.Comment{},
	&models.Post{},
}

var AutoMaintainRange = []any{
	&models.Account{},
	&models.Follow{},
	&models.Post{},
	&models.Like{},
	&models.Comment{},
}

func RunMigration(source *gorm.DB) error {
	if err := source.AutoMigrate(
		append(
			AutoMaintainRange,
			&models.OrphanFile{},
		)...,
	); err != nil {
		return err
	}

	return nil
}
