package services

import (
	"context"
	"sync"
	"time"

	"git.solsynth.dev/hypernet/circle/pkg/internal/database"
	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"git.solsynth.dev/hypernet/circle/pkg/internal/storage"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm/clause"
)

const fileDeleteTimeout = 30 * time.Second

// orphanCleanupLock lets one sweep run at a time, cron and the admin trigger share it.
var orphanCleanupLock sync.Mutex

// DeleteFileOrDefer removes a stored file, a failure is recorded for the orphan sweep.
func DeleteFileOrDefer(path, reason string) {
	ctx, cancel := context.WithTimeout(context.Background(), fileDeleteTimeout)
	defer cancel()

	err := storage.S.Delete(ctx, path)
	if err == nil {
		return
	}

	log.Warn().Err(err).Str("path", path).Str("reason", reason).Msg("Unable to delete file, deferred to orphan cleanup...")

	orphan := models.OrphanFile{
		Path:      path,
		Reason:    reason,
		LastError: err.Error(),
	}
	if err := database.C.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "path"}},
		DoUpdates: clause.AssignmentColumns([]string{"reason", "last_error", "updated_at"}),
	}).Create(&orphan).Error; err != nil {
		log.Error().Err(err).Str("path", path).Msg("Unable to record orphan file, the file will be left behind...")
	}
}

func DoAutoOrphanCleanup() {
	if !orphanCleanupLock.TryLock() {
		log.Debug().Msg("Orphan cleanup is already running, skipped...")
		return
	}
	defer orphanCleanupLock.Unlock()

	log.Debug().Msg("Cleaning up orphan files...")

	var orphans []models.OrphanFile
	if err := database.C.Order("created_at ASC").Find(&orphans).Error; err != nil {
		log.Error().Err(err).Msg("An error occurred when listing orphan files...")
		return
	}

	var cleaned int
	for _, orphan := range orphans {
		ctx, cancel := context.WithTimeout(context.Background(), fileDeleteTimeout)
		err := storage.S.Delete(ctx, orphan.Path)
		cancel()

		if err != nil {
			if err := database.C.Model(&orphan).Updates(map[string]any{
				"attempts":   orphan.Attempts + 1,
				"last_error": err.Error(),
			}).Error; err != nil {
				log.Error().Err(err).Str("path", orphan.Path).Msg("Unable to update orphan file record...")
			}
			continue
		}

		if err := database.C.Delete(&orphan).Error; err != nil {
			log.Error().Err(err).Str("path", orphan.Path).Msg("Unable to remove orphan file record...")
			continue
		}
		cleaned++
	}

	log.Debug().Int("count", cleaned).Int("remaining", len(orphans)-cleaned).Msg("Clean up orphan files completed.")
}
