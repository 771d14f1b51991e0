package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	localCache "git.solsynth.dev/hypernet/circle/pkg/internal/cache"
	"git.solsynth.dev/hypernet/circle/pkg/internal/database"
	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"git.solsynth.dev/hypernet/circle/pkg/internal/storage"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func getAccountCacheKey(id uint) string {
	return fmt.Sprintf("account#%d", id)
}

// GetAccount reads the account through the local cache, profile writes invalidate the entry.
func GetAccount(id uint) (models.Account, error) {
	var account models.Account

	var marshal *marshaler.Marshaler
	if localCache.S != nil {
		marshal = marshaler.New(cache.New[any](localCache.S))
		if val, err := marshal.Get(context.Background(), getAccountCacheKey(id), new(models.Account)); err == nil {
			return *val.(*models.Account), nil
		}
	}

	if err := database.C.Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, notFound("account", id)
		}
		return account, fmt.Errorf("unable to get account: %v", err)
	}

	if marshal != nil {
		_ = marshal.Set(
			context.Background(),
			getAccountCacheKey(id),
			account,
			store.WithExpiration(5*time.Minute),
			store.WithTags([]string{getAccountCacheKey(id)}),
		)
	}

	return account, nil
}

func InvalidateAccountCache(id uint) {
	if localCache.S == nil {
		return
	}

	ctx := context.Background()
	cacheManager := cache.New[any](localCache.S)
	_ = cacheManager.Delete(ctx, getAccountCacheKey(id))
	_ = cacheManager.Invalidate(ctx, store.WithInvalidateTags([]string{getAccountCacheKey(id)}))
}

// ListAccounts loads the accounts and keeps the order of ids, unknown ids are skipped.
func ListAccounts(ids []uint) ([]models.Account, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var accounts []models.Account
	if err := database.C.Where("id IN ?", ids).Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("unable to list accounts: %v", err)
	}

	accountMap := lo.SliceToMap(accounts, func(item models.Account) (uint, models.Account) {
		return item.ID, item
	})
	return lo.FilterMap(ids, func(id uint, _ int) (models.Account, bool) {
		item, ok := accountMap[id]
		return item, ok
	}), nil
}

func CountAccounts() (int64, error) {
	var count int64
	if err := database.C.Model(&models.Account{}).Count(&count).Error; err != nil {
		return count, err
	}
	return count, nil
}

func RegisterAccount(name, email, password string) (models.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var count int64
	if err := database.C.Model(&models.Account{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return models.Account{}, fmt.Errorf("unable to check email: %v", err)
	} else if count > 0 {
		return models.Account{}, NewValidationError("email", "The email has already been taken.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Account{}, fmt.Errorf("unable to hash password: %v", err)
	}

	account := models.Account{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: string(hash),
	}
	if err := database.C.Create(&account).Error; err != nil {
		return account, fmt.Errorf("unable to create account: %v", err)
	}

	log.Info().Uint("account", account.ID).Msg("A new account has been registered.")
	return account, nil
}

func AuthenticateAccount(email, password string) (models.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	mismatch := NewValidationError("email", "These credentials do not match our records.")

	var account models.Account
	if err := database.C.Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, mismatch
		}
		return account, fmt.Errorf("unable to get account: %v", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return models.Account{}, mismatch
	}
	return account, nil
}

// ProfileUpdate holds the submitted fields, nil means the field was not sent.
type ProfileUpdate struct {
	Name           *string
	Username       *string
	Bio            *string
	Location       *string
	ProfilePicture *Upload
}

func UpdateProfile(user models.Account, data ProfileUpdate) (models.Account, error) {
	verr := &ValidationError{}
	if data.Name != nil {
		validateVar(verr, "name", strings.TrimSpace(*data.Name), "required,max=255")
	}
	if data.Username != nil && len(*data.Username) > 0 {
		validateVar(verr, "username", *data.Username, "max=255")
		if _, ok := verr.Fields["username"]; !ok {
			var count int64
			if err := database.C.Model(&models.Account{}).
				Where("username = ? AND id <> ?", *data.Username, user.ID).
				Count(&count).Error; err != nil {
				return user, fmt.Errorf("unable to check username: %v", err)
			} else if count > 0 {
				verr.Add("username", "The username has already been taken.")
			}
		}
	}
	if data.Bio != nil {
		validateVar(verr, "bio", *data.Bio, "max=1000")
	}
	if data.Location != nil {
		validateVar(verr, "location", *data.Location, "max=255")
	}
	mime := checkImage(verr, "profile_picture", data.ProfilePicture, ProfilePictureTypes)
	if verr.HasErrors() {
		return user, verr
	}

	if data.Name != nil {
		user.Name = strings.TrimSpace(*data.Name)
	}
	if data.Username != nil {
		user.Username = lo.Ternary(len(*data.Username) > 0, lo.ToPtr(*data.Username), nil)
	}
	if data.Bio != nil {
		user.Bio = *data.Bio
	}
	if data.Location != nil {
		user.Location = *data.Location
	}

	var previousPicture, newPicture *string
	if mime != nil {
		path, err := storeImage(storage.DirProfilePictures, data.ProfilePicture, mime)
		if err != nil {
			return user, err
		}
		previousPicture, newPicture = user.ProfilePicture, &path
		user.ProfilePicture = newPicture
	}

	// The cached account carries no password hash, so only the profile columns are written
	if err := database.C.Model(&models.Account{BaseModel: models.BaseModel{ID: user.ID}}).Updates(map[string]any{
		"name":            user.Name,
		"username":        user.Username,
		"bio":             user.Bio,
		"location":        user.Location,
		"profile_picture": user.ProfilePicture,
	}).Error; err != nil {
		if newPicture != nil {
			DeleteFileOrDefer(*newPicture, "profile update failed")
		}
		return user, fmt.Errorf("unable to update profile: %v", err)
	}
	InvalidateAccountCache(user.ID)

	// The row points at the new picture already, the old file is safe to drop
	if previousPicture != nil {
		DeleteFileOrDefer(*previousPicture, "profile picture replaced")
	}

	return user, nil
}

// DeleteAccount removes the account together with everything it owns.
func DeleteAccount(user models.Account, password string) error {
	var credential models.Account
	if err := database.C.Select("id", "password").Where("id = ?", user.ID).First(&credential).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("account", user.ID)
		}
		return fmt.Errorf("unable to get account: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(credential.Password), []byte(password)); err != nil {
		return NewValidationError("password", "The password is incorrect.")
	}

	var posts []models.Post
	if err := database.C.Where("account_id = ?", user.ID).Select("id", "image").Find(&posts).Error; err != nil {
		return fmt.Errorf("unable to list posts of account: %v", err)
	}
	postIDs := lo.Map(posts, func(item models.Post, _ int) uint {
		return item.ID
	})

	if err := database.C.Transaction(func(tx *gorm.DB) error {
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		for _, model := range database.AccountOwnedRange {
			if err := tx.Where("account_id = ?", user.ID).Delete(model).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("follower_id = ? OR followee_id = ?", user.ID, user.ID).Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Account{}, user.ID).Error
	}); err != nil {
		return fmt.Errorf("unable to delete account: %v", err)
	}
	InvalidateAccountCache(user.ID)

	for _, post := range posts {
		if post.Image != nil {
			DeleteFileOrDefer(*post.Image, "account deleted")
		}
	}
	if user.ProfilePicture != nil {
		DeleteFileOrDefer(*user.ProfilePicture, "account deleted")
	}

	log.Info().Uint("account", user.ID).Int("posts", len(posts)).Msg("An account has been deleted.")
	return nil
}
