package services

import (
	"testing"

	localCache "git.solsynth.dev/hypernet/circle/pkg/internal/cache"
	"git.solsynth.dev/hypernet/circle/pkg/internal/database"
	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	setupTestEnv(t)

	account, err := RegisterAccount("Alice", " Alice@Example.com ", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", account.Email)
	assert.NotEqual(t, "password123", account.Password)

	_, err = RegisterAccount("Another", "alice@example.com", "password123")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")

	authenticated, err := AuthenticateAccount("ALICE@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, account.ID, authenticated.ID)

	_, err = AuthenticateAccount("alice@example.com", "wrong-password")
	require.ErrorAs(t, err, &verr)
	_, err = AuthenticateAccount("nobody@example.com", "password123")
	require.ErrorAs(t, err, &verr)
}

func TestUpdateProfile(t *testing.T) {
	fs := setupTestEnv(t)
	alice := createTestAccount(t, "alice")
	bob := createTestAccount(t, "bob")

	_, err := UpdateProfile(bob, ProfileUpdate{Username: lo.ToPtr("bobby")})
	require.NoError(t, err)

	_, err = UpdateProfile(alice, ProfileUpdate{Username: lo.ToPtr("bobby")})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")

	updated, err := UpdateProfile(alice, ProfileUpdate{
		Username:       lo.ToPtr("ally"),
		Bio:            lo.ToPtr("hello there"),
		Location:       lo.ToPtr("Jakarta"),
		ProfilePicture: &Upload{Filename: "me.png", Data: encodeTestImage(t, "png")},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ProfilePicture)
	assert.Equal(t, "ally", updated.DisplayName())
	first := *updated.ProfilePicture
	assert.True(t, fileExists(fs, first))

	// The old picture is dropped once the new one is saved
	updated, err = UpdateProfile(updated, ProfileUpdate{
		ProfilePicture: &Upload{Filename: "me.jpg", Data: encodeTestImage(t, "jpeg")},
	})
	require.NoError(t, err)
	assert.False(t, fileExists(fs, first))
	assert.True(t, fileExists(fs, *updated.ProfilePicture))

	_, err = UpdateProfile(updated, ProfileUpdate{
		ProfilePicture: &Upload{Filename: "me.gif", Data: encodeTestImage(t, "gif")},
	})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "profile_picture")

	// Untouched fields and the password survive a partial update
	updated, err = UpdateProfile(updated, ProfileUpdate{Username: lo.ToPtr("")})
	require.NoError(t, err)
	assert.Nil(t, updated.Username)
	assert.Equal(t, "hello there", updated.Bio)

	_, err = AuthenticateAccount("alice@example.com", "password123")
	assert.NoError(t, err)
}

func TestGetAccountCacheInvalidation(t *testing.T) {
	setupTestEnv(t)
	require.NoError(t, localCache.NewStore())
	t.Cleanup(func() { localCache.S = nil })

	alice := createTestAccount(t, "alice")

	account, err := GetAccount(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", account.Name)

	_, err = UpdateProfile(account, ProfileUpdate{Name: lo.ToPtr("Alice Liddell")})
	require.NoError(t, err)

	account, err = GetAccount(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", account.Name)

	_, err = GetAccount(alice.ID + 100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAccountsKeepsOrder(t *testing.T) {
	setupTestEnv(t)
	alice := createTestAccount(t, "alice")
	bob := createTestAccount(t, "bob")

	accounts, err := ListAccounts([]uint{bob.ID, 999, alice.ID})
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, bob.ID, accounts[0].ID)
	assert.Equal(t, alice.ID, accounts[1].ID)
}

func TestDeleteAccount(t *testing.T) {
	fs := setupTestEnv(t)
	alice := createTestAccount(t, "alice")
	bob := createTestAccount(t, "bob")

	post, err := CreatePost(alice, "mine", &Upload{Filename: "a.png", Data: encodeTestImage(t, "png")})
	require.NoError(t, err)
	bobPost := createTestPost(t, bob, "bob's")
	_, err = ToggleLike(bob, post)
	require.NoError(t, err)
	_, err = AddComment(bob, post, "hey")
	require.NoError(t, err)
	_, err = AddComment(alice, bobPost, "hi bob")
	require.NoError(t, err)
	require.NoError(t, Follow(alice, bob))
	require.NoError(t, Follow(bob, alice))

	var verr *ValidationError
	require.ErrorAs(t, DeleteAccount(alice, "nope"), &verr)

	require.NoError(t, DeleteAccount(alice, "password123"))

	_, err = GetAccount(alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, fileExists(fs, *post.Image))

	var follows, likes, comments, posts int64
	database.C.Model(&models.Follow{}).Count(&follows)
	database.C.Model(&models.Like{}).Count(&likes)
	database.C.Model(&models.Comment{}).Count(&comments)
	database.C.Model(&models.Post{}).Count(&posts)
	assert.Zero(t, follows)
	assert.Zero(t, likes)
	assert.Zero(t, comments)
	assert.EqualValues(t, 1, posts)
}
