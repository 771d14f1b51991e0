package services

import (
	"testing"

	"git.solsynth.dev/hypernet/circle/pkg/internal/database"
	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFollowIsInvolution(t *testing.T) {
	setupTestEnv(t)
	alice := createTestAccount(t, "alice")
	bob := createTestAccount(t, "bob")

	followed, err := ToggleFollow(alice, bob)
	require.NoError(t, err)
	assert.True(t, followed)

	assert.True(t, isFollowing(t, alice.ID, bob.ID))

	followed, err = ToggleFollow(alice, bob)
	require.NoError(t, err)
	assert.False(t, followed)

	assert.False(t, isFollowing(t, alice.ID, bob.ID))
	assert.Zero(t, countFollowers(t, bob.ID))
}

func TestToggleFollowSelf(t *testing.T) {
	setupTestEnv(t)
	alice := createTestAccount(t, "alice")

	_, err := ToggleFollow(alice, alice)
	assert.ErrorIs(t, err, ErrSelfReference)
	assert.ErrorIs(t, Follow(alice, alice), ErrSelfReference)

	var count int64
	require.NoError(t, database.C.Model(&models.Follow{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestFollowIsIdempotent(t *testing.T) {
	setupTestEnv(t)
	alice := createTestAccount(t, "alice")
	bob := createTestAccount(t, "bob")

	require.NoError(t, Follow(alice, bob))
	require.NoError(t, Follow(alice, bob))

	assert.EqualValues(t, 1, countFollowers(t, bob.ID))
}

func TestUnfollowIsIdempotent(t *testing.T) {
	setupTestEnv(t)
	alice := createTestAccount(t, "alice")
	bob := createTestAccount(t, "bob")

	assert.NoError(t, Unfollow(alice, bob))

	require.NoError(t, Follow(alice, bob))
	require.NoError(t, Unfollow(alice, bob))
	require.NoError(t, Unfollow(alice, bob))

	assert.False(t, isFollowing(t, alice.ID, bob.ID))
}

func TestFollowEdgesAreDirected(t *testing.T) {
	setupTestEnv(t)
	alice := createTestAccount(t, "alice")
	bob := createTestAccount(t, "bob")
	carol := createTestAccount(t, "carol")

	require.NoError(t, Follow(alice, bob))
	require.NoError(t, Follow(carol, bob))
	require.NoError(t, Follow(bob, alice))

	followers, err := ListFollowerIDs(bob.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{alice.ID, carol.ID}, followers)

	following, err := ListFollowingIDs(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{alice.ID}, following)

	counts, err := BatchCountFollowers([]uint{alice.ID, bob.ID, carol.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts[alice.ID])
	assert.EqualValues(t, 2, counts[bob.ID])
	assert.EqualValues(t, 0, counts[carol.ID])
}

func TestListSuggestedAccounts(t *testing.T) {
	setupTestEnv(t)
	viewer := createTestAccount(t, "viewer")
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		createTestAccount(t, name)
	}

	suggested, err := ListSuggestedAccounts(viewer.ID, nil, SuggestedAccountsLimit)
	require.NoError(t, err)
	assert.Len(t, suggested, SuggestedAccountsLimit)
	for _, item := range suggested {
		assert.NotEqual(t, viewer.ID, item.ID)
	}
}
