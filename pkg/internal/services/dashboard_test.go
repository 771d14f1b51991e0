package services

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardLikeAndCommentScenario(t *testing.T) {
	setupTestEnv(t)
	u1 := createTestAccount(t, "u1")
	u2 := createTestAccount(t, "u2")
	post := createTestPost(t, u1, "hello")

	findPost := func(viewer uint) PostView {
		viewerAccount, err := GetAccount(viewer)
		require.NoError(t, err)
		dashboard, err := AssembleDashboard(viewerAccount)
		require.NoError(t, err)
		item, ok := lo.Find(dashboard.Posts, func(item PostView) bool { return item.ID == post.ID })
		require.True(t, ok)
		return item
	}

	_, err := ToggleLike(u2, post)
	require.NoError(t, err)
	view := findPost(u2.ID)
	assert.EqualValues(t, 1, view.LikesCount)
	assert.True(t, view.IsLiked)
	assert.False(t, findPost(u1.ID).IsLiked)

	_, err = ToggleLike(u2, post)
	require.NoError(t, err)
	view = findPost(u2.ID)
	assert.EqualValues(t, 0, view.LikesCount)
	assert.False(t, view.IsLiked)

	_, err = AddComment(u2, post, "hi")
	require.NoError(t, err)
	view = findPost(u2.ID)
	require.Len(t, view.Comments, 1)
	assert.Equal(t, "hi", view.Comments[0].Content)
	assert.Equal(t, u2.ID, view.Comments[0].User.ID)
	assert.Equal(t, "u2", view.Comments[0].User.Name)
	assert.NotEmpty(t, view.Comments[0].CreatedAt)
	assert.Nil(t, view.Image)
	assert.Equal(t, "u1", view.User.Name)
	assert.Equal(t, "u1@example.com", view.User.Email)
}

func TestDashboardFollowScenario(t *testing.T) {
	setupTestEnv(t)
	u1 := createTestAccount(t, "u1")
	u2 := createTestAccount(t, "u2")

	followed, err := ToggleFollow(u1, u2)
	require.NoError(t, err)
	assert.True(t, followed)

	dashboard, err := AssembleDashboard(u1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, dashboard.FollowingCount)
	require.Len(t, dashboard.Following, 1)
	assert.Equal(t, u2.ID, dashboard.Following[0].ID)
	assert.EqualValues(t, 1, dashboard.Following[0].FollowersCount)
	assert.True(t, dashboard.Following[0].IsFollowing)
	assert.Empty(t, dashboard.SuggestedUsers)

	followed, err = ToggleFollow(u1, u2)
	require.NoError(t, err)
	assert.False(t, followed)

	dashboard, err = AssembleDashboard(u2)
	require.NoError(t, err)
	assert.EqualValues(t, 0, dashboard.FollowersCount)
	assert.Empty(t, dashboard.Followers)
	require.Len(t, dashboard.SuggestedUsers, 1)
	assert.EqualValues(t, 0, dashboard.SuggestedUsers[0].FollowersCount)
}

func TestDashboardFollowersFlags(t *testing.T) {
	setupTestEnv(t)
	viewer := createTestAccount(t, "viewer")
	mutual := createTestAccount(t, "mutual")
	fan := createTestAccount(t, "fan")

	require.NoError(t, Follow(mutual, viewer))
	require.NoError(t, Follow(fan, viewer))
	require.NoError(t, Follow(viewer, mutual))

	dashboard, err := AssembleDashboard(viewer)
	require.NoError(t, err)
	assert.EqualValues(t, 2, dashboard.FollowersCount)

	flags := lo.SliceToMap(dashboard.Followers, func(item AccountSummary) (uint, bool) {
		return item.ID, item.IsFollowing
	})
	assert.True(t, flags[mutual.ID])
	assert.False(t, flags[fan.ID])
}

func TestDashboardSuggestionsForLonelyViewer(t *testing.T) {
	setupTestEnv(t)
	viewer := createTestAccount(t, "viewer")
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		createTestAccount(t, name)
	}

	for i := 0; i < 5; i++ {
		dashboard, err := AssembleDashboard(viewer)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(dashboard.SuggestedUsers), SuggestedAccountsLimit)
		for _, item := range dashboard.SuggestedUsers {
			assert.NotEqual(t, viewer.ID, item.ID)
			assert.False(t, item.IsFollowing)
		}
	}
}

func TestDashboardStatsAndImages(t *testing.T) {
	setupTestEnv(t)
	alice := createTestAccount(t, "alice")
	bob := createTestAccount(t, "bob")

	post, err := CreatePost(alice, "picture", &Upload{Filename: "a.png", Data: encodeTestImage(t, "png")})
	require.NoError(t, err)
	_, err = ToggleLike(bob, post)
	require.NoError(t, err)
	_, err = AddComment(bob, post, "wow")
	require.NoError(t, err)

	dashboard, err := AssembleDashboard(bob)
	require.NoError(t, err)
	assert.EqualValues(t, 1, dashboard.Stats.TotalPosts)
	assert.EqualValues(t, 1, dashboard.Stats.TotalLikes)
	assert.EqualValues(t, 1, dashboard.Stats.TotalComments)
	assert.EqualValues(t, 2, dashboard.Stats.ActiveUsers)

	require.Len(t, dashboard.Posts, 1)
	require.NotNil(t, dashboard.Posts[0].Image)
	assert.Equal(t, "http://localhost/storage/"+*post.Image, *dashboard.Posts[0].Image)
}
