package services

import (
	"fmt"

	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"git.solsynth.dev/hypernet/circle/pkg/internal/storage"
	"github.com/samber/lo"
)

const SuggestedAccountsLimit = 5

type AuthorView struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	ProfilePicture *string `json:"profile_picture"`
}

type CommentAuthorView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CommentView struct {
	ID        uint              `json:"id"`
	Content   string            `json:"content"`
	CreatedAt string            `json:"created_at"`
	User      CommentAuthorView `json:"user"`
}

type PostView struct {
	ID         uint          `json:"id"`
	Content    string        `json:"content"`
	Image      *string       `json:"image"`
	Language   string        `json:"language"`
	CreatedAt  string        `json:"created_at"`
	User       AuthorView    `json:"user"`
	LikesCount int64         `json:"likes_count"`
	IsLiked    bool          `json:"is_liked"`
	Comments   []CommentView `json:"comments"`
}

type AccountSummary struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Username       *string `json:"username"`
	ProfilePicture *string `json:"profile_picture"`
	FollowersCount int64   `json:"followers_count"`
	IsFollowing    bool    `json:"is_following"`
}

type ProfileView struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Username       *string `json:"username"`
	Bio            string  `json:"bio"`
	Location       string  `json:"location"`
	ProfilePicture *string `json:"profile_picture"`
}

type DashboardStats struct {
	TotalPosts    int64 `json:"totalPosts"`
	TotalLikes    int64 `json:"totalLikes"`
	TotalComments int64 `json:"totalComments"`
	ActiveUsers   int64 `json:"activeUsers"`
}

type Dashboard struct {
	Posts          []PostView       `json:"posts"`
	Followers      []AccountSummary `json:"followers"`
	Following      []AccountSummary `json:"following"`
	SuggestedUsers []AccountSummary `json:"suggestedUsers"`
	FollowingCount int64            `json:"followingCount"`
	FollowersCount int64            `json:"followersCount"`
	Stats          DashboardStats   `json:"stats"`
}

func fileURL(path *string) *string {
	if path == nil || storage.S == nil {
		return nil
	}
	return lo.ToPtr(storage.S.URL(*path))
}

func NewProfileView(user models.Account) ProfileView {
	return ProfileView{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Username:       user.Username,
		Bio:            user.Bio,
		Location:       user.Location,
		ProfilePicture: fileURL(user.ProfilePicture),
	}
}

func NewCommentView(comment models.Comment) CommentView {
	return CommentView{
		ID:        comment.ID,
		Content:   comment.Content,
		CreatedAt: RelativeTime(comment.CreatedAt),
		User: CommentAuthorView{
			ID:   comment.Account.ID,
			Name: comment.Account.Name,
		},
	}
}

// AssembleDashboard composes the feed for the viewer, it only reads.
func AssembleDashboard(viewer models.Account) (Dashboard, error) {
	var out Dashboard

	posts, err := ListPosts()
	if err != nil {
		return out, err
	}
	if out.Posts, err = completePostViews(viewer, posts); err != nil {
		return out, err
	}

	followerIDs, err := ListFollowerIDs(viewer.ID)
	if err != nil {
		return out, err
	}
	followingIDs, err := ListFollowingIDs(viewer.ID)
	if err != nil {
		return out, err
	}
	out.FollowersCount = int64(len(followerIDs))
	out.FollowingCount = int64(len(followingIDs))

	followers, err := ListAccounts(followerIDs)
	if err != nil {
		return out, err
	}
	following, err := ListAccounts(followingIDs)
	if err != nil {
		return out, err
	}
	suggested, err := ListSuggestedAccounts(
		viewer.ID,
		lo.Uniq(append(append([]uint{}, followingIDs...), followerIDs...)),
		SuggestedAccountsLimit,
	)
	if err != nil {
		return out, err
	}

	var summaryIDs []uint
	for _, list := range [][]models.Account{followers, following, suggested} {
		summaryIDs = append(summaryIDs, lo.Map(list, func(item models.Account, _ int) uint {
			return item.ID
		})...)
	}
	followerCounts, err := BatchCountFollowers(lo.Uniq(summaryIDs))
	if err != nil {
		return out, err
	}

	summarize := func(list []models.Account, isFollowing func(id uint) bool) []AccountSummary {
		return lo.Map(list, func(item models.Account, _ int) AccountSummary {
			return AccountSummary{
				ID:             item.ID,
				Name:           item.Name,
				Username:       item.Username,
				ProfilePicture: fileURL(item.ProfilePicture),
				FollowersCount: followerCounts[item.ID],
				IsFollowing:    isFollowing(item.ID),
			}
		})
	}
	out.Followers = summarize(followers, func(id uint) bool {
		return lo.Contains(followingIDs, id)
	})
	out.Following = summarize(following, func(uint) bool { return true })
	out.SuggestedUsers = summarize(suggested, func(uint) bool { return false })

	if out.Stats, err = countDashboardStats(); err != nil {
		return out, err
	}

	return out, nil
}

func completePostViews(viewer models.Account, posts []models.Post) ([]PostView, error) {
	ids := lo.Map(posts, func(item models.Post, _ int) uint {
		return item.ID
	})

	likeCounts, err := BatchCountPostLikes(ids)
	if err != nil {
		return nil, err
	}
	liked, err := ListLikedPostIDs(viewer.ID, ids)
	if err != nil {
		return nil, err
	}
	comments, err := BatchListPostComments(ids)
	if err != nil {
		return nil, err
	}

	return lo.Map(posts, func(item models.Post, _ int) PostView {
		return PostView{
			ID:        item.ID,
			Content:   item.Content,
			Image:     fileURL(item.Image),
			Language:  item.Language,
			CreatedAt: RelativeTime(item.CreatedAt),
			User: AuthorView{
				ID:             item.Account.ID,
				Name:           item.Account.DisplayName(),
				Email:          item.Account.Email,
				ProfilePicture: fileURL(item.Account.ProfilePicture),
			},
			LikesCount: likeCounts[item.ID],
			IsLiked:    liked[item.ID],
			Comments:   lo.Map(comments[item.ID], func(comment models.Comment, _ int) CommentView { return NewCommentView(comment) }),
		}
	}), nil
}

func countDashboardStats() (DashboardStats, error) {
	var stats DashboardStats
	var err error
	if stats.TotalPosts, err = CountPosts(); err != nil {
		return stats, fmt.Errorf("unable to count posts: %v", err)
	}
	if stats.TotalLikes, err = CountLikes(); err != nil {
		return stats, fmt.Errorf("unable to count likes: %v", err)
	}
	if stats.TotalComments, err = CountComments(); err != nil {
		return stats, fmt.Errorf("unable to count comments: %v", err)
	}
	if stats.ActiveUsers, err = CountAccounts(); err != nil {
		return stats, fmt.Errorf("unable to count accounts: %v", err)
	}
	return stats, nil
}
