package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"yatube/internal/adapter/out/storage"
	"yatube/internal/model"
)

type feedMocks struct {
	posts   *MockPostStorage
	groups  *MockGroupStorage
	users   *MockUserStorage
	follows *MockFollowStorage
}

func newFeedService(t *testing.T) (*FeedService, feedMocks) {
	ctrl := gomock.NewController(t)

	m := feedMocks{
		posts:   NewMockPostStorage(ctrl),
		groups:  NewMockGroupStorage(ctrl),
		users:   NewMockUserStorage(ctrl),
		follows: NewMockFollowStorage(ctrl),
	}
	return NewFeedService(m.posts, m.groups, m.users, m.follows, 10), m
}

func makePosts(n int, authorID int64) []model.Post {
	now := time.Now()
	out := make([]model.Post, 0, n)
	for i := n; i >= 1; i-- {
		out = append(out, model.Post{ID: int64(i), AuthorID: authorID, CreatedAt: now.Add(time.Duration(i) * time.Minute)})
	}
	return out
}

func TestFeedService_Index(t *testing.T) {
	t.Parallel()

	posts := makePosts(13, 1)

	tests := []struct {
		name      string
		page      int
		setup     func(m feedMocks)
		wantLen   int
		wantPage  int
		wantNext  bool
		wantErrIs bool
	}{
		{
			name: "first page",
			page: 1,
			setup: func(m feedMocks) {
				m.posts.EXPECT().CountPosts(gomock.Any(), storage.AllPosts()).Return(13, nil)
				m.posts.EXPECT().
					ListPosts(gomock.Any(), storage.ListPostsParams{Filter: storage.AllPosts(), Offset: 0, Limit: 10}).
					Return(posts[:10], nil)
			},
			wantLen:  10,
			wantPage: 1,
			wantNext: true,
		},
		{
			name: "second page",
			page: 2,
			setup: func(m feedMocks) {
				m.posts.EXPECT().CountPosts(gomock.Any(), storage.AllPosts()).Return(13, nil)
				m.posts.EXPECT().
					ListPosts(gomock.Any(), storage.ListPostsParams{Filter: storage.AllPosts(), Offset: 10, Limit: 3}).
					Return(posts[10:], nil)
			},
			wantLen:  3,
			wantPage: 2,
		},
		{
			name: "page beyond the end clamps to last",
			page: 50,
			setup: func(m feedMocks) {
				m.posts.EXPECT().CountPosts(gomock.Any(), storage.AllPosts()).Return(13, nil)
				m.posts.EXPECT().
					ListPosts(gomock.Any(), storage.ListPostsParams{Filter: storage.AllPosts(), Offset: 10, Limit: 3}).
					Return(posts[10:], nil)
			},
			wantLen:  3,
			wantPage: 2,
		},
		{
			name: "empty feed does not list",
			page: 1,
			setup: func(m feedMocks) {
				m.posts.EXPECT().CountPosts(gomock.Any(), storage.AllPosts()).Return(0, nil)
			},
			wantLen:  0,
			wantPage: 1,
		},
		{
			name: "count error",
			page: 1,
			setup: func(m feedMocks) {
				m.posts.EXPECT().CountPosts(gomock.Any(), storage.AllPosts()).Return(0, errors.New("db down"))
			},
			wantErrIs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newFeedService(t)
			tt.setup(m)

			page, err := svc.Index(context.Background(), tt.page)
			if tt.wantErrIs {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, page.Items, tt.wantLen)
			require.Equal(t, tt.wantPage, page.Number)
			require.Equal(t, tt.wantNext, page.HasNext)
		})
	}
}

func TestFeedService_GroupFeed(t *testing.T) {
	t.Parallel()

	t.Run("unknown slug", func(t *testing.T) {
		svc, m := newFeedService(t)
		m.groups.EXPECT().GetGroupBySlug(gomock.Any(), "nope").Return(model.Group{}, ErrNotFound)

		_, err := svc.GroupFeed(context.Background(), "nope", 1)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("group posts", func(t *testing.T) {
		svc, m := newFeedService(t)
		group := model.Group{ID: 4, Slug: "testslug", Title: "Test group"}

		m.groups.EXPECT().GetGroupBySlug(gomock.Any(), "testslug").Return(group, nil)
		m.posts.EXPECT().CountPosts(gomock.Any(), storage.GroupPosts(4)).Return(1, nil)
		m.posts.EXPECT().
			ListPosts(gomock.Any(), storage.ListPostsParams{Filter: storage.GroupPosts(4), Limit: 1}).
			Return([]model.Post{{ID: 1, GroupID: int64Ptr(4)}}, nil)

		got, err := svc.GroupFeed(context.Background(), "testslug", 1)
		require.NoError(t, err)
		require.Equal(t, group, got.Group)
		require.Len(t, got.Page.Items, 1)
	})
}

func TestFeedService_ProfileFeed(t *testing.T) {
	t.Parallel()

	author := model.User{ID: 1, Username: "auth"}
	posts := makePosts(13, 1)

	expectProfile := func(m feedMocks) {
		m.users.EXPECT().GetUserByUsername(gomock.Any(), "auth").Return(author, nil)
		m.posts.EXPECT().CountPosts(gomock.Any(), storage.AuthorPosts(1)).Return(13, nil)
		m.posts.EXPECT().
			ListPosts(gomock.Any(), storage.ListPostsParams{Filter: storage.AuthorPosts(1), Offset: 10, Limit: 3}).
			Return(posts[10:], nil)
	}

	t.Run("count is independent of page", func(t *testing.T) {
		svc, m := newFeedService(t)
		expectProfile(m)

		got, err := svc.ProfileFeed(context.Background(), model.Identity{}, "auth", 2)
		require.NoError(t, err)
		require.Equal(t, 13, got.PostsCount)
		require.Len(t, got.Page.Items, 3)
		require.False(t, got.Following)
	})

	t.Run("follower sees following", func(t *testing.T) {
		svc, m := newFeedService(t)
		expectProfile(m)
		m.follows.EXPECT().IsFollowing(gomock.Any(), int64(2), int64(1)).Return(true, nil)

		got, err := svc.ProfileFeed(context.Background(), model.Identity{UserID: 2}, "auth", 2)
		require.NoError(t, err)
		require.True(t, got.Following)
	})

	t.Run("own profile skips follow lookup", func(t *testing.T) {
		svc, m := newFeedService(t)
		expectProfile(m)

		got, err := svc.ProfileFeed(context.Background(), model.Identity{UserID: 1}, "auth", 2)
		require.NoError(t, err)
		require.False(t, got.Following)
	})

	t.Run("unknown username", func(t *testing.T) {
		svc, m := newFeedService(t)
		m.users.EXPECT().GetUserByUsername(gomock.Any(), "ghost").Return(model.User{}, ErrNotFound)

		_, err := svc.ProfileFeed(context.Background(), model.Identity{}, "ghost", 1)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestFeedService_FollowFeed(t *testing.T) {
	t.Parallel()

	t.Run("anonymous", func(t *testing.T) {
		svc, _ := newFeedService(t)

		_, err := svc.FollowFeed(context.Background(), model.Identity{}, 1)
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("followed authors", func(t *testing.T) {
		svc, m := newFeedService(t)
		m.posts.EXPECT().CountPosts(gomock.Any(), storage.FollowedPosts(2)).Return(1, nil)
		m.posts.EXPECT().
			ListPosts(gomock.Any(), storage.ListPostsParams{Filter: storage.FollowedPosts(2), Limit: 1}).
			Return([]model.Post{{ID: 1, AuthorID: 1}}, nil)

		page, err := svc.FollowFeed(context.Background(), model.Identity{UserID: 2}, 1)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
	})
}
