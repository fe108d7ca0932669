package service

import (
	"context"
	"fmt"

	"yatube/internal/adapter/out/storage"
	"yatube/internal/model"
	"yatube/pkg/pagination"
)

type FeedService struct {
	postStorage   PostStorage
	groupStorage  GroupStorage
	userStorage   UserStorage
	followStorage FollowStorage
	perPage       int
}

func NewFeedService(
	postStorage PostStorage,
	groupStorage GroupStorage,
	userStorage UserStorage,
	followStorage FollowStorage,
	perPage int,
) *FeedService {
	if perPage <= 0 {
		perPage = pagination.DefaultPerPage
	}
	return &FeedService{
		postStorage:   postStorage,
		groupStorage:  groupStorage,
		userStorage:   userStorage,
		followStorage: followStorage,
		perPage:       perPage,
	}
}

type GroupFeed struct {
	Group model.Group
	Page  pagination.Page[model.Post]
}

type ProfileFeed struct {
	Author     model.User
	PostsCount int
	Following  bool
	Page       pagination.Page[model.Post]
}

func (s *FeedService) Index(ctx context.Context, page int) (pagination.Page[model.Post], error) {
	return s.feed(ctx, storage.AllPosts(), page)
}

func (s *FeedService) GroupFeed(ctx context.Context, slug string, page int) (GroupFeed, error) {
	var out GroupFeed

	group, err := s.groupStorage.GetGroupBySlug(ctx, slug)
	if err != nil {
		return out, err
	}
	out.Group = group

	if out.Page, err = s.feed(ctx, storage.GroupPosts(group.ID), page); err != nil {
		return out, err
	}
	return out, nil
}

// ProfileFeed lists the author's posts. PostsCount covers every post of the
// author regardless of the requested page; Following is only ever true for
// an authenticated viewer.
func (s *FeedService) ProfileFeed(ctx context.Context, viewer model.Identity, username string, page int) (ProfileFeed, error) {
	var out ProfileFeed

	author, err := s.userStorage.GetUserByUsername(ctx, username)
	if err != nil {
		return out, err
	}
	out.Author = author

	if out.Page, err = s.feed(ctx, storage.AuthorPosts(author.ID), page); err != nil {
		return out, err
	}
	out.PostsCount = out.Page.Count

	if viewer.IsAuthenticated() && !viewer.Is(author.ID) {
		if out.Following, err = s.followStorage.IsFollowing(ctx, viewer.UserID, author.ID); err != nil {
			return out, fmt.Errorf("follow status: %w", err)
		}
	}
	return out, nil
}

func (s *FeedService) FollowFeed(ctx context.Context, viewer model.Identity, page int) (pagination.Page[model.Post], error) {
	if !viewer.IsAuthenticated() {
		return pagination.Page[model.Post]{}, ErrUnauthenticated
	}
	return s.feed(ctx, storage.FollowedPosts(viewer.UserID), page)
}

func (s *FeedService) feed(ctx context.Context, filter storage.PostFilter, page int) (pagination.Page[model.Post], error) {
	count, err := s.postStorage.CountPosts(ctx, filter)
	if err != nil {
		return pagination.Page[model.Post]{}, fmt.Errorf("count posts: %w", err)
	}

	w := pagination.Bound(count, page, s.perPage)
	if w.Limit == 0 {
		return pagination.NewPage[model.Post](nil, count, w), nil
	}

	posts, err := s.postStorage.ListPosts(ctx, storage.ListPostsParams{
		Filter: filter,
		Offset: w.Offset,
		Limit:  w.Limit,
	})
	if err != nil {
		return pagination.Page[model.Post]{}, fmt.Errorf("list posts: %w", err)
	}
	return pagination.NewPage(posts, count, w), nil
}
