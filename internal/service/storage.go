package service

import (
	"context"

	"yatube/internal/adapter/out/storage"
	"yatube/internal/model"
)

//go:generate mockgen -source=storage.go -destination=./storage_mock.go -package=service
type PostStorage interface {
	CreatePost(ctx context.Context, post model.Post) (model.Post, error)
	GetPostByID(ctx context.Context, postID int64) (model.Post, error)
	UpdatePost(ctx context.Context, post model.Post) (model.Post, error)
	DeletePost(ctx context.Context, postID int64) error
	CountPosts(ctx context.Context, filter storage.PostFilter) (int, error)
	ListPosts(ctx context.Context, params storage.ListPostsParams) ([]model.Post, error)
}

type CommentStorage interface {
	CreateComment(ctx context.Context, comment model.Comment) (model.Comment, error)
	GetCommentsByPost(ctx context.Context, postID int64) ([]model.Comment, error)
	DeleteCommentsByPost(ctx context.Context, postID int64) error
}

type GroupStorage interface {
	CreateGroup(ctx context.Context, group model.Group) (model.Group, error)
	GetGroupByID(ctx context.Context, groupID int64) (model.Group, error)
	GetGroupBySlug(ctx context.Context, slug string) (model.Group, error)
	ListGroups(ctx context.Context) ([]model.Group, error)
}

type UserStorage interface {
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	GetUserByID(ctx context.Context, userID int64) (model.User, error)
	GetUserByUsername(ctx context.Context, username string) (model.User, error)
}

// FollowStorage.CreateFollow must not fail when the edge already exists and
// DeleteFollow must not fail when it does not.
type FollowStorage interface {
	CreateFollow(ctx context.Context, userID, authorID int64) error
	DeleteFollow(ctx context.Context, userID, authorID int64) error
	IsFollowing(ctx context.Context, userID, authorID int64) (bool, error)
}

type MediaStorage interface {
	SaveImage(ctx context.Context, filename string, data []byte) (string, error)
	RemoveImage(ctx context.Context, stored string) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
