package service

import (
	"context"
	"errors"
	"fmt"

	"yatube/internal/adapter/out/storage"
	"yatube/internal/model"
	"yatube/pkg/logger"
)

type PostService struct {
	postStorage    PostStorage
	commentStorage CommentStorage
	groupStorage   GroupStorage
	userStorage    UserStorage
	media          MediaStorage
	trManager      TxManager
}

func NewPostService(
	postStorage PostStorage,
	commentStorage CommentStorage,
	groupStorage GroupStorage,
	userStorage UserStorage,
	media MediaStorage,
	trManager TxManager,
) *PostService {
	return &PostService{
		postStorage:    postStorage,
		commentStorage: commentStorage,
		groupStorage:   groupStorage,
		userStorage:    userStorage,
		media:          media,
		trManager:      trManager,
	}
}

type PostDetail struct {
	Post       model.Post
	Author     model.User
	Group      *model.Group
	PostsCount int
	Comments   []model.Comment
}

func (s *PostService) GetPostDetail(ctx context.Context, postID int64) (PostDetail, error) {
	var out PostDetail

	if postID <= 0 {
		return out, fmt.Errorf("postID must be > 0: %w", ErrNotFound)
	}

	post, err := s.postStorage.GetPostByID(ctx, postID)
	if err != nil {
		return out, err
	}
	out.Post = post

	if out.Author, err = s.userStorage.GetUserByID(ctx, post.AuthorID); err != nil {
		return out, fmt.Errorf("post author: %w", err)
	}

	if post.GroupID != nil {
		group, err := s.groupStorage.GetGroupByID(ctx, *post.GroupID)
		if err != nil {
			return out, fmt.Errorf("post group: %w", err)
		}
		out.Group = &group
	}

	if out.PostsCount, err = s.postStorage.CountPosts(ctx, storage.AuthorPosts(post.AuthorID)); err != nil {
		return out, err
	}

	if out.Comments, err = s.commentStorage.GetCommentsByPost(ctx, postID); err != nil {
		return out, err
	}

	return out, nil
}

func (s *PostService) ListGroups(ctx context.Context) ([]model.Group, error) {
	return s.groupStorage.ListGroups(ctx)
}

// GetPostForEdit returns the post only to its author.
func (s *PostService) GetPostForEdit(ctx context.Context, id model.Identity, postID int64) (model.Post, error) {
	if !id.IsAuthenticated() {
		return model.Post{}, ErrUnauthenticated
	}

	post, err := s.postStorage.GetPostByID(ctx, postID)
	if err != nil {
		return model.Post{}, err
	}
	if err := Authorize(id, ActionEditPost, post.AuthorID); err != nil {
		return model.Post{}, err
	}
	return post, nil
}

func (s *PostService) CreatePost(ctx context.Context, id model.Identity, form PostForm) (model.Post, error) {
	if err := Authorize(id, ActionCreatePost, 0); err != nil {
		return model.Post{}, err
	}

	form = form.normalized()
	if err := s.checkPostForm(ctx, form); err != nil {
		return model.Post{}, err
	}

	post := model.Post{
		Text:     form.Text,
		AuthorID: id.UserID,
		GroupID:  form.GroupID,
	}
	if form.Image != nil {
		path, err := s.media.SaveImage(ctx, form.Image.Filename, form.Image.Data)
		if err != nil {
			return model.Post{}, fmt.Errorf("save image: %w", err)
		}
		post.Image = path
	}

	out, err := s.postStorage.CreatePost(ctx, post)
	if err != nil {
		s.discardImage(ctx, post.Image)
		return model.Post{}, err
	}
	out.Author = id.Username

	logger.FromContext(ctx).Info("post created", "post_id", out.ID, "author", id.Username)
	return out, nil
}

// EditPost replaces text, group and, when a new one is uploaded, the image.
// The author never changes.
func (s *PostService) EditPost(ctx context.Context, id model.Identity, postID int64, form PostForm) (model.Post, error) {
	if !id.IsAuthenticated() {
		return model.Post{}, ErrUnauthenticated
	}

	var out model.Post
	var saved string
	err := s.trManager.Do(ctx, func(ctx context.Context) error {
		post, err := s.postStorage.GetPostByID(ctx, postID)
		if err != nil {
			return err
		}
		if err := Authorize(id, ActionEditPost, post.AuthorID); err != nil {
			return err
		}

		form = form.normalized()
		if err := s.checkPostForm(ctx, form); err != nil {
			return err
		}

		post.Text = form.Text
		post.GroupID = form.GroupID
		if form.Image != nil {
			path, err := s.media.SaveImage(ctx, form.Image.Filename, form.Image.Data)
			if err != nil {
				return fmt.Errorf("save image: %w", err)
			}
			post.Image = path
			saved = path
		}

		out, err = s.postStorage.UpdatePost(ctx, post)
		return err
	})
	if err != nil {
		s.discardImage(ctx, saved)
		return model.Post{}, err
	}
	out.Author = id.Username
	return out, nil
}

// DeletePost removes the post together with its comments.
func (s *PostService) DeletePost(ctx context.Context, id model.Identity, postID int64) error {
	if !id.IsAuthenticated() {
		return ErrUnauthenticated
	}

	return s.trManager.Do(ctx, func(ctx context.Context) error {
		post, err := s.postStorage.GetPostByID(ctx, postID)
		if err != nil {
			return err
		}
		if err := Authorize(id, ActionDeletePost, post.AuthorID); err != nil {
			return err
		}
		if err := s.commentStorage.DeleteCommentsByPost(ctx, postID); err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if err := s.postStorage.DeletePost(ctx, postID); err != nil {
			return err
		}

		logger.FromContext(ctx).Info("post deleted", "post_id", postID, "author", id.Username)
		return nil
	})
}

func (s *PostService) checkPostForm(ctx context.Context, form PostForm) error {
	fe := checkForm(form)

	if form.GroupID != nil && *form.GroupID > 0 {
		_, err := s.groupStorage.GetGroupByID(ctx, *form.GroupID)
		switch {
		case errors.Is(err, ErrNotFound):
			fe.Add("group", msgInvalidChoice)
		case err != nil:
			return err
		}
	}

	if form.Image != nil {
		if msg := checkImage(form.Image); msg != "" {
			fe.Add("image", msg)
		}
	}

	if fe.Empty() {
		return nil
	}
	return fe
}

// discardImage removes an image saved for a write that did not happen.
func (s *PostService) discardImage(ctx context.Context, stored string) {
	if stored == "" {
		return
	}
	if err := s.media.RemoveImage(ctx, stored); err != nil {
		logger.FromContext(ctx).Warn("orphaned image", "name", stored, "error", err)
	}
}
