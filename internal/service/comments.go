package service

import (
	"context"

	"yatube/internal/model"
	"yatube/pkg/logger"
)

type CommentService struct {
	commentStorage CommentStorage
	postStorage    PostStorage
}

func NewCommentService(commentStorage CommentStorage, postStorage PostStorage) *CommentService {
	return &CommentService{
		commentStorage: commentStorage,
		postStorage:    postStorage,
	}
}

// CreateComment attaches a comment to an existing post. Any authenticated
// identity may comment, the post author included.
func (s *CommentService) CreateComment(ctx context.Context, id model.Identity, postID int64, form CommentForm) (model.Comment, error) {
	if err := Authorize(id, ActionComment, 0); err != nil {
		return model.Comment{}, err
	}

	if _, err := s.postStorage.GetPostByID(ctx, postID); err != nil {
		return model.Comment{}, err
	}

	form = form.normalized()
	if fe := checkForm(form); !fe.Empty() {
		return model.Comment{}, fe
	}

	comment, err := s.commentStorage.CreateComment(ctx, model.Comment{
		PostID:   postID,
		AuthorID: id.UserID,
		Text:     form.Text,
	})
	if err != nil {
		return model.Comment{}, err
	}
	comment.Author = id.Username

	logger.FromContext(ctx).Info("comment created", "post_id", postID, "comment_id", comment.ID)
	return comment, nil
}

func (s *CommentService) GetCommentsByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	if _, err := s.postStorage.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentStorage.GetCommentsByPost(ctx, postID)
}
