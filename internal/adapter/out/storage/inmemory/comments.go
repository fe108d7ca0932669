package inmemory

import (
	"context"
	"slices"
	"sync"
	"time"

	"yatube/internal/model"
)

type CommentStorage struct {
	mu     sync.RWMutex
	nextID int64
	byPost map[int64][]model.Comment

	users *UserStorage
	posts *PostStorage
}

// NewCommentStorage refuses comments on posts that posts does not know.
func NewCommentStorage(users *UserStorage, posts *PostStorage) *CommentStorage {
	return &CommentStorage{
		byPost: make(map[int64][]model.Comment),
		users:  users,
		posts:  posts,
	}
}

func (s *CommentStorage) CreateComment(ctx context.Context, in model.Comment) (model.Comment, error) {
	if s.posts != nil {
		if _, err := s.posts.GetPostByID(ctx, in.PostID); err != nil {
			return model.Comment{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	in.ID = s.nextID
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now()
	}
	in.Author = ""
	s.byPost[in.PostID] = append(s.byPost[in.PostID], in)
	return s.withAuthor(in), nil
}

// GetCommentsByPost returns comments oldest first.
func (s *CommentStorage) GetCommentsByPost(_ context.Context, postID int64) ([]model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src := s.byPost[postID]
	out := make([]model.Comment, 0, len(src))
	for _, c := range src {
		out = append(out, s.withAuthor(c))
	}
	slices.SortStableFunc(out, func(a, b model.Comment) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func (s *CommentStorage) DeleteCommentsByPost(_ context.Context, postID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byPost, postID)
	return nil
}

// Count returns the number of stored comments.
func (s *CommentStorage) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, cs := range s.byPost {
		n += len(cs)
	}
	return n
}

func (s *CommentStorage) withAuthor(c model.Comment) model.Comment {
	if s.users != nil {
		c.Author = s.users.username(c.AuthorID)
	}
	return c
}
