package inmemory

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"yatube/internal/adapter/out/storage"
	"yatube/internal/model"
	"yatube/internal/service"
)

type PostStorage struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]model.Post

	users   *UserStorage
	follows *FollowStorage
}

// NewPostStorage needs users to fill author names on reads and follows to
// build the follow feed.
func NewPostStorage(users *UserStorage, follows *FollowStorage) *PostStorage {
	return &PostStorage{
		byID:    make(map[int64]model.Post),
		users:   users,
		follows: follows,
	}
}

func (s *PostStorage) CreatePost(_ context.Context, in model.Post) (model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	in.ID = s.nextID
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now()
	}
	in.Author = ""
	s.byID[in.ID] = in
	return s.withAuthor(in), nil
}

func (s *PostStorage) GetPostByID(_ context.Context, postID int64) (model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.byID[postID]; ok {
		return s.withAuthor(p), nil
	}
	return model.Post{}, service.ErrNotFound
}

// UpdatePost stores text, group and image. Author and creation time stay
// as they were.
func (s *PostStorage) UpdatePost(_ context.Context, in model.Post) (model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[in.ID]
	if !ok {
		return model.Post{}, service.ErrNotFound
	}
	p.Text = in.Text
	p.GroupID = in.GroupID
	p.Image = in.Image
	s.byID[p.ID] = p
	return s.withAuthor(p), nil
}

func (s *PostStorage) DeletePost(_ context.Context, postID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[postID]; !ok {
		return service.ErrNotFound
	}
	delete(s.byID, postID)
	return nil
}

func (s *PostStorage) CountPosts(_ context.Context, filter storage.PostFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts, err := s.filtered(filter)
	if err != nil {
		return 0, err
	}
	return len(posts), nil
}

func (s *PostStorage) ListPosts(_ context.Context, params storage.ListPostsParams) ([]model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts, err := s.filtered(params.Filter)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = len(posts)
	}
	start := min(max(params.Offset, 0), len(posts))
	end := min(start+limit, len(posts))

	out := make([]model.Post, 0, end-start)
	for _, p := range posts[start:end] {
		out = append(out, s.withAuthor(p))
	}
	return out, nil
}

// filtered returns the posts matching filter newest first; posts created at
// the same instant keep their insertion order.
func (s *PostStorage) filtered(filter storage.PostFilter) ([]model.Post, error) {
	var match func(p model.Post) bool

	switch filter.Scope {
	case storage.ScopeAll:
		match = func(model.Post) bool { return true }
	case storage.ScopeGroup:
		match = func(p model.Post) bool { return p.GroupID != nil && *p.GroupID == filter.ID }
	case storage.ScopeAuthor:
		match = func(p model.Post) bool { return p.AuthorID == filter.ID }
	case storage.ScopeFollower:
		match = func(p model.Post) bool { return s.follows.follows(filter.ID, p.AuthorID) }
	default:
		return nil, errors.Join(service.ErrInvalidRequest, storage.ErrScopeUnset)
	}

	out := make([]model.Post, 0, len(s.byID))
	for _, p := range s.byID {
		if match(p) {
			out = append(out, p)
		}
	}

	slices.SortFunc(out, func(a, b model.Post) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (s *PostStorage) withAuthor(p model.Post) model.Post {
	if s.users != nil {
		p.Author = s.users.username(p.AuthorID)
	}
	return p
}
