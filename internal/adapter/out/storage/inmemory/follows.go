package inmemory

import (
	"context"
	"sync"
)

type followKey struct {
	userID   int64
	authorID int64
}

type FollowStorage struct {
	mu    sync.RWMutex
	edges map[followKey]struct{}
}

func NewFollowStorage() *FollowStorage {
	return &FollowStorage{
		edges: make(map[followKey]struct{}),
	}
}

func (s *FollowStorage) CreateFollow(_ context.Context, userID, authorID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.edges[followKey{userID: userID, authorID: authorID}] = struct{}{}
	return nil
}

func (s *FollowStorage) DeleteFollow(_ context.Context, userID, authorID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.edges, followKey{userID: userID, authorID: authorID})
	return nil
}

func (s *FollowStorage) IsFollowing(_ context.Context, userID, authorID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.edges[followKey{userID: userID, authorID: authorID}]
	return ok, nil
}

// Count returns the number of edges.
func (s *FollowStorage) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.edges)
}

func (s *FollowStorage) follows(userID, authorID int64) bool {
	ok, _ := s.IsFollowing(context.Background(), userID, authorID)
	return ok
}
