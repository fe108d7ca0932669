package inmemory

import (
	"context"
	"sync"
	"time"

	"yatube/internal/model"
	"yatube/internal/service"
)

type UserStorage struct {
	mu         sync.RWMutex
	nextID     int64
	byID       map[int64]model.User
	byUsername map[string]int64
}

func NewUserStorage() *UserStorage {
	return &UserStorage{
		byID:       make(map[int64]model.User),
		byUsername: make(map[string]int64),
	}
}

func (s *UserStorage) CreateUser(_ context.Context, in model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byUsername[in.Username]; ok {
		return model.User{}, service.ErrUsernameTaken
	}

	s.nextID++
	in.ID = s.nextID
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now()
	}
	s.byID[in.ID] = in
	s.byUsername[in.Username] = in.ID
	return in, nil
}

func (s *UserStorage) GetUserByID(_ context.Context, userID int64) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u, ok := s.byID[userID]; ok {
		return u, nil
	}
	return model.User{}, service.ErrNotFound
}

func (s *UserStorage) GetUserByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return model.User{}, service.ErrNotFound
	}
	return s.byID[id], nil
}

func (s *UserStorage) username(userID int64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.byID[userID].Username
}
