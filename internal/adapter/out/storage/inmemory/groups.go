package inmemory

import (
	"context"
	"sort"
	"sync"

	"yatube/internal/model"
	"yatube/internal/service"
)

type GroupStorage struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]model.Group
	bySlug map[string]int64
}

func NewGroupStorage() *GroupStorage {
	return &GroupStorage{
		byID:   make(map[int64]model.Group),
		bySlug: make(map[string]int64),
	}
}

func (s *GroupStorage) CreateGroup(_ context.Context, in model.Group) (model.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bySlug[in.Slug]; ok {
		return model.Group{}, service.ErrSlugTaken
	}

	s.nextID++
	in.ID = s.nextID
	s.byID[in.ID] = in
	s.bySlug[in.Slug] = in.ID
	return in, nil
}

func (s *GroupStorage) GetGroupByID(_ context.Context, groupID int64) (model.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if g, ok := s.byID[groupID]; ok {
		return g, nil
	}
	return model.Group{}, service.ErrNotFound
}

func (s *GroupStorage) GetGroupBySlug(_ context.Context, slug string) (model.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.bySlug[slug]
	if !ok {
		return model.Group{}, service.ErrNotFound
	}
	return s.byID[id], nil
}

func (s *GroupStorage) ListGroups(_ context.Context) ([]model.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Group, 0, len(s.byID))
	for _, g := range s.byID {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}
