package service

import (
	"context"
	"errors"

	"yatube/internal/model"
	"yatube/pkg/logger"
)

// GroupService manages communities. Groups are created by operators, there
// is no public route for it.
type GroupService struct {
	groupStorage GroupStorage
}

func NewGroupService(groupStorage GroupStorage) *GroupService {
	return &GroupService{groupStorage: groupStorage}
}

func (s *GroupService) CreateGroup(ctx context.Context, form GroupForm) (model.Group, error) {
	form = form.normalized()
	if fe := checkForm(form); !fe.Empty() {
		return model.Group{}, fe
	}

	group, err := s.groupStorage.CreateGroup(ctx, model.Group{
		Title:       form.Title,
		Slug:        form.Slug,
		Description: form.Description,
	})
	if errors.Is(err, ErrSlugTaken) {
		fe := &FormError{}
		fe.Add("slug", msgSlugTaken)
		return model.Group{}, fe
	}
	if err != nil {
		return model.Group{}, err
	}

	logger.FromContext(ctx).Info("group created", "group_id", group.ID, "slug", group.Slug)
	return group, nil
}

func (s *GroupService) GetGroupBySlug(ctx context.Context, slug string) (model.Group, error) {
	return s.groupStorage.GetGroupBySlug(ctx, slug)
}

func (s *GroupService) ListGroups(ctx context.Context) ([]model.Group, error) {
	return s.groupStorage.ListGroups(ctx)
}
