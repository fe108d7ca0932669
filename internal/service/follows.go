package service

import (
	"context"

	"yatube/internal/model"
	"yatube/pkg/logger"
)

type FollowService struct {
	followStorage FollowStorage
	userStorage   UserStorage
	trManager     TxManager
}

func NewFollowService(followStorage FollowStorage, userStorage UserStorage, trManager TxManager) *FollowService {
	return &FollowService{
		followStorage: followStorage,
		userStorage:   userStorage,
		trManager:     trManager,
	}
}

// Follow is idempotent: following an already followed author is a no-op.
func (s *FollowService) Follow(ctx context.Context, id model.Identity, username string) error {
	if err := Authorize(id, ActionFollow, 0); err != nil {
		return err
	}

	return s.trManager.Do(ctx, func(ctx context.Context) error {
		author, err := s.userStorage.GetUserByUsername(ctx, username)
		if err != nil {
			return err
		}
		if author.ID == id.UserID {
			return ErrSelfFollow
		}
		if err := s.followStorage.CreateFollow(ctx, id.UserID, author.ID); err != nil {
			return err
		}

		logger.FromContext(ctx).Info("follow", "user", id.Username, "author", author.Username)
		return nil
	})
}

// Unfollow is idempotent: a missing edge is not an error.
func (s *FollowService) Unfollow(ctx context.Context, id model.Identity, username string) error {
	if err := Authorize(id, ActionFollow, 0); err != nil {
		return err
	}

	return s.trManager.Do(ctx, func(ctx context.Context) error {
		author, err := s.userStorage.GetUserByUsername(ctx, username)
		if err != nil {
			return err
		}
		if err := s.followStorage.DeleteFollow(ctx, id.UserID, author.ID); err != nil {
			return err
		}

		logger.FromContext(ctx).Info("unfollow", "user", id.Username, "author", author.Username)
		return nil
	})
}
