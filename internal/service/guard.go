package service

import "yatube/internal/model"

type Action int

const (
	ActionCreatePost Action = iota + 1
	ActionEditPost
	ActionDeletePost
	ActionComment
	ActionFollow
)

func (a Action) String() string {
	switch a {
	case ActionCreatePost:
		return "create post"
	case ActionEditPost:
		return "edit post"
	case ActionDeletePost:
		return "delete post"
	case ActionComment:
		return "comment"
	case ActionFollow:
		return "follow"
	default:
		return "unknown"
	}
}

// Role is the relation between an identity and a post.
type Role int

const (
	RoleAnonymous Role = iota
	RoleMember
	RoleAuthor
)

func RoleOf(id model.Identity, authorID int64) Role {
	switch {
	case !id.IsAuthenticated():
		return RoleAnonymous
	case id.Is(authorID):
		return RoleAuthor
	default:
		return RoleMember
	}
}

// Authorize returns ErrUnauthenticated for anonymous identities and
// ErrForbidden when a non-author tries to change a post. authorID is only
// consulted for edit and delete.
func Authorize(id model.Identity, action Action, authorID int64) error {
	role := RoleOf(id, authorID)
	if role == RoleAnonymous {
		return ErrUnauthenticated
	}

	switch action {
	case ActionEditPost, ActionDeletePost:
		if role != RoleAuthor {
			return ErrForbidden
		}
	}
	return nil
}
