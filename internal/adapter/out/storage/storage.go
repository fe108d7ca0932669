package storage

import "errors"

type Scope int

const (
	ScopeUnspecified Scope = iota
	ScopeAll
	ScopeGroup
	ScopeAuthor
	ScopeFollower
)

var (
	ErrScopeUnset = errors.New("scope must be set")
)

// PostFilter selects the posts of one feed. ID is the group id, author id or
// follower id depending on Scope and is ignored for ScopeAll.
type PostFilter struct {
	Scope Scope
	ID    int64
}

func AllPosts() PostFilter {
	return PostFilter{Scope: ScopeAll}
}

func GroupPosts(groupID int64) PostFilter {
	return PostFilter{Scope: ScopeGroup, ID: groupID}
}

func AuthorPosts(authorID int64) PostFilter {
	return PostFilter{Scope: ScopeAuthor, ID: authorID}
}

func FollowedPosts(followerID int64) PostFilter {
	return PostFilter{Scope: ScopeFollower, ID: followerID}
}

// ListPostsParams is a filter plus an offset window over the feed ordering
// (created_at DESC, id ASC).
type ListPostsParams struct {
	Filter PostFilter
	Offset int
	Limit  int
}
