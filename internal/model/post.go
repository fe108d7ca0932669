package model

import "time"

type Post struct {
	ID       int64
	Text     string
	AuthorID int64
	// Author is the author's username, filled on reads.
	Author    string
	GroupID   *int64
	Image     string
	CreatedAt time.Time
}

func (p Post) HasGroup() bool {
	return p.GroupID != nil
}
