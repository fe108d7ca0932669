package model

import "time"

type Comment struct {
	ID       int64
	PostID   int64
	AuthorID int64
	// Author is the author's username, filled on reads.
	Author    string
	Text      string
	CreatedAt time.Time
}
