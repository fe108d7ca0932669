package model

import "time"

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the actor behind a request. The zero value is anonymous.
type Identity struct {
	UserID   int64
	Username string
}

func (i Identity) IsAuthenticated() bool {
	return i.UserID > 0
}

func (i Identity) Is(userID int64) bool {
	return i.IsAuthenticated() && i.UserID == userID
}
