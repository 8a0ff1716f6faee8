package user

import (
	"time"
)

// User is a widget account. The username keys every persisted record,
// locally and in the remote sheet.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
