package entity

import (
	"time"
)

// User is the aggregate root for the credential store. Password holds a bcrypt
// hash and is empty for externally-provisioned accounts.
type User struct {
	ID        string
	Email     string
	Password  string
	Name      string
	AvatarURL string
	CreatedAt time.Time
}
