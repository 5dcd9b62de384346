package domain

import "time"

// Role is the authorization role assigned to a user.
//
// The values are stored verbatim in the database and embedded in token
// claims, so they must stay stable.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is a registered account. Password always holds the bcrypt hash,
// never the plaintext.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
