package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the profile row behind an account. Password material never leaves
// the service layer.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Username     *string   `db:"username" json:"username,omitempty"`
	FullName     *string   `db:"full_name" json:"full_name,omitempty"`
	Bio          *string   `db:"bio" json:"bio,omitempty"`
	PasswordHash []byte    `db:"password_hash" json:"-"`
	PasswordSalt []byte    `db:"password_salt" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	return authorName(u.FullName, u.Username)
}

type ProfileUpdate struct {
	Email    string
	Username string
	FullName string
	Bio      *string
}

func authorName(fullName, username *string) string {
	if fullName != nil && strings.TrimSpace(*fullName) != "" {
		return strings.TrimSpace(*fullName)
	}
	if username != nil && strings.TrimSpace(*username) != "" {
		return strings.TrimSpace(*username)
	}
	return "Anonymous"
}
