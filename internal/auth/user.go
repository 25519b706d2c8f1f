package auth

import (
	"strings"
	"time"
)

type User struct {
	ID             string
	Email          string
	HashedPassword string
	FullName       string
	IsActive       bool
	CreatedAt      time.Time
}

// DisplayName falls back to a prettified email local part.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	local, _, _ := strings.Cut(u.Email, "@")
	words := strings.Split(strings.ReplaceAll(local, ".", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
