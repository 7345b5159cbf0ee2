package domain

import (
	"fmt"
	"strings"
	"time"
)

// Roles assignable to accounts. Contributors submit forms; admins manage
// users, resources and view aggregated statistics.
const (
	RoleAdmin       = "admin"
	RoleContributor = "contributor"
)

// User is an account record managed by administrators.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	Organisation string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewRole validates a role assignment.
func NewRole(value string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	switch trimmed {
	case RoleAdmin, RoleContributor:
		return trimmed, nil
	case "":
		return RoleContributor, nil
	}
	return "", fmt.Errorf("unknown role: %s", trimmed)
}
