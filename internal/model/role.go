package model

import (
	"fmt"
	"strings"
)

// Role is the caller's console role. It is resolved outside this module and
// only gates which reports are shown.
type Role string

// Roles.
const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
	RoleTrainer Role = "trainer"
)

// ParseRole parses a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleManager, RoleStaff, RoleTrainer:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// CanViewFinancials reports whether the role may see expenses and revenue.
func (r Role) CanViewFinancials() bool {
	return r == RoleAdmin || r == RoleManager
}
