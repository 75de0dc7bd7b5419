package identity

import (
	"fmt"
	"strings"

	"github.com/tshirtshop/backend/internal/domain/shared"
)

// Role is the access role of a user
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole parses a role name, defaulting to USER for an empty string
func ParseRole(s string) (Role, error) {
	if strings.TrimSpace(s) == "" {
		return RoleUser, nil
	}
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", shared.NewDomainError("INVALID_ROLE", fmt.Sprintf("Invalid role: %q", s))
	}
	return r, nil
}

// IsValid checks if the role is a known value
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// IsAdmin reports whether the role grants administrative access
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// Gender of a user, optional
type Gender string

const (
	GenderUnspecified Gender = ""
	GenderMale        Gender = "MALE"
	GenderFemale      Gender = "FEMALE"
)

// ParseGender parses an optional gender value
func ParseGender(s string) (Gender, error) {
	g := Gender(strings.ToUpper(strings.TrimSpace(s)))
	switch g {
	case GenderUnspecified, GenderMale, GenderFemale:
		return g, nil
	}
	return "", shared.NewDomainError("INVALID_GENDER", fmt.Sprintf("Invalid gender: %q", s))
}
