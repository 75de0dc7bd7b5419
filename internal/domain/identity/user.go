package identity

import (
	"net/mail"
	"strings"

	"github.com/tshirtshop/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost     = 12
	minPasswordLen = 8
	// bcrypt ignores input past 72 bytes
	maxPasswordLen = 72
	maxEmailLen    = 200
)

// User is an account that owns orders
type User struct {
	shared.BaseAggregateRoot
	Email        string
	PasswordHash string
	Gender       Gender
	Role         Role
}

// NewUser validates the account fields and stores only the bcrypt hash of
// password. Email is trimmed and lower-cased.
func NewUser(email, password string, gender Gender, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := checkEmail(email); err != nil {
		return nil, err
	}
	if err := checkPassword(password); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Invalid role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}
	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      string(hash),
		Gender:            gender,
		Role:              role,
	}, nil
}

func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func checkPassword(password string) error {
	switch n := len(password); {
	case n < minPasswordLen:
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	case n > maxPasswordLen:
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

// checkEmail accepts a bare address with a dotted domain, no display name
func checkEmail(email string) error {
	if len(email) > maxEmailLen {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	addr, err := mail.ParseAddress(email)
	at := strings.LastIndexByte(email, '@')
	if err != nil || addr.Address != email || at < 1 || !strings.Contains(email[at:], ".") {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
