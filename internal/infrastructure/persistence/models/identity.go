package models

import (
	"github.com/tshirtshop/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	Email        string          `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string          `gorm:"type:varchar(255);not null"`
	Gender       identity.Gender `gorm:"type:varchar(10);not null"`
	Role         identity.Role   `gorm:"type:varchar(10);not null;index"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.aggregate(),
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		Gender:            m.Gender,
		Role:              m.Role,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.setAggregate(u.BaseAggregateRoot)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.Gender = u.Gender
	m.Role = u.Role
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
