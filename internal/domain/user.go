// Package domain defines the persistence models of the authentication
// service. These types are mapped with GORM and shared by the repository and
// service layers; they never cross the HTTP boundary directly (see package dto).
package domain

import (
	"time"

	"gorm.io/gorm"
)

// User is a registered account.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - Username: unique login name, stored as entered (trimmed).
//   - Email: unique address, stored lower-cased.
//   - PasswordHash: bcrypt hash; the plain password is never stored.
//   - DisplayName: free-form name shown to other users.
//   - IsAdmin: may rename other users; granted by the operator CLI only.
//   - LastLoginAt: set on every successful login.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker.
type User struct {
	ID           string         `gorm:"type:char(36);primaryKey"`
	Username     string         `gorm:"type:varchar(64);not null;uniqueIndex:ux_users_username"`
	Email        string         `gorm:"type:varchar(254);not null;uniqueIndex:ux_users_email"`
	PasswordHash string         `gorm:"type:varchar(100);not null"`
	DisplayName  string         `gorm:"type:varchar(120);not null;default:''"`
	IsAdmin      bool           `gorm:"not null;default:false"`
	LastLoginAt  *time.Time     `gorm:"index"`
	CreatedAt    time.Time      `gorm:"index"`
	UpdatedAt    time.Time      `gorm:"index"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }
