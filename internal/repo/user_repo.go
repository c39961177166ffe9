// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions. They follow the "thin repository"
// approach: no business logic, only persistence and query composition.
//
// Error semantics:
//   - Missing users yield ErrNotFound (an alias of gorm.ErrRecordNotFound).
//   - Unique violations on username/email yield ErrDuplicateUsername or
//     ErrDuplicateEmail.
//   - Other DB errors are propagated unchanged.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-auth-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = gorm.ErrRecordNotFound

var (
	// ErrDuplicateUsername indicates the username is already registered.
	ErrDuplicateUsername = errors.New("duplicate username")
	// ErrDuplicateEmail indicates the email is already registered.
	ErrDuplicateEmail = errors.New("duplicate email")
)

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser inserts a new user. The ID is a random UUID and the email is
// normalized. passwordHash must already be hashed.
func CreateUser(ctx context.Context, db *gorm.DB, username, email, passwordHash, displayName string) (*domain.User, error) {
	now := time.Now().UTC()
	u := &domain.User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(username),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		DisplayName:  strings.TrimSpace(displayName),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, mapUniqueViolation(err)
	}
	return u, nil
}

// GetUser fetches a user by ID, or ErrNotFound.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// FindUserByLogin resolves a login to a user. A login containing '@' is an
// email and matches the normalized email only; anything else matches the
// username only. Returns ErrNotFound when nothing matches.
func FindUserByLogin(ctx context.Context, db *gorm.DB, login string) (*domain.User, error) {
	login = strings.TrimSpace(login)
	q := db.WithContext(ctx).Where("username = ?", login)
	if strings.Contains(login, "@") {
		q = db.WithContext(ctx).Where("email = ?", NormalizeEmail(login))
	}
	var u domain.User
	if err := q.First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// SetAdmin grants or revokes the admin flag of the user that login resolves
// to (see FindUserByLogin) and returns the updated user.
func SetAdmin(ctx context.Context, db *gorm.DB, login string, admin bool) (*domain.User, error) {
	u, err := FindUserByLogin(ctx, db, login)
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(u).Update("is_admin", admin).Error; err != nil {
		return nil, err
	}
	u.IsAdmin = admin
	return u, nil
}

// TouchLastLogin records a successful login at the given time.
func TouchLastLogin(ctx context.Context, db *gorm.DB, id string, at time.Time) error {
	at = at.UTC()
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", &at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountUsers returns the number of live users.
func CountUsers(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error
	return total, err
}

// ListUsersPage returns a page of users ordered by creation time ascending
// (ties broken by ID). Use CountUsers for pagination metadata.
func ListUsersPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.User, error) {
	var out []domain.User
	err := db.WithContext(ctx).
		Order("created_at asc").
		Order("id asc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// UpdateDisplayName sets the display name of user id. It returns ErrNotFound
// when no live user has that ID.
func UpdateDisplayName(ctx context.Context, db *gorm.DB, id, displayName string) error {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("display_name", strings.TrimSpace(displayName))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// mapUniqueViolation translates unique-index violations into the repo
// sentinels. glebarez/sqlite often returns plain-text errors for them.
func mapUniqueViolation(err error) error {
	low := strings.ToLower(err.Error())
	if !errors.Is(err, gorm.ErrDuplicatedKey) &&
		!strings.Contains(low, "unique constraint") &&
		!strings.Contains(low, "constraint failed: unique") &&
		!strings.Contains(low, "duplicate key") {
		return err
	}
	if strings.Contains(low, "email") {
		return ErrDuplicateEmail
	}
	return ErrDuplicateUsername
}
