// Package services – UserService
//
// This file implements UserService: profile lookup, paginated listing and the
// bulk display-name update. The bulk update takes two parallel arrays and
// refuses to run when their lengths differ; it never truncates or pads.
package services

import (
	"context"
	"errors"
	"math"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/tbourn/go-auth-backend/internal/domain"
	"github.com/tbourn/go-auth-backend/internal/seqs"
)

// UserRepo defines the repository contract required by UserService.
type UserRepo interface {
	// GetUser fetches a user by ID.
	GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error)

	// CountUsers returns the number of users for pagination.
	CountUsers(ctx context.Context, db *gorm.DB) (int64, error)

	// ListUsersPage returns a page of users.
	ListUsersPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.User, error)

	// UpdateDisplayName renames a single user.
	UpdateDisplayName(ctx context.Context, db *gorm.DB, id, displayName string) error

	// UsersStats returns the user count and latest update time (ETag input).
	UsersStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error)
}

// UserService provides read and update operations on user profiles.
type UserService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the user repository used by this service.
	Repo UserRepo

	// DisplayNameMaxLen caps stored display names by rune length.
	DisplayNameMaxLen int
}

// NewUserService constructs a UserService with default limits.
func NewUserService(db *gorm.DB, r UserRepo) *UserService {
	return &UserService{DB: db, Repo: r, DisplayNameMaxLen: 120}
}

// Get returns the user with the given ID or ErrUserNotFound.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.Repo.GetUser(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// ListPage returns a page of users and the total count. Invalid page and
// pageSize values fall back to 1 and 20.
func (s *UserService) ListPage(ctx context.Context, page, pageSize int) ([]domain.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	total, err := s.Repo.CountUsers(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	// Pages past the addressable range hold nothing.
	if total == 0 || page-1 > math.MaxInt32/pageSize {
		return []domain.User{}, total, nil
	}

	items, err := s.Repo.ListUsersPage(ctx, s.DB, (page-1)*pageSize, pageSize)
	return items, total, err
}

// Stats returns the inputs of the list ETag.
func (s *UserService) Stats(ctx context.Context) (int64, *time.Time, error) {
	return s.Repo.UsersStats(ctx, s.DB)
}

// BulkRename sets displayNames[i] as the display name of ids[i] on behalf of
// callerID. Callers may rename themselves; renaming anyone else requires the
// admin flag.
//
// The whole batch runs in one transaction: either every user is renamed or
// none is.
//
// Errors:
//   - *seqs.DifferentLengthOfArraysError when len(ids) != len(displayNames);
//     nothing is written.
//   - ErrForbidden when a non-admin caller targets another user.
//   - ErrUserNotFound when any id does not exist.
//   - The underlying DB error otherwise.
func (s *UserService) BulkRename(ctx context.Context, callerID string, ids, displayNames []string) error {
	pairs, err := seqs.Zip(ids, displayNames)
	if err != nil {
		return err
	}
	if err := s.authorizeRename(ctx, callerID, ids); err != nil {
		return err
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range pairs {
			if err := s.Repo.UpdateDisplayName(ctx, tx, p.First, s.clip(p.Second)); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrUserNotFound
				}
				return err
			}
		}
		return nil
	})
}

// authorizeRename allows a batch touching only callerID, and any batch from
// an admin.
func (s *UserService) authorizeRename(ctx context.Context, callerID string, ids []string) error {
	self := true
	for _, id := range ids {
		if id != callerID {
			self = false
			break
		}
	}
	if self {
		return nil
	}

	caller, err := s.Get(ctx, callerID)
	switch {
	case errors.Is(err, ErrUserNotFound):
		return ErrForbidden
	case err != nil:
		return err
	case !caller.IsAdmin:
		return ErrForbidden
	}
	return nil
}

// clip truncates a display name to the configured maximum rune length.
func (s *UserService) clip(name string) string {
	if s.DisplayNameMaxLen > 0 && utf8.RuneCountInString(name) > s.DisplayNameMaxLen {
		return string([]rune(name)[:s.DisplayNameMaxLen])
	}
	return name
}
