package dto

import (
	"time"

	"golang.org/x/text/language"

	"github.com/tbourn/go-auth-backend/internal/domain"
)

// UserDTO is the public summary of a user. It never carries credentials.
type UserDTO struct {
	ID          string    `json:"id" example:"fa4dfbe0-c3bf-47bd-b32f-d7de221cf43b"`
	Username    string    `json:"username" example:"alina"`
	Email       string    `json:"email" example:"alina@example.com"`
	DisplayName string    `json:"displayName" example:"Alina"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserFromDomain projects a persisted user onto its public summary.
func UserFromDomain(u *domain.User) UserDTO {
	if u == nil {
		return UserDTO{}
	}
	return UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt.UTC(),
	}
}

// UsersFromDomain projects a slice of users, preserving order.
func UsersFromDomain(us []domain.User) []UserDTO {
	out := make([]UserDTO, 0, len(us))
	for i := range us {
		out = append(out, UserFromDomain(&us[i]))
	}
	return out
}

// Equal reports whether u and o describe the same user summary.
func (u UserDTO) Equal(o UserDTO) bool {
	return u.ID == o.ID &&
		u.Username == o.Username &&
		u.Email == o.Email &&
		u.DisplayName == o.DisplayName &&
		u.CreatedAt.Equal(o.CreatedAt)
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
}

// NewPagination derives page counts from total and pageSize (pageSize >= 1).
func NewPagination(page, pageSize int, total int64) Pagination {
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

// ListUsersResponse wraps a page of user summaries.
type ListUsersResponse struct {
	Users      []UserDTO  `json:"users"`
	Pagination Pagination `json:"pagination"`
}

// BulkRenameRequest renames several users at once. IDs and DisplayNames are
// parallel arrays: DisplayNames[i] becomes the display name of IDs[i].
type BulkRenameRequest struct {
	IDs          []string `json:"ids" validate:"min=1" example:"fa4dfbe0-c3bf-47bd-b32f-d7de221cf43b"`
	DisplayNames []string `json:"displayNames" validate:"min=1" example:"Alina"`
}

// Validate checks the request shape. It does not compare the two lengths;
// that contract is enforced where the arrays are zipped.
func (r BulkRenameRequest) Validate(lang language.Tag) []FieldError {
	return Validate(r, lang)
}
