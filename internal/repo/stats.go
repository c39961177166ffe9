package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-auth-backend/internal/domain"
)

// UsersStats returns the number of live users and the latest UpdatedAt among
// them; together they version the user list for ETag generation. With no
// users it returns (0, nil, nil).
func UsersStats(ctx context.Context, db *gorm.DB) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.User{})
	if err = q.Count(&count).Error; err != nil || count == 0 {
		return 0, nil, err
	}

	// MAX(updated_at) comes back as TEXT from SQLite, so read the newest row.
	var latest domain.User
	if err = db.WithContext(ctx).Select("updated_at").Order("updated_at DESC").Take(&latest).Error; err != nil {
		return 0, nil, err
	}
	return count, &latest.UpdatedAt, nil
}
