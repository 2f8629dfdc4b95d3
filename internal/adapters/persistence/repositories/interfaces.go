package repositories

import (
	"context"
	"time"

	"hrm-location/internal/adapters/persistence/models"
)

// UserFilter narrows employee listings
type UserFilter struct {
	Role       string
	Query      string // matched against name, email, phone
	Department string
	CreatedBy  string // provisioning admin; empty matches everyone
}

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter UserFilter, offset, limit int) ([]*models.User, int64, error)
	ListIDs(ctx context.Context, filter UserFilter) ([]string, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Session (single refresh token per user)
	SetRefreshToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error
	RotateRefreshToken(ctx context.Context, id, oldHash, newHash string, expiresAt time.Time) (bool, error)
	ClearRefreshToken(ctx context.Context, id string) error
	ClearExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}

// OfficeLocationRepository is the narrow read/replace interface over the
// singleton office location
type OfficeLocationRepository interface {
	Get(ctx context.Context) (*models.OfficeLocation, error)
	Replace(ctx context.Context, loc *models.OfficeLocation) (*models.OfficeLocation, error)
}

// AttendanceFilter narrows attendance listings. Empty fields are ignored.
type AttendanceFilter struct {
	UserID     string
	UserIDs    []string // applied when non-nil, empty means no rows
	Date       string
	From       string
	To         string
	Department string
}

// AttendanceRepository defines attendance repository interface
type AttendanceRepository interface {
	Create(ctx context.Context, record *models.Attendance) error
	GetByUserAndDate(ctx context.Context, userID, date string) (*models.Attendance, error)
	SetCheckOut(ctx context.Context, id string, event models.AttendanceEvent) (bool, error)
	List(ctx context.Context, filter AttendanceFilter, offset, limit int) ([]*models.Attendance, int64, error)
	ListAll(ctx context.Context, filter AttendanceFilter) ([]*models.Attendance, error)
}
