package repositories

import (
	"context"

	"hrm-location/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// attendanceRepository implements AttendanceRepository interface
type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create inserts a record. A second record for the same (user, date)
// fails with domain.ErrDuplicateEntry.
func (r *attendanceRepository) Create(ctx context.Context, record *models.Attendance) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(record).Error)
}

// GetByUserAndDate gets the record for one user and calendar day
func (r *attendanceRepository) GetByUserAndDate(ctx context.Context, userID, date string) (*models.Attendance, error) {
	var record models.Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// SetCheckOut records the checkout only if none exists yet.
// It returns false when another request checked out first.
func (r *attendanceRepository) SetCheckOut(ctx context.Context, id string, event models.AttendanceEvent) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Where("id = ? AND check_in_time IS NOT NULL AND check_out_time IS NULL", id).
		Updates(map[string]interface{}{
			"check_out_time":          event.Time,
			"check_out_lat":           event.Lat,
			"check_out_lng":           event.Lng,
			"check_out_within_radius": event.WithinRadius,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// List lists records with pagination, newest date first, with the owning
// user preloaded
func (r *attendanceRepository) List(ctx context.Context, filter AttendanceFilter, offset, limit int) ([]*models.Attendance, int64, error) {
	var records []*models.Attendance
	var total int64

	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.filtered(ctx, filter).
		Select("attendances.*").
		Preload("User").
		Order("attendances.date DESC").
		Order("attendances.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// ListAll returns every record matching filter (export and summaries)
func (r *attendanceRepository) ListAll(ctx context.Context, filter AttendanceFilter) ([]*models.Attendance, error) {
	var records []*models.Attendance
	err := r.filtered(ctx, filter).
		Select("attendances.*").
		Preload("User").
		Order("attendances.date DESC").
		Order("attendances.created_at DESC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepository) filtered(ctx context.Context, filter AttendanceFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Attendance{})

	if filter.UserID != "" {
		q = q.Where("attendances.user_id = ?", filter.UserID)
	}
	if filter.UserIDs != nil {
		if len(filter.UserIDs) == 0 {
			// nothing can match an empty set
			q = q.Where("1 = 0")
		} else {
			q = q.Where("attendances.user_id IN ?", filter.UserIDs)
		}
	}
	if filter.Date != "" {
		q = q.Where("attendances.date = ?", filter.Date)
	}
	if filter.From != "" {
		q = q.Where("attendances.date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("attendances.date <= ?", filter.To)
	}
	if filter.Department != "" {
		q = q.Joins("JOIN users ON users.id = attendances.user_id").
			Where("users.department = ? AND users.role = ?", filter.Department, "employee")
	}

	return q
}
