package repositories

import (
	"context"
	"time"

	"hrm-location/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// officeLocationRepository implements OfficeLocationRepository interface
type officeLocationRepository struct {
	db *gorm.DB
}

// NewOfficeLocationRepository creates a new office location repository
func NewOfficeLocationRepository(db *gorm.DB) OfficeLocationRepository {
	return &officeLocationRepository{db: db}
}

// Get returns the office location; gorm.ErrRecordNotFound when unset
func (r *officeLocationRepository) Get(ctx context.Context) (*models.OfficeLocation, error) {
	var loc models.OfficeLocation
	err := r.db.WithContext(ctx).
		Where("config_key = ?", models.OfficeLocationKey).
		First(&loc).Error
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// Replace upserts the whole office location in a single statement and bumps
// its version
func (r *officeLocationRepository) Replace(ctx context.Context, loc *models.OfficeLocation) (*models.OfficeLocation, error) {
	loc.Key = models.OfficeLocationKey
	loc.Version = 1
	loc.UpdatedAt = time.Now()

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "config_key"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"latitude":   loc.Latitude,
				"longitude":  loc.Longitude,
				"radius":     loc.Radius,
				"updated_by": loc.UpdatedBy,
				"updated_at": loc.UpdatedAt,
				"version":    gorm.Expr("office_locations.version + 1"),
			}),
		}).
		Create(loc).Error
	if err != nil {
		return nil, err
	}

	return r.Get(ctx)
}
