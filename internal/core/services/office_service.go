package services

import (
	"context"
	"errors"
	"log"
	"math"

	"hrm-location/internal/adapters/persistence/models"
	"hrm-location/internal/adapters/persistence/repositories"
	"hrm-location/internal/core/domain"
	"hrm-location/internal/pkg/geo"

	"gorm.io/gorm"
)

// OfficeService reads and replaces the single office location
type OfficeService struct {
	officeRepo repositories.OfficeLocationRepository
}

// NewOfficeService creates a new office service
func NewOfficeService(officeRepo repositories.OfficeLocationRepository) *OfficeService {
	return &OfficeService{officeRepo: officeRepo}
}

// SetOfficeLocationInput represents the office location payload
type SetOfficeLocationInput struct {
	Latitude  *float64 `json:"latitude" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
	Radius    *float64 `json:"radius" validate:"required"`
}

// Get returns the office location, or domain.ErrOfficeLocationNotSet
func (s *OfficeService) Get(ctx context.Context) (*models.OfficeLocation, error) {
	loc, err := s.officeRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOfficeLocationNotSet
		}
		return nil, err
	}
	return loc, nil
}

// Set replaces the office location as a whole
func (s *OfficeService) Set(ctx context.Context, adminID string, input *SetOfficeLocationInput) (*models.OfficeLocation, error) {
	if input.Latitude == nil || input.Longitude == nil || input.Radius == nil {
		return nil, domain.ErrInvalidInput
	}
	lat, lng, radius := *input.Latitude, *input.Longitude, *input.Radius

	if !geo.ValidCoordinate(lat, lng) {
		return nil, domain.ErrInvalidCoordinates
	}
	if radius <= 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil, domain.ErrInvalidRadius
	}

	loc := &models.OfficeLocation{
		Key:       models.OfficeLocationKey,
		Latitude:  lat,
		Longitude: lng,
		Radius:    radius,
	}
	if adminID != "" {
		loc.UpdatedBy = &adminID
	}

	saved, err := s.officeRepo.Replace(ctx, loc)
	if err != nil {
		return nil, err
	}

	log.Printf("📍 Office location set: (%f, %f) r=%.0fm v%d", saved.Latitude, saved.Longitude, saved.Radius, saved.Version)
	return saved, nil
}
