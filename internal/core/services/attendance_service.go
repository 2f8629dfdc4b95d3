package services

import (
	"context"
	"errors"
	"log"
	"time"

	"hrm-location/internal/adapters/persistence/models"
	"hrm-location/internal/adapters/persistence/repositories"
	"hrm-location/internal/config"
	"hrm-location/internal/core/domain"
	"hrm-location/internal/pkg/geo"
	"hrm-location/internal/pkg/metrics"
	"hrm-location/internal/pkg/pagination"

	"gorm.io/gorm"
)

// Clock returns the current time
type Clock func() time.Time

// AttendanceService is the per-user, per-day attendance ledger.
// A day's record moves NoRecord -> CheckedIn -> CheckedOut and never back.
type AttendanceService struct {
	attendanceRepo repositories.AttendanceRepository
	officeRepo     repositories.OfficeLocationRepository
	location       *time.Location
	now            Clock
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(
	attendanceRepo repositories.AttendanceRepository,
	officeRepo repositories.OfficeLocationRepository,
	cfg *config.Config,
) *AttendanceService {
	loc := cfg.Attendance.Location
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		officeRepo:     officeRepo,
		location:       loc,
		now:            time.Now,
	}
}

// WithClock replaces the time source
func (s *AttendanceService) WithClock(clock Clock) *AttendanceService {
	s.now = clock
	return s
}

// AttendanceResult is returned by check-in and check-out
type AttendanceResult struct {
	Distance     float64                    `json:"distance"`
	WithinRadius bool                       `json:"withinRadius"`
	Record       *models.AttendanceResponse `json:"record"`
}

// HistoryQuery represents history query input
type HistoryQuery struct {
	Page  int
	Limit int
	From  string
	To    string
}

// Today returns today's date key in the calendar location
func (s *AttendanceService) Today() string {
	return domain.DateKey(s.now(), s.location)
}

// CheckIn records today's check-in. Being outside the radius does not block
// the check-in, it only flags it.
func (s *AttendanceService) CheckIn(ctx context.Context, userID string, coord domain.Coordinate) (*AttendanceResult, error) {
	distance, within, err := s.evaluate(ctx, coord)
	if err != nil {
		return nil, err
	}

	now := s.now()
	date := domain.DateKey(now, s.location)

	// Records are only ever created by a check-in, so an existing one means
	// the day is already started
	_, err = s.attendanceRepo.GetByUserAndDate(ctx, userID, date)
	if err == nil {
		return nil, domain.ErrAlreadyCheckedIn
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	record := &models.Attendance{
		UserID: userID,
		Date:   date,
		CheckIn: models.AttendanceEvent{
			Time:         &now,
			Lat:          coord.Lat,
			Lng:          coord.Lng,
			WithinRadius: within,
		},
	}

	// The (user_id, date) unique index decides concurrent check-ins
	if err := s.attendanceRepo.Create(ctx, record); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, domain.ErrAlreadyCheckedIn
		}
		return nil, err
	}

	metrics.ObserveAttendance(metrics.EventCheckIn, within)
	log.Printf("🟢 Check-in: user=%s date=%s distance=%.1fm within=%t", userID, date, distance, within)

	return &AttendanceResult{
		Distance:     distance,
		WithinRadius: within,
		Record:       record.ToResponse(),
	}, nil
}

// CheckOut records today's check-out
func (s *AttendanceService) CheckOut(ctx context.Context, userID string, coord domain.Coordinate) (*AttendanceResult, error) {
	distance, within, err := s.evaluate(ctx, coord)
	if err != nil {
		return nil, err
	}

	now := s.now()
	date := domain.DateKey(now, s.location)

	record, err := s.attendanceRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotCheckedIn
		}
		return nil, err
	}
	if !record.CheckIn.Occurred() {
		return nil, domain.ErrNotCheckedIn
	}
	if record.CheckOut.Occurred() {
		return nil, domain.ErrAlreadyCheckedOut
	}

	event := models.AttendanceEvent{
		Time:         &now,
		Lat:          coord.Lat,
		Lng:          coord.Lng,
		WithinRadius: within,
	}

	ok, err := s.attendanceRepo.SetCheckOut(ctx, record.ID, event)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrAlreadyCheckedOut
	}
	record.CheckOut = event

	metrics.ObserveAttendance(metrics.EventCheckOut, within)
	log.Printf("🔴 Check-out: user=%s date=%s distance=%.1fm within=%t", userID, date, distance, within)

	return &AttendanceResult{
		Distance:     distance,
		WithinRadius: within,
		Record:       record.ToResponse(),
	}, nil
}

// History lists a user's own records, newest date first. From and To are
// inclusive YYYY-MM-DD bounds.
func (s *AttendanceService) History(ctx context.Context, userID string, query *HistoryQuery) (*pagination.Page[*models.AttendanceResponse], error) {
	if query.From != "" && !domain.ValidDateKey(query.From) {
		return nil, domain.ErrInvalidDate
	}
	if query.To != "" && !domain.ValidDateKey(query.To) {
		return nil, domain.ErrInvalidDate
	}

	params := pagination.New(query.Page, query.Limit, pagination.DefaultLimit)
	filter := repositories.AttendanceFilter{
		UserID: userID,
		From:   query.From,
		To:     query.To,
	}

	records, total, err := s.attendanceRepo.List(ctx, filter, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	items := make([]*models.AttendanceResponse, len(records))
	for i, record := range records {
		resp := record.ToResponse()
		resp.User = nil
		items[i] = resp
	}

	return pagination.NewPage(items, params, total), nil
}

// evaluate loads the office location and measures coord against it
func (s *AttendanceService) evaluate(ctx context.Context, coord domain.Coordinate) (float64, bool, error) {
	office, err := s.officeRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, domain.ErrOfficeLocationNotSet
		}
		return 0, false, err
	}

	if !geo.ValidCoordinate(coord.Lat, coord.Lng) {
		return 0, false, domain.ErrInvalidCoordinates
	}

	distance := geo.Distance(office.Latitude, office.Longitude, coord.Lat, coord.Lng)
	return distance, geo.WithinRadius(distance, office.Radius), nil
}
