package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hrm-location/internal/adapters/persistence/models"
	"hrm-location/internal/adapters/persistence/repositories"
	"hrm-location/internal/config"
	"hrm-location/internal/core/domain"
	"hrm-location/internal/pkg/csvexport"
	"hrm-location/internal/pkg/pagination"
)

// AdminAttendanceDefaultLimit is the page size of the admin attendance list
const AdminAttendanceDefaultLimit = 20

// DashboardService handles admin attendance reporting
type DashboardService struct {
	attendanceRepo repositories.AttendanceRepository
	userRepo       repositories.UserRepository
	location       *time.Location
	lateHour       int
	lateMinute     int
	now            Clock
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	attendanceRepo repositories.AttendanceRepository,
	userRepo repositories.UserRepository,
	cfg *config.Config,
) *DashboardService {
	loc := cfg.Attendance.Location
	if loc == nil {
		loc = time.Local
	}
	return &DashboardService{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		location:       loc,
		lateHour:       cfg.Attendance.LateHour,
		lateMinute:     cfg.Attendance.LateMinute,
		now:            time.Now,
	}
}

// WithClock replaces the time source
func (s *DashboardService) WithClock(clock Clock) *DashboardService {
	s.now = clock
	return s
}

// AdminAttendanceQuery represents the admin attendance filters
type AdminAttendanceQuery struct {
	Page       int
	Limit      int
	Employee   string // user id
	Date       string
	Department string
}

// DailySummary represents the attendance counts for one day
type DailySummary struct {
	Date           string `json:"date"`
	TotalEmployees int    `json:"totalEmployees"`
	Present        int    `json:"present"`
	Absent         int    `json:"absent"`
	LateCount      int    `json:"lateCount"`
	LateCutoff     string `json:"lateCutoff"`
}

// ============================================================
// Attendance listing
// ============================================================

// ListAttendance lists records across users, newest date first
func (s *DashboardService) ListAttendance(ctx context.Context, query *AdminAttendanceQuery) (*pagination.Page[*models.AttendanceResponse], error) {
	filter, err := s.filter(query)
	if err != nil {
		return nil, err
	}

	params := pagination.New(query.Page, query.Limit, AdminAttendanceDefaultLimit)
	records, total, err := s.attendanceRepo.List(ctx, filter, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	items := make([]*models.AttendanceResponse, len(records))
	for i, record := range records {
		items[i] = record.ToResponse()
	}

	return pagination.NewPage(items, params, total), nil
}

var csvHeader = []string{
	"date", "user", "email", "department",
	"checkInTime", "checkInLatitude", "checkInLongitude", "checkInWithinRadius",
	"checkOutTime", "checkOutLatitude", "checkOutLongitude", "checkOutWithinRadius",
}

// ExportAttendanceCSV renders every record matching the filters (no paging)
// and returns it with a download filename
func (s *DashboardService) ExportAttendanceCSV(ctx context.Context, query *AdminAttendanceQuery) (string, []byte, error) {
	filter, err := s.filter(query)
	if err != nil {
		return "", nil, err
	}

	records, err := s.attendanceRepo.ListAll(ctx, filter)
	if err != nil {
		return "", nil, err
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		var name, email, department string
		if record.User != nil {
			name, email, department = record.User.Name, record.User.Email, record.User.Department
		}

		row := []string{record.Date, name, email, department}
		row = append(row, s.eventColumns(record.CheckIn)...)
		row = append(row, s.eventColumns(record.CheckOut)...)
		rows = append(rows, row)
	}

	data, err := csvexport.Marshal(csvHeader, rows)
	if err != nil {
		return "", nil, err
	}

	date := query.Date
	if date == "" {
		date = domain.DateKey(s.now(), s.location)
	}
	return fmt.Sprintf("attendance-%s.csv", date), data, nil
}

func (s *DashboardService) eventColumns(e models.AttendanceEvent) []string {
	if !e.Occurred() {
		return []string{"", "", "", ""}
	}
	return []string{
		e.Time.In(s.location).Format(time.RFC3339),
		strconv.FormatFloat(e.Lat, 'f', -1, 64),
		strconv.FormatFloat(e.Lng, 'f', -1, 64),
		strconv.FormatBool(e.WithinRadius),
	}
}

func (s *DashboardService) filter(query *AdminAttendanceQuery) (repositories.AttendanceFilter, error) {
	date := strings.TrimSpace(query.Date)
	if date != "" && !domain.ValidDateKey(date) {
		return repositories.AttendanceFilter{}, domain.ErrInvalidDate
	}
	query.Date = date

	return repositories.AttendanceFilter{
		UserID:     strings.TrimSpace(query.Employee),
		Date:       date,
		Department: strings.TrimSpace(query.Department),
	}, nil
}

// ============================================================
// Daily summary
// ============================================================

// DailySummary counts present, absent and late employees for date
// (default today in the calendar location). When adminID is set only the
// employees that admin created are counted.
func (s *DashboardService) DailySummary(ctx context.Context, adminID, date string) (*DailySummary, error) {
	if date == "" {
		date = domain.DateKey(s.now(), s.location)
	}

	day, err := time.ParseInLocation(domain.DateLayout, date, s.location)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	cutoff := time.Date(day.Year(), day.Month(), day.Day(), s.lateHour, s.lateMinute, 0, 0, s.location)

	employeeIDs, err := s.userRepo.ListIDs(ctx, repositories.UserFilter{
		Role:      string(domain.RoleEmployee),
		CreatedBy: adminID,
	})
	if err != nil {
		return nil, err
	}
	if employeeIDs == nil {
		employeeIDs = []string{}
	}

	records, err := s.attendanceRepo.ListAll(ctx, repositories.AttendanceFilter{
		Date:    date,
		UserIDs: employeeIDs,
	})
	if err != nil {
		return nil, err
	}

	present := make(map[string]struct{}, len(records))
	late := 0
	for _, record := range records {
		present[record.UserID] = struct{}{}
		if record.CheckIn.Occurred() && record.CheckIn.Time.After(cutoff) {
			late++
		}
	}

	return &DailySummary{
		Date:           date,
		TotalEmployees: len(employeeIDs),
		Present:        len(present),
		Absent:         len(employeeIDs) - len(present),
		LateCount:      late,
		LateCutoff:     fmt.Sprintf("%02d:%02d", s.lateHour, s.lateMinute),
	}, nil
}
