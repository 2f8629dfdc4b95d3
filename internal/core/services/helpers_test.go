package services

import (
	"context"
	"testing"
	"time"

	"hrm-location/internal/adapters/persistence/models"
	"hrm-location/internal/adapters/persistence/repositories"
	"hrm-location/internal/config"
	"hrm-location/internal/testutil"

	"gorm.io/gorm"
)

// Bangalore office used across tests
const (
	officeLat    = 12.9716
	officeLng    = 77.5946
	officeRadius = 100.0
)

type testEnv struct {
	db             *gorm.DB
	cfg            *config.Config
	userRepo       repositories.UserRepository
	officeRepo     repositories.OfficeLocationRepository
	attendanceRepo repositories.AttendanceRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewDB(t)
	return &testEnv{
		db:             db,
		cfg:            testutil.Config(),
		userRepo:       repositories.NewUserRepository(db),
		officeRepo:     repositories.NewOfficeLocationRepository(db),
		attendanceRepo: repositories.NewAttendanceRepository(db),
	}
}

func (e *testEnv) authService() *AuthService {
	return NewAuthService(e.userRepo, e.cfg)
}

func (e *testEnv) attendanceService(now time.Time) *AttendanceService {
	return NewAttendanceService(e.attendanceRepo, e.officeRepo, e.cfg).WithClock(fixedClock(now))
}

func (e *testEnv) dashboardService(now time.Time) *DashboardService {
	return NewDashboardService(e.attendanceRepo, e.userRepo, e.cfg).WithClock(fixedClock(now))
}

func (e *testEnv) employeeService() *EmployeeService {
	return NewEmployeeService(e.userRepo, e.cfg)
}

func (e *testEnv) setOffice(t *testing.T) {
	t.Helper()
	lat, lng, radius := officeLat, officeLng, officeRadius
	_, err := NewOfficeService(e.officeRepo).Set(context.Background(), "", &SetOfficeLocationInput{
		Latitude:  &lat,
		Longitude: &lng,
		Radius:    &radius,
	})
	if err != nil {
		t.Fatalf("set office: %v", err)
	}
}

func (e *testEnv) user(t *testing.T, email, role string) *models.User {
	t.Helper()
	return testutil.CreateUser(t, e.db, email, "secret123", role)
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func ptr[T any](v T) *T {
	return &v
}
