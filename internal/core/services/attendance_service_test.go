package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hrm-location/internal/adapters/persistence/models"
	"hrm-location/internal/core/domain"
)

var morning = time.Date(2024, 3, 5, 8, 30, 0, 0, time.UTC)

func TestCheckInGeofence(t *testing.T) {
	env := newTestEnv(t)
	env.setOffice(t)
	svc := env.attendanceService(morning)
	ctx := context.Background()

	tests := []struct {
		name       string
		email      string
		coord      domain.Coordinate
		wantWithin bool
		minDist    float64
		maxDist    float64
	}{
		{"at the office", "a@example.com", domain.Coordinate{Lat: officeLat, Lng: officeLng}, true, 0, 0},
		{"a kilometre away", "b@example.com", domain.Coordinate{Lat: 12.9800, Lng: 77.6000}, false, 1000, 1200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := env.user(t, tt.email, "employee")

			result, err := svc.CheckIn(ctx, user.ID, tt.coord)
			if err != nil {
				t.Fatalf("CheckIn() error = %v", err)
			}
			if result.WithinRadius != tt.wantWithin {
				t.Fatalf("WithinRadius = %t, want %t", result.WithinRadius, tt.wantWithin)
			}
			if result.Distance < tt.minDist || result.Distance > tt.maxDist {
				t.Fatalf("Distance = %f, want in [%f, %f]", result.Distance, tt.minDist, tt.maxDist)
			}

			// recorded either way
			record, err := env.attendanceRepo.GetByUserAndDate(ctx, user.ID, "2024-03-05")
			if err != nil {
				t.Fatalf("record not stored: %v", err)
			}
			if !record.CheckIn.Occurred() || record.CheckIn.WithinRadius != tt.wantWithin {
				t.Fatalf("stored check-in = %+v", record.CheckIn)
			}
		})
	}
}

func TestCheckInWithoutOffice(t *testing.T) {
	env := newTestEnv(t)
	svc := env.attendanceService(morning)
	user := env.user(t, "a@example.com", "employee")

	for _, coord := range []domain.Coordinate{
		{Lat: officeLat, Lng: officeLng},
		{Lat: 200, Lng: -500},
	} {
		if _, err := svc.CheckIn(context.Background(), user.ID, coord); !errors.Is(err, domain.ErrOfficeLocationNotSet) {
			t.Fatalf("CheckIn(%v) error = %v, want ErrOfficeLocationNotSet", coord, err)
		}
		if _, err := svc.CheckOut(context.Background(), user.ID, coord); !errors.Is(err, domain.ErrOfficeLocationNotSet) {
			t.Fatalf("CheckOut(%v) error = %v, want ErrOfficeLocationNotSet", coord, err)
		}
	}
}

func TestCheckInInvalidCoordinates(t *testing.T) {
	env := newTestEnv(t)
	env.setOffice(t)
	svc := env.attendanceService(morning)
	user := env.user(t, "a@example.com", "employee")

	_, err := svc.CheckIn(context.Background(), user.ID, domain.Coordinate{Lat: 91, Lng: 0})
	if !errors.Is(err, domain.ErrInvalidCoordinates) {
		t.Fatalf("CheckIn() error = %v, want ErrInvalidCoordinates", err)
	}
}

func TestAttendanceStateMachine(t *testing.T) {
	env := newTestEnv(t)
	env.setOffice(t)
	svc := env.attendanceService(morning)
	ctx := context.Background()
	user := env.user(t, "a@example.com", "employee")
	here := domain.Coordinate{Lat: officeLat, Lng: officeLng}

	if _, err := svc.CheckOut(ctx, user.ID, here); !errors.Is(err, domain.ErrNotCheckedIn) {
		t.Fatalf("checkout before check-in error = %v, want ErrNotCheckedIn", err)
	}

	if _, err := svc.CheckIn(ctx, user.ID, here); err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}
	if _, err := svc.CheckIn(ctx, user.ID, here); !errors.Is(err, domain.ErrAlreadyCheckedIn) {
		t.Fatalf("second check-in error = %v, want ErrAlreadyCheckedIn", err)
	}

	svc.WithClock(fixedClock(morning.Add(9 * time.Hour)))
	result, err := svc.CheckOut(ctx, user.ID, here)
	if err != nil {
		t.Fatalf("CheckOut() error = %v", err)
	}
	if result.Record.CheckIn == nil || result.Record.CheckOut == nil {
		t.Fatalf("record = %+v, want both events", result.Record)
	}
	if _, err := svc.CheckOut(ctx, user.ID, here); !errors.Is(err, domain.ErrAlreadyCheckedOut) {
		t.Fatalf("second checkout error = %v, want ErrAlreadyCheckedOut", err)
	}

	// a new day starts a new record
	svc.WithClock(fixedClock(morning.Add(24 * time.Hour)))
	result, err = svc.CheckIn(ctx, user.ID, here)
	if err != nil {
		t.Fatalf("next day CheckIn() error = %v", err)
	}
	if result.Record.Date != "2024-03-06" {
		t.Fatalf("next day date = %q", result.Record.Date)
	}
}

func TestConcurrentCheckInSingleRecord(t *testing.T) {
	env := newTestEnv(t)
	env.setOffice(t)
	svc := env.attendanceService(morning)
	ctx := context.Background()
	user := env.user(t, "a@example.com", "employee")

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CheckIn(ctx, user.ID, domain.Coordinate{Lat: officeLat, Lng: officeLng})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrAlreadyCheckedIn):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("successful check-ins = %d, want 1", successes)
	}

	var count int64
	env.db.Model(&models.Attendance{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Fatalf("records = %d, want 1", count)
	}
}

func TestCalendarDayUsesConfiguredZone(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.Attendance.Location = time.FixedZone("IST", 5*3600+1800)
	env.setOffice(t)
	ctx := context.Background()
	user := env.user(t, "a@example.com", "employee")

	// 20:00 UTC is already the next morning in IST
	svc := env.attendanceService(time.Date(2024, 3, 5, 20, 0, 0, 0, time.UTC))
	if got := svc.Today(); got != "2024-03-06" {
		t.Fatalf("Today() = %q, want 2024-03-06", got)
	}

	result, err := svc.CheckIn(ctx, user.ID, domain.Coordinate{Lat: officeLat, Lng: officeLng})
	if err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}
	if result.Record.Date != "2024-03-06" {
		t.Fatalf("record date = %q, want 2024-03-06", result.Record.Date)
	}
}

func TestHistory(t *testing.T) {
	env := newTestEnv(t)
	env.setOffice(t)
	ctx := context.Background()
	user := env.user(t, "a@example.com", "employee")
	other := env.user(t, "b@example.com", "employee")
	here := domain.Coordinate{Lat: officeLat, Lng: officeLng}

	svc := env.attendanceService(morning)
	for day := 0; day < 5; day++ {
		svc.WithClock(fixedClock(morning.AddDate(0, 0, day)))
		if _, err := svc.CheckIn(ctx, user.ID, here); err != nil {
			t.Fatalf("CheckIn(day %d) error = %v", day, err)
		}
	}
	if _, err := svc.CheckIn(ctx, other.ID, here); err != nil {
		t.Fatalf("CheckIn(other) error = %v", err)
	}

	page, err := svc.History(ctx, user.ID, &HistoryQuery{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if page.Total != 5 || len(page.Items) != 2 {
		t.Fatalf("page = total %d items %d, want 5/2", page.Total, len(page.Items))
	}
	if page.Items[0].Date != "2024-03-09" || page.Items[1].Date != "2024-03-08" {
		t.Fatalf("order = %s, %s, want newest first", page.Items[0].Date, page.Items[1].Date)
	}

	page, err = svc.History(ctx, user.ID, &HistoryQuery{From: "2024-03-06", To: "2024-03-07"})
	if err != nil {
		t.Fatalf("History(range) error = %v", err)
	}
	if page.Total != 2 || page.Limit != 10 || page.Page != 1 {
		t.Fatalf("range page = %+v", page)
	}

	if _, err := svc.History(ctx, user.ID, &HistoryQuery{From: "03/06/2024"}); !errors.Is(err, domain.ErrInvalidDate) {
		t.Fatalf("bad from error = %v, want ErrInvalidDate", err)
	}
}
