package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"testing"
	"time"

	"hrm-location/internal/core/domain"
)

func TestDailySummary(t *testing.T) {
	env := newTestEnv(t)
	env.setOffice(t)
	ctx := context.Background()
	here := domain.Coordinate{Lat: officeLat, Lng: officeLng}

	var employees []string
	for i := 0; i < 5; i++ {
		employees = append(employees, env.user(t, fmt.Sprintf("emp%d@example.com", i), "employee").ID)
	}
	admin := env.user(t, "admin@example.com", "admin")

	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	checkIns := []struct {
		userID string
		at     time.Time
	}{
		{employees[0], day.Add(9 * time.Hour)},
		{employees[1], day.Add(9*time.Hour + 15*time.Minute)}, // exactly on the cutoff
		{employees[2], day.Add(9*time.Hour + 40*time.Minute)}, // late
		{admin.ID, day.Add(11 * time.Hour)},                   // admins are not counted
	}

	attendance := env.attendanceService(day)
	for _, ci := range checkIns {
		attendance.WithClock(fixedClock(ci.at))
		if _, err := attendance.CheckIn(ctx, ci.userID, here); err != nil {
			t.Fatalf("CheckIn() error = %v", err)
		}
	}

	svc := env.dashboardService(day.Add(18 * time.Hour))
	summary, err := svc.DailySummary(ctx, "", "")
	if err != nil {
		t.Fatalf("DailySummary() error = %v", err)
	}

	want := DailySummary{
		Date:           "2024-03-05",
		TotalEmployees: 5,
		Present:        3,
		Absent:         2,
		LateCount:      1,
		LateCutoff:     "09:15",
	}
	if *summary != want {
		t.Fatalf("DailySummary() = %+v, want %+v", *summary, want)
	}

	other, err := svc.DailySummary(ctx, "", "2024-03-04")
	if err != nil {
		t.Fatalf("DailySummary(other day) error = %v", err)
	}
	if other.Present != 0 || other.Absent != 5 {
		t.Fatalf("other day = %+v", other)
	}

	if _, err := svc.DailySummary(ctx, "", "yesterday"); !errors.Is(err, domain.ErrInvalidDate) {
		t.Fatalf("bad date error = %v, want ErrInvalidDate", err)
	}
}

func TestDailySummaryNoEmployees(t *testing.T) {
	env := newTestEnv(t)
	svc := env.dashboardService(morning)

	summary, err := svc.DailySummary(context.Background(), "", "2024-03-05")
	if err != nil {
		t.Fatalf("DailySummary() error = %v", err)
	}
	if summary.TotalEmployees != 0 || summary.Present != 0 || summary.Absent != 0 {
		t.Fatalf("DailySummary() = %+v", summary)
	}
}

func TestListAttendanceFilters(t *testing.T) {
	env := newTestEnv(t)
	env.setOffice(t)
	ctx := context.Background()
	here := domain.Coordinate{Lat: officeLat, Lng: officeLng}

	eng := env.user(t, "eng@example.com", "employee")
	ops := env.user(t, "ops@example.com", "employee")
	env.db.Model(eng).Update("department", "Engineering")
	env.db.Model(ops).Update("department", "Operations")

	attendance := env.attendanceService(morning)
	for _, day := range []int{0, 1} {
		attendance.WithClock(fixedClock(morning.AddDate(0, 0, day)))
		for _, id := range []string{eng.ID, ops.ID} {
			if _, err := attendance.CheckIn(ctx, id, here); err != nil {
				t.Fatalf("CheckIn() error = %v", err)
			}
		}
	}

	svc := env.dashboardService(morning)

	tests := []struct {
		name  string
		query AdminAttendanceQuery
		want  int64
	}{
		{"all", AdminAttendanceQuery{}, 4},
		{"by date", AdminAttendanceQuery{Date: "2024-03-05"}, 2},
		{"by employee", AdminAttendanceQuery{Employee: eng.ID}, 2},
		{"by department", AdminAttendanceQuery{Department: "Operations"}, 2},
		{"department and date", AdminAttendanceQuery{Department: "Operations", Date: "2024-03-06"}, 1},
		{"unknown department", AdminAttendanceQuery{Department: "Finance"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.ListAttendance(ctx, &tt.query)
			if err != nil {
				t.Fatalf("ListAttendance() error = %v", err)
			}
			if page.Total != tt.want || int64(len(page.Items)) != tt.want {
				t.Fatalf("total = %d items = %d, want %d", page.Total, len(page.Items), tt.want)
			}
			for _, item := range page.Items {
				if item.User == nil || item.User.Email == "" {
					t.Fatalf("item %s missing user summary", item.ID)
				}
			}
		})
	}

	if _, err := svc.ListAttendance(ctx, &AdminAttendanceQuery{Date: "5/3/2024"}); !errors.Is(err, domain.ErrInvalidDate) {
		t.Fatalf("bad date error = %v, want ErrInvalidDate", err)
	}
}

func TestExportAttendanceCSVIgnoresPaging(t *testing.T) {
	env := newTestEnv(t)
	env.setOffice(t)
	ctx := context.Background()

	attendance := env.attendanceService(morning)
	const n = AdminAttendanceDefaultLimit + 5
	for i := 0; i < n; i++ {
		user := env.user(t, fmt.Sprintf("emp%d@example.com", i), "employee")
		if _, err := attendance.CheckIn(ctx, user.ID, domain.Coordinate{Lat: officeLat, Lng: officeLng}); err != nil {
			t.Fatalf("CheckIn() error = %v", err)
		}
	}

	svc := env.dashboardService(morning)
	filename, data, err := svc.ExportAttendanceCSV(ctx, &AdminAttendanceQuery{Page: 1, Limit: 5, Date: "2024-03-05"})
	if err != nil {
		t.Fatalf("ExportAttendanceCSV() error = %v", err)
	}
	if filename != "attendance-2024-03-05.csv" {
		t.Fatalf("filename = %q", filename)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != n+1 {
		t.Fatalf("rows = %d, want %d (header + every record)", len(rows), n+1)
	}
	if rows[0][0] != "date" || rows[0][4] != "checkInTime" || len(rows[0]) != 12 {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[1][7] != "true" || rows[1][8] != "" {
		t.Fatalf("row = %v, want in-radius check-in and no checkout", rows[1])
	}

	filename, _, err = svc.ExportAttendanceCSV(ctx, &AdminAttendanceQuery{})
	if err != nil || filename != "attendance-2024-03-05.csv" {
		t.Fatalf("default filename = %q, %v", filename, err)
	}
}

func TestDailySummaryScopedToAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.setOffice(t)
	ctx := context.Background()
	here := domain.Coordinate{Lat: officeLat, Lng: officeLng}

	first := env.user(t, "first@example.com", "admin")
	second := env.user(t, "second@example.com", "admin")
	employees := env.employeeService()

	var mine []string
	for i, owner := range []string{first.ID, first.ID, second.ID} {
		emp, err := employees.Create(ctx, owner, &CreateEmployeeInput{
			Name:     fmt.Sprintf("Emp %d", i),
			Email:    fmt.Sprintf("emp%d@example.com", i),
			Password: "secret123",
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if owner == first.ID {
			mine = append(mine, emp.ID)
		}
	}

	if _, err := env.attendanceService(morning).CheckIn(ctx, mine[0], here); err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}

	svc := env.dashboardService(morning)
	tests := []struct {
		name    string
		adminID string
		total   int
		present int
	}{
		{"first admin", first.ID, 2, 1},
		{"second admin", second.ID, 1, 0},
		{"everyone", "", 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := svc.DailySummary(ctx, tt.adminID, "2024-03-05")
			if err != nil {
				t.Fatalf("DailySummary() error = %v", err)
			}
			if summary.TotalEmployees != tt.total || summary.Present != tt.present {
				t.Fatalf("DailySummary() = %+v, want total %d present %d", summary, tt.total, tt.present)
			}
		})
	}
}
