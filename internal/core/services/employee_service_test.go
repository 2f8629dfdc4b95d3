package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"hrm-location/internal/core/domain"
	"hrm-location/internal/pkg/password"
)

func TestEmployeeCreate(t *testing.T) {
	env := newTestEnv(t)
	svc := env.employeeService()
	ctx := context.Background()
	admin := env.user(t, "admin@example.com", "admin")

	doj := time.Date(2023, 1, 9, 0, 0, 0, 0, time.UTC)
	user, err := svc.Create(ctx, admin.ID, &CreateEmployeeInput{
		Name:          "Ravi",
		Email:         "Ravi@Example.com",
		Password:      "secret123",
		Department:    "Engineering",
		DateOfJoining: &doj,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if user.Role != string(domain.RoleEmployee) {
		t.Fatalf("role = %q, want employee", user.Role)
	}
	if user.CreatedBy == nil || *user.CreatedBy != admin.ID {
		t.Fatalf("createdBy = %v, want %s", user.CreatedBy, admin.ID)
	}

	if _, err := svc.Create(ctx, admin.ID, &CreateEmployeeInput{Name: "Dup", Email: "ravi@example.com", Password: "secret123"}); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("duplicate error = %v, want ErrDuplicateEmail", err)
	}
	if _, err := svc.Create(ctx, admin.ID, &CreateEmployeeInput{Name: "Weak", Email: "weak@example.com", Password: "123"}); !errors.Is(err, domain.ErrWeakPassword) {
		t.Fatalf("weak password error = %v, want ErrWeakPassword", err)
	}
}

func TestEmployeeList(t *testing.T) {
	env := newTestEnv(t)
	svc := env.employeeService()
	ctx := context.Background()
	admin := env.user(t, "admin@example.com", "admin")

	for _, in := range []CreateEmployeeInput{
		{Name: "Anita Rao", Email: "anita@example.com", Password: "secret123", Phone: "98450", Department: "Engineering"},
		{Name: "Bala", Email: "bala@example.com", Password: "secret123", Department: "Engineering"},
		{Name: "Chitra", Email: "chitra@example.com", Password: "secret123", Department: "Sales"},
	} {
		in := in
		if _, err := svc.Create(ctx, admin.ID, &in); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	tests := []struct {
		name  string
		input ListEmployeesInput
		want  int64
	}{
		{"employees only", ListEmployeesInput{}, 3},
		{"name case-insensitive", ListEmployeesInput{Query: "ANITA"}, 1},
		{"phone", ListEmployeesInput{Query: "9845"}, 1},
		{"department", ListEmployeesInput{Department: "Engineering"}, 2},
		{"query and department", ListEmployeesInput{Query: "chitra", Department: "Engineering"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.List(ctx, &tt.input)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if page.Total != tt.want || int64(len(page.Items)) != tt.want {
				t.Fatalf("total = %d items = %d, want %d", page.Total, len(page.Items), tt.want)
			}
		})
	}

	page, err := svc.List(ctx, &ListEmployeesInput{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("List(page 2) error = %v", err)
	}
	if page.Total != 3 || len(page.Items) != 1 || page.Page != 2 {
		t.Fatalf("page 2 = %+v", page)
	}
}

func TestEmployeeListScopedToCreator(t *testing.T) {
	env := newTestEnv(t)
	svc := env.employeeService()
	ctx := context.Background()
	first := env.user(t, "first@example.com", "admin")
	second := env.user(t, "second@example.com", "admin")
	env.user(t, "self@example.com", "employee")

	for _, c := range []struct{ owner, email string }{
		{first.ID, "a@example.com"},
		{first.ID, "b@example.com"},
		{second.ID, "c@example.com"},
	} {
		if _, err := svc.Create(ctx, c.owner, &CreateEmployeeInput{Name: c.email, Email: c.email, Password: "secret123"}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	tests := []struct {
		name      string
		createdBy string
		want      int64
	}{
		{"first admin", first.ID, 2},
		{"second admin", second.ID, 1},
		{"unscoped", "", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.List(ctx, &ListEmployeesInput{CreatedBy: tt.createdBy})
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if page.Total != tt.want {
				t.Fatalf("total = %d, want %d", page.Total, tt.want)
			}
			for _, item := range page.Items {
				if tt.createdBy != "" && (item.CreatedBy == nil || *item.CreatedBy != tt.createdBy) {
					t.Fatalf("item %s created by %v", item.Email, item.CreatedBy)
				}
			}
		})
	}
}

func TestEmployeeUpdateAllowlist(t *testing.T) {
	env := newTestEnv(t)
	svc := env.employeeService()
	ctx := context.Background()
	user := env.user(t, "emp@example.com", "employee")
	env.user(t, "taken@example.com", "employee")

	updated, err := svc.Update(ctx, user.ID, &UpdateEmployeeInput{
		Name:        ptr("New Name"),
		Email:       ptr("Renamed@Example.com"),
		Designation: ptr("Engineer"),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "New Name" || updated.Email != "renamed@example.com" || updated.Designation != "Engineer" {
		t.Fatalf("Update() = %+v", updated)
	}

	stored, _ := env.userRepo.GetByID(ctx, user.ID)
	if !password.Verify("secret123", stored.Password) {
		t.Fatalf("password changed by profile update")
	}
	if stored.Role != string(domain.RoleEmployee) {
		t.Fatalf("role changed by profile update")
	}

	if _, err := svc.Update(ctx, user.ID, &UpdateEmployeeInput{Email: ptr("taken@example.com")}); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("duplicate email error = %v, want ErrDuplicateEmail", err)
	}
	if _, err := svc.Update(ctx, "missing", &UpdateEmployeeInput{Name: ptr("x")}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("missing user error = %v, want ErrUserNotFound", err)
	}
}

func TestEmployeeDelete(t *testing.T) {
	env := newTestEnv(t)
	env.setOffice(t)
	svc := env.employeeService()
	ctx := context.Background()
	admin := env.user(t, "admin@example.com", "admin")
	user := env.user(t, "emp@example.com", "employee")

	if _, err := env.attendanceService(morning).CheckIn(ctx, user.ID, domain.Coordinate{Lat: officeLat, Lng: officeLng}); err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}

	if err := svc.Delete(ctx, admin.ID, admin.ID); !errors.Is(err, domain.ErrCannotDeleteSelf) {
		t.Fatalf("self delete error = %v, want ErrCannotDeleteSelf", err)
	}
	if err := svc.Delete(ctx, user.ID, admin.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.Get(ctx, user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("Get() after delete error = %v, want ErrUserNotFound", err)
	}
	if err := svc.Delete(ctx, user.ID, admin.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("second Delete() error = %v, want ErrUserNotFound", err)
	}

	// attendance history outlives the user
	if _, err := env.attendanceRepo.GetByUserAndDate(ctx, user.ID, "2024-03-05"); err != nil {
		t.Fatalf("attendance removed with user: %v", err)
	}
}
