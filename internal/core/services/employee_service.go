package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"hrm-location/internal/adapters/persistence/models"
	"hrm-location/internal/adapters/persistence/repositories"
	"hrm-location/internal/config"
	"hrm-location/internal/core/domain"
	"hrm-location/internal/pkg/pagination"
	"hrm-location/internal/pkg/password"

	"gorm.io/gorm"
)

// EmployeeService handles admin-side employee management
type EmployeeService struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(userRepo repositories.UserRepository, cfg *config.Config) *EmployeeService {
	return &EmployeeService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// CreateEmployeeInput represents create employee input
type CreateEmployeeInput struct {
	Name          string
	Email         string
	Password      string
	Phone         string
	Designation   string
	Department    string
	DateOfJoining *time.Time
}

// ListEmployeesInput represents list employees input
type ListEmployeesInput struct {
	Page       int
	Limit      int
	Query      string
	Department string
	CreatedBy  string
}

// UpdateEmployeeInput lists the only fields an update may touch.
// Password and role are never updated here.
type UpdateEmployeeInput struct {
	Name          *string
	Email         *string
	Phone         *string
	Designation   *string
	Department    *string
	DateOfJoining *time.Time
}

// Create creates an employee account on behalf of an admin
func (s *EmployeeService) Create(ctx context.Context, adminID string, input *CreateEmployeeInput) (*models.UserResponse, error) {
	if !password.ValidatePassword(input.Password) {
		return nil, domain.ErrWeakPassword
	}

	email := normalizeEmail(input.Email)
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	hashedPassword, err := password.HashWithCost(input.Password, s.cfg.Security.SaltRounds)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:          strings.TrimSpace(input.Name),
		Email:         email,
		Password:      hashedPassword,
		Role:          string(domain.RoleEmployee),
		Phone:         strings.TrimSpace(input.Phone),
		Designation:   strings.TrimSpace(input.Designation),
		Department:    strings.TrimSpace(input.Department),
		DateOfJoining: input.DateOfJoining,
	}
	if adminID != "" {
		user.CreatedBy = &adminID
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, err
	}

	log.Printf("✅ Employee created: %s by %s", user.Email, adminID)
	return user.ToResponse(), nil
}

// List lists employees, newest first, filtered by free text and department.
// A non-empty CreatedBy restricts the listing to that admin's employees.
func (s *EmployeeService) List(ctx context.Context, input *ListEmployeesInput) (*pagination.Page[*models.UserResponse], error) {
	params := pagination.New(input.Page, input.Limit, pagination.DefaultLimit)

	filter := repositories.UserFilter{
		Role:       string(domain.RoleEmployee),
		Query:      strings.TrimSpace(input.Query),
		Department: strings.TrimSpace(input.Department),
		CreatedBy:  input.CreatedBy,
	}

	users, total, err := s.userRepo.List(ctx, filter, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	items := make([]*models.UserResponse, len(users))
	for i, user := range users {
		items[i] = user.ToResponse()
	}

	return pagination.NewPage(items, params, total), nil
}

// Get gets a user by ID
func (s *EmployeeService) Get(ctx context.Context, id string) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// Update applies the allowlisted profile fields
func (s *EmployeeService) Update(ctx context.Context, id string, input *UpdateEmployeeInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	fields := map[string]interface{}{}

	if input.Name != nil {
		fields["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if email != user.Email {
			exists, err := s.userRepo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrDuplicateEmail
			}
			fields["email"] = email
		}
	}
	if input.Phone != nil {
		fields["phone"] = strings.TrimSpace(*input.Phone)
	}
	if input.Designation != nil {
		fields["designation"] = strings.TrimSpace(*input.Designation)
	}
	if input.Department != nil {
		fields["department"] = strings.TrimSpace(*input.Department)
	}
	if input.DateOfJoining != nil {
		fields["date_of_joining"] = *input.DateOfJoining
	}

	if err := s.userRepo.UpdateFields(ctx, id, fields); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEntry):
			return nil, domain.ErrDuplicateEmail
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete hard deletes a user. Attendance history is kept.
func (s *EmployeeService) Delete(ctx context.Context, id, adminID string) error {
	// Prevent admin from deleting self
	if id == adminID {
		return domain.ErrCannotDeleteSelf
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	log.Printf("🗑️ User deleted: %s by %s", id, adminID)
	return nil
}
