package config

import (
	"errors"
	"log"
	"strings"

	"hrm-location/internal/adapters/persistence/models"
	"hrm-location/internal/core/domain"
	"hrm-location/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser creates the bootstrap admin from ADMIN_EMAIL/ADMIN_PASSWORD
// when no admin exists yet
func (s *Seeder) seedAdminUser() error {
	seed := s.cfg.Seed
	if seed.AdminEmail == "" || seed.AdminPassword == "" {
		return errors.New("ADMIN_EMAIL/ADMIN_PASSWORD not set")
	}

	// Check if admin already exists
	var count int64
	if err := s.db.Model(&models.User{}).Where("role = ?", string(domain.RoleAdmin)).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := password.HashWithCost(seed.AdminPassword, s.cfg.Security.SaltRounds)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     seed.AdminName,
		Email:    strings.ToLower(strings.TrimSpace(seed.AdminEmail)),
		Password: hashedPassword,
		Role:     string(domain.RoleAdmin),
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}
