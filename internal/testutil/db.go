// Package testutil provides an in-memory database wired exactly like the
// production one, for package tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"hrm-location/internal/adapters/persistence/models"
	"hrm-location/internal/config"
	"hrm-location/internal/pkg/password"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a fresh migrated in-memory SQLite database
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), config.GormConfig(logger.Default.LogMode(logger.Silent)))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	// one connection serializes statements; sqlite has a single writer anyway
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// CreateUser inserts a user with the given plaintext password
func CreateUser(t testing.TB, db *gorm.DB, email, plain, role string) *models.User {
	t.Helper()

	hash, err := password.HashWithCost(plain, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := &models.User{
		Name:     strings.Split(email, "@")[0],
		Email:    strings.ToLower(email),
		Password: hash,
		Role:     role,
	}
	if err := db.WithContext(context.Background()).Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

// Config returns a config suitable for tests (UTC calendar, cheap bcrypt)
func Config() *config.Config {
	return &config.Config{
		AppMode: "dev",
		Port:    "0",
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
		Security: config.SecurityConfig{SaltRounds: bcrypt.MinCost},
		Attendance: config.AttendanceConfig{
			Timezone:   "UTC",
			Location:   time.UTC,
			LateCutoff: "09:15",
			LateHour:   9,
			LateMinute: 15,
		},
	}
}
