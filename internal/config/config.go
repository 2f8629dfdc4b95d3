package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode    string
	Port       string
	Database   DatabaseConfig
	JWT        JWTConfig
	Security   SecurityConfig
	Attendance AttendanceConfig
	Seed       SeedConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string // mysql or postgres
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string // postgres only
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// SecurityConfig holds password hashing configuration
type SecurityConfig struct {
	SaltRounds int
}

// AttendanceConfig holds the calendar-day policy
type AttendanceConfig struct {
	Timezone   string
	Location   *time.Location
	LateCutoff string // HH:MM in Location
	LateHour   int
	LateMinute int
}

// SeedConfig holds the optional bootstrap admin account
type SeedConfig struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	database, err := loadDatabaseConfig(appMode)
	if err != nil {
		return nil, err
	}

	attendance, err := loadAttendanceConfig()
	if err != nil {
		return nil, err
	}

	jwtConfig := loadJWTConfig(appMode)
	if jwtConfig.Secret == jwtConfig.RefreshSecret {
		prefix := modePrefix(appMode)
		return nil, fmt.Errorf("%sJWT_SECRET and %sJWT_REFRESH_SECRET must differ", prefix, prefix)
	}
	if appMode == "prod" && (jwtConfig.Secret == defaultJWTSecret || jwtConfig.RefreshSecret == defaultRefreshSecret) {
		return nil, fmt.Errorf("PROD_JWT_SECRET and PROD_JWT_REFRESH_SECRET must be set in prod mode")
	}

	// Build config based on APP_MODE
	config := &Config{
		AppMode:    appMode,
		Port:       getEnv("PORT", "5000"),
		Database:   database,
		JWT:        jwtConfig,
		Security:   SecurityConfig{SaltRounds: getEnvInt("SALT_ROUNDS", 10)},
		Attendance: attendance,
		Seed: SeedConfig{
			AdminName:     getEnv("ADMIN_NAME", "Administrator"),
			AdminEmail:    getEnv("ADMIN_EMAIL", ""),
			AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		},
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s, TZ: %s]", appMode, attendance.Location)
	return config, nil
}

const (
	defaultJWTSecret     = "default_secret"
	defaultRefreshSecret = "default_refresh_secret"
)

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) (DatabaseConfig, error) {
	prefix := modePrefix(mode)

	driver := strings.ToLower(strings.TrimSpace(getEnv("DB_DRIVER", "mysql")))
	defaultPort := "3306"
	switch driver {
	case "mysql":
	case "postgres":
		defaultPort = "5432"
	default:
		return DatabaseConfig{}, fmt.Errorf("invalid DB_DRIVER: '%s' (must be 'mysql' or 'postgres')", driver)
	}

	return DatabaseConfig{
		Driver:   driver,
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", defaultPort),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "hrm_location"),
		SSLMode:  getEnv(prefix+"DB_SSLMODE", "disable"),
	}, nil
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := modePrefix(mode)

	return JWTConfig{
		Secret:           getEnv(prefix+"JWT_SECRET", defaultJWTSecret),
		RefreshSecret:    getEnv(prefix+"JWT_REFRESH_SECRET", defaultRefreshSecret),
		AccessTokenMins:  getEnvInt("ACCESS_TOKEN_MINUTES", 15),
		RefreshTokenDays: getEnvInt("REFRESH_TOKEN_DAYS", 7),
	}
}

// loadAttendanceConfig resolves the calendar time zone and late cutoff
func loadAttendanceConfig() (AttendanceConfig, error) {
	tz := strings.TrimSpace(getEnv("TIMEZONE", "Local"))
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return AttendanceConfig{}, fmt.Errorf("invalid TIMEZONE '%s': %w", tz, err)
	}

	cutoff := strings.TrimSpace(getEnv("LATE_CUTOFF", "09:15"))
	hour, minute, err := ParseClock(cutoff)
	if err != nil {
		return AttendanceConfig{}, fmt.Errorf("invalid LATE_CUTOFF: %w", err)
	}

	return AttendanceConfig{
		Timezone:   tz,
		Location:   loc,
		LateCutoff: cutoff,
		LateHour:   hour,
		LateMinute: minute,
	}, nil
}

// ParseClock parses an HH:MM wall clock time
func ParseClock(s string) (int, int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("'%s' is not HH:MM", s)
	}
	return t.Hour(), t.Minute(), nil
}

func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable, falling back on parse errors
func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		log.Printf("⚠️ Invalid %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return v
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "http://localhost:3000"
	}
	return origins
}
