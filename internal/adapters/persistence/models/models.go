package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ============================================================
// Users
// ============================================================

// User represents users table
type User struct {
	ID                    string     `gorm:"primaryKey;size:36" json:"id"`
	Name                  string     `gorm:"size:100;not null" json:"name"`
	Email                 string     `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Password              string     `gorm:"size:255;not null" json:"-"`
	Role                  string     `gorm:"size:20;not null;default:'employee';index" json:"role"`
	Phone                 string     `gorm:"size:30" json:"phone,omitempty"`
	Designation           string     `gorm:"size:100" json:"designation,omitempty"`
	Department            string     `gorm:"size:100;index" json:"department,omitempty"`
	DateOfJoining         *time.Time `gorm:"type:date" json:"dateOfJoining,omitempty"`
	RefreshTokenHash      *string    `gorm:"size:64" json:"-"`
	RefreshTokenExpiresAt *time.Time `gorm:"index" json:"-"`
	CreatedBy             *string    `gorm:"size:36;index" json:"createdBy,omitempty"`
	CreatedAt             time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt             time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns an opaque id
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserResponse DTO
type UserResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Role          string     `json:"role"`
	Phone         string     `json:"phone,omitempty"`
	Designation   string     `json:"designation,omitempty"`
	Department    string     `json:"department,omitempty"`
	DateOfJoining *time.Time `json:"dateOfJoining,omitempty"`
	CreatedBy     *string    `json:"createdBy,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		Phone:         u.Phone,
		Designation:   u.Designation,
		Department:    u.Department,
		DateOfJoining: u.DateOfJoining,
		CreatedBy:     u.CreatedBy,
		CreatedAt:     u.CreatedAt,
	}
}

// ============================================================
// Office location (singleton config)
// ============================================================

// OfficeLocationKey is the key of the single office location row
const OfficeLocationKey = "officeLocation"

// OfficeLocation represents office_locations table
type OfficeLocation struct {
	Key       string    `gorm:"column:config_key;primaryKey;size:50" json:"-"`
	Latitude  float64   `gorm:"not null" json:"latitude"`
	Longitude float64   `gorm:"not null" json:"longitude"`
	Radius    float64   `gorm:"not null" json:"radius"`
	Version   int64     `gorm:"not null;default:1" json:"version"`
	UpdatedBy *string   `gorm:"size:36" json:"updatedBy,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (OfficeLocation) TableName() string {
	return "office_locations"
}

// ============================================================
// Attendance
// ============================================================

// AttendanceEvent is one check-in or check-out. Time is nil until the
// event happens.
type AttendanceEvent struct {
	Time         *time.Time
	Lat          float64
	Lng          float64
	WithinRadius bool
}

// Occurred reports whether the event has been recorded
func (e AttendanceEvent) Occurred() bool {
	return e.Time != nil
}

// Attendance represents attendances table. (user_id, date) is unique.
type Attendance struct {
	ID        string          `gorm:"primaryKey;size:36" json:"id"`
	UserID    string          `gorm:"size:36;not null;uniqueIndex:idx_attendance_user_date" json:"userId"`
	Date      string          `gorm:"size:10;not null;uniqueIndex:idx_attendance_user_date;index" json:"date"`
	CheckIn   AttendanceEvent `gorm:"embedded;embeddedPrefix:check_in_" json:"-"`
	CheckOut  AttendanceEvent `gorm:"embedded;embeddedPrefix:check_out_" json:"-"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// BeforeCreate assigns an opaque id
func (a *Attendance) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// EventLocation DTO
type EventLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// EventResponse DTO
type EventResponse struct {
	Time         time.Time     `json:"time"`
	Location     EventLocation `json:"location"`
	WithinRadius bool          `json:"withinRadius"`
}

// AttendanceUserSummary DTO (admin listing)
type AttendanceUserSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Department  string `json:"department,omitempty"`
	Designation string `json:"designation,omitempty"`
}

// AttendanceResponse DTO
type AttendanceResponse struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"userId"`
	User      *AttendanceUserSummary `json:"user,omitempty"`
	Date      string                 `json:"date"`
	CheckIn   *EventResponse         `json:"checkIn,omitempty"`
	CheckOut  *EventResponse         `json:"checkOut,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

func (e AttendanceEvent) toResponse() *EventResponse {
	if !e.Occurred() {
		return nil
	}
	return &EventResponse{
		Time:         *e.Time,
		Location:     EventLocation{Lat: e.Lat, Lng: e.Lng},
		WithinRadius: e.WithinRadius,
	}
}

func (a *Attendance) ToResponse() *AttendanceResponse {
	resp := &AttendanceResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		Date:      a.Date,
		CheckIn:   a.CheckIn.toResponse(),
		CheckOut:  a.CheckOut.toResponse(),
		CreatedAt: a.CreatedAt,
	}

	if a.User != nil {
		resp.User = &AttendanceUserSummary{
			ID:          a.User.ID,
			Name:        a.User.Name,
			Email:       a.User.Email,
			Department:  a.User.Department,
			Designation: a.User.Designation,
		}
	}

	return resp
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&OfficeLocation{},
		&Attendance{},
	)
}
