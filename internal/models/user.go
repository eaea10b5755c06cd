package models

import (
	"time"

	"refutree/internal/uuid"

	"gorm.io/gorm"
)

// UserRole controls which dashboard sections a user may see. Enforcement is a
// frontend concern; the backend only attributes actions.
type UserRole string

const (
	UserRoleAdmin      UserRole = "admin"
	UserRoleCaseworker UserRole = "caseworker"
	UserRoleVolunteer  UserRole = "volunteer"
)

// User is a staff account. Users live in their own table rather than a
// collection document because login needs an indexed lookup by email.
type User struct {
	ID                  string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
	Email               string         `gorm:"uniqueIndex;not null" json:"email"`
	Password            string         `gorm:"not null" json:"-"`
	FirstName           string         `json:"first_name"`
	LastName            string         `json:"last_name"`
	Role                UserRole       `gorm:"default:caseworker" json:"role"`
	IsActive            bool           `gorm:"default:true" json:"is_active"`
	RefreshTokenHash    string         `gorm:"size:64" json:"-"`
	FailedLoginAttempts int            `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time     `json:"-"`
	LastLoginAt         *time.Time     `json:"last_login_at,omitempty"`
}

// BeforeCreate hook generates a UUIDv7 for new users.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New()
	}
	return nil
}

// DisplayName returns the name used for audit attribution.
func (u *User) DisplayName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}
