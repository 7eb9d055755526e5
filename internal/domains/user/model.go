package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleTenant   = "tenant"
	RoleLandlord = "landlord"
	RoleAdmin    = "admin"
	RoleSupport  = "support"
)

// ValidRoles lists every role a user can be assigned.
var ValidRoles = []string{RoleTenant, RoleLandlord, RoleAdmin, RoleSupport}

// User is the persisted account record. Credential and token fields are
// never serialized; handlers return UserDTO instead.
type User struct {
	ID                       uuid.UUID  `json:"id" db:"id"`
	Name                     string     `json:"name" db:"name"`
	Email                    string     `json:"email" db:"email"`
	PasswordHash             string     `json:"-" db:"password_hash"`
	Role                     string     `json:"role" db:"role"`
	Phone                    *string    `json:"phone,omitempty" db:"phone"`
	Avatar                   *string    `json:"avatar,omitempty" db:"avatar"`
	IsActive                 bool       `json:"isActive" db:"is_active"`
	IsEmailVerified          bool       `json:"isEmailVerified" db:"is_email_verified"`
	EmailVerificationToken   *string    `json:"-" db:"email_verification_token"`
	EmailVerificationExpires *time.Time `json:"-" db:"email_verification_expires"`
	PasswordResetToken       *string    `json:"-" db:"password_reset_token"`
	PasswordResetExpires     *time.Time `json:"-" db:"password_reset_expires"`
	RefreshToken             *string    `json:"-" db:"refresh_token"`
	LastLoginAt              *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt                time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt                time.Time  `json:"updatedAt" db:"updated_at"`
}

// ToDTO strips credential material for API responses.
func (u *User) ToDTO() *UserDTO {
	return &UserDTO{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.Role,
		Phone:           u.Phone,
		Avatar:          u.Avatar,
		IsActive:        u.IsActive,
		IsEmailVerified: u.IsEmailVerified,
		LastLoginAt:     u.LastLoginAt,
		CreatedAt:       u.CreatedAt,
	}
}

func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
