package models

import "gorm.io/gorm"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
	UserDeleted  UserStatus = "deleted"
)

func (s UserStatus) IsValid() bool {
	switch s {
	case UserActive, UserInactive, UserDeleted:
		return true
	default:
		return false
	}
}

type User struct {
	gorm.Model
	Username     string     `gorm:"type:varchar(100);uniqueIndex;not null"`
	FullName     string     `gorm:"type:varchar(200)"`
	Position     string     `gorm:"type:varchar(150)"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	Role         Role       `gorm:"type:varchar(20);default:'user';not null;index"`
	Status       UserStatus `gorm:"type:varchar(20);default:'active';not null;index"`

	// MustChangePassword forces a password change on the next login,
	// set when an admin creates or resets an account.
	MustChangePassword bool `gorm:"default:false"`

	DepartmentID *uint       `gorm:"index"`
	Department   *Department `gorm:"foreignKey:DepartmentID"`
}

func (User) TableName() string {
	return "users"
}

// --- Helper Methods ---

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// IsActive reports whether the account may log in and create letters.
func (u *User) IsActive() bool { return u.Status == UserActive }
