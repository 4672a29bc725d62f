package models

import "time"

type DepartmentStatus string

const (
	DepartmentActive   DepartmentStatus = "active"
	DepartmentInactive DepartmentStatus = "inactive"
	DepartmentDeleted  DepartmentStatus = "deleted"
)

func (s DepartmentStatus) IsValid() bool {
	switch s {
	case DepartmentActive, DepartmentInactive, DepartmentDeleted:
		return true
	default:
		return false
	}
}

// Department groups users. Deletion is a status flip so existing user rows
// keep a valid reference; only the permanent delete removes the row.
type Department struct {
	ID          uint             `gorm:"primaryKey"`
	Name        string           `gorm:"type:varchar(200);uniqueIndex;not null"`
	Description string           `gorm:"type:text"`
	Status      DepartmentStatus `gorm:"type:varchar(20);default:'active';not null"`
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Department) TableName() string {
	return "departments"
}
