package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IndexStatus string

const (
	IndexActive   IndexStatus = "active"
	IndexArchived IndexStatus = "archived"
	IndexDeleted  IndexStatus = "deleted"
)

func (s IndexStatus) IsValid() bool {
	switch s {
	case IndexActive, IndexArchived, IndexDeleted:
		return true
	default:
		return false
	}
}

// Index is a classification code (e.g. "01-02") prefixed onto the year
// sequence to form a full letter number.
type Index struct {
	ID        string      `gorm:"type:varchar(36);primaryKey"`
	Code      string      `gorm:"type:varchar(50);uniqueIndex;not null"`
	Name      string      `gorm:"type:varchar(255);not null"`
	Status    IndexStatus `gorm:"type:varchar(20);default:'active';not null;index"`
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Index) TableName() string {
	return "indices"
}

func (i *Index) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
