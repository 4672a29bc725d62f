package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LetterStatus string

const (
	StatusDraft      LetterStatus = "DRAFT"
	StatusRegistered LetterStatus = "REGISTERED"
)

func (s LetterStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusRegistered:
		return true
	default:
		return false
	}
}

// Letter is an outgoing letter in the registry. While DRAFT it is freely
// editable by its owner; registration assigns LetterNumber and RegisteredAt
// exactly once and locks the record.
type Letter struct {
	ID string `gorm:"type:varchar(36);primaryKey"`

	// LetterDate is the date of the letter's substance in YYYY-MM-DD form,
	// not a system timestamp. Its leading four digits pick the year counter.
	LetterDate string `gorm:"type:varchar(10);not null;index"`

	Recipient           string `gorm:"type:varchar(255)"`
	Subject             string `gorm:"type:varchar(255);index"`
	Content             string `gorm:"type:text"`
	PageCount           int    `gorm:"default:0"`
	AttachmentPageCount int    `gorm:"default:0"`

	Status LetterStatus `gorm:"type:varchar(20);default:'DRAFT';not null;index"`

	// LetterNumber is "<indexCode>/<sequence>", empty until registration.
	LetterNumber string     `gorm:"type:varchar(100);index"`
	RegisteredAt *time.Time `gorm:"index"`

	IndexID *string `gorm:"type:varchar(36);index"`
	Index   *Index  `gorm:"foreignKey:IndexID"`

	UserID uint  `gorm:"index"`
	User   *User `gorm:"foreignKey:UserID"`

	Files []File `gorm:"foreignKey:LetterID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Letter) TableName() string {
	return "letters"
}

func (l *Letter) BeforeCreate(*gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

func (l *Letter) IsRegistered() bool {
	return l.Status == StatusRegistered
}
