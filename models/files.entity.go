package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FileKind string

const (
	// FilePrimary is the letter document itself; a letter has at most one.
	FilePrimary FileKind = "PRIMARY"
	// FileAttachment is a supplementary file; a letter may have several.
	FileAttachment FileKind = "ATTACHMENT"
)

// File records metadata of an object stored in S3; the engine never reads
// file contents.
type File struct {
	ID         string   `gorm:"type:varchar(36);primaryKey"`
	LetterID   string   `gorm:"type:varchar(36);not null;index"`
	Kind       FileKind `gorm:"type:varchar(20);not null"`
	FileName   string   `gorm:"type:varchar(255)"`
	MimeType   string   `gorm:"type:varchar(100)"`
	Size       int64    `gorm:"default:0"`
	StorageKey string   `gorm:"type:varchar(255);not null"`
	CreatedAt  time.Time
}

func (File) TableName() string {
	return "files"
}

func (f *File) BeforeCreate(*gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
