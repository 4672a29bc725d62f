package models

import "time"

// YearCounter stores the last issued letter sequence for one calendar year.
// Rows are created lazily on the first registration of that year and never
// deleted; LastSequence only moves forward.
type YearCounter struct {
	Year         int `gorm:"primaryKey;autoIncrement:false"`
	LastSequence int `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (YearCounter) TableName() string {
	return "year_counters"
}
