package models

import "time"

// SystemSettings is a singleton row of registry-wide policy toggles.
type SystemSettings struct {
	ID uint `gorm:"primaryKey"`

	// AllowPastDates controls whether a letter may carry a letter date
	// earlier than today. When false, past dates are clamped to today on
	// create and update. Future dates are always rejected.
	AllowPastDates bool `gorm:"default:false;not null"`

	UpdatedAt time.Time
}

func (SystemSettings) TableName() string {
	return "system_settings"
}
