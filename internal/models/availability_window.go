package models

import "time"

// AvailabilityWindow is an admin-entered interval on a single date.
// Enabled carries no gorm default so that a false value is persisted as-is.
type AvailabilityWindow struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Date      string    `gorm:"size:10;not null;index" json:"date"`
	StartTime string    `gorm:"size:5;not null" json:"startTime"`
	EndTime   string    `gorm:"size:5;not null" json:"endTime"`
	Enabled   bool      `gorm:"not null" json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
}
