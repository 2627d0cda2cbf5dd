package models

import "time"

type FormSettings struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Description  string    `gorm:"size:1000;not null" json:"description"`
	ContactEmail string    `gorm:"size:255;not null" json:"contactEmail"`
	HourlyRate   int       `gorm:"not null" json:"hourlyRate"`
	Subjects     []string  `gorm:"type:text;serializer:json;not null" json:"subjects"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
