package models

import "time"

// TimeSlot is one selected 30-minute block as submitted by the client.
type TimeSlot struct {
	Day     string `json:"day"`
	Time    string `json:"time"`
	DayName string `json:"dayName"`
}

type Booking struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	FirstName string `gorm:"size:100;not null" json:"firstName"`
	LastName  string `gorm:"size:100;not null" json:"lastName"`
	Contact   string `gorm:"size:255;not null" json:"contact"`
	Subject   string `gorm:"size:100;not null" json:"subject"`

	TimeSlots     []TimeSlot `gorm:"type:text;serializer:json;not null" json:"timeSlots"`
	TotalDuration int        `gorm:"not null" json:"totalDuration"`
	TotalCost     int64      `gorm:"not null" json:"totalCost"`

	Status string `gorm:"size:20;not null;default:'pending';index" json:"status"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
