package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID *string `gorm:"size:36" json:"userId"`
	Action string  `gorm:"size:50;not null;index" json:"action"`

	Entity   string  `gorm:"size:50" json:"entity"`
	EntityID *string `gorm:"size:36" json:"entityId"`
	Metadata string  `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}
