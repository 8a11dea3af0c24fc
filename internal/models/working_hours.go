package models

import "time"

type WorkingHours struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	TeacherID uint `gorm:"uniqueIndex" json:"teacher_id"`

	StartHour int  `json:"start_hour"`
	EndHour   int  `json:"end_hour"`
	SlotMin   int  `gorm:"default:30" json:"slot_min"`
	Active    bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
