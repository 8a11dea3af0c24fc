package models

import "time"

type Booking struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PublicID string `gorm:"size:36;uniqueIndex" json:"public_id"`

	TeacherID uint `gorm:"index:idx_teacher_date" json:"teacher_id"`
	Teacher   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"teacher"`

	StudentID uint `json:"student_id"`
	Student   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"student"`

	Date        string `gorm:"size:10;index:idx_teacher_date" json:"date"`
	StartTime   string `gorm:"size:5" json:"start_time"`
	DurationMin int    `gorm:"default:30" json:"duration_min"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Note        string     `gorm:"size:255" json:"note"`
	ApprovedAt  *time.Time `json:"approved_at"`
	RejectedAt  *time.Time `json:"rejected_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
