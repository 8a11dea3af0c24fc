package models

import "time"

type Message struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SenderID uint `gorm:"index:idx_thread" json:"sender_id"`
	Sender   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"sender"`

	RecipientID uint `gorm:"index:idx_thread" json:"recipient_id"`
	Recipient   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"recipient"`

	Body string `gorm:"size:2000;not null" json:"body"`
	Read bool   `gorm:"default:false" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}
