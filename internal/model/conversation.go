package model

import "time"

type Conversation struct {
	ID        uint64 `gorm:"primaryKey"`
	Text      string `gorm:"type:text;not null"`
	GroupID   uint64 `gorm:"not null;index"`
	UserID    uint64 `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Conversation) TableName() string { return "conversation" }
