package model

import "time"

// GroupEvent 群组事件监控表
type GroupEvent struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:16;not null"` // group_created / member_joined / message_posted
	ActorID   uint64 `gorm:"not null"`
	GroupID   uint64 `gorm:"not null;index"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (GroupEvent) TableName() string { return "group_events" }
