package model

import "time"

type Group struct {
	ID        uint64 `gorm:"primaryKey"`
	PublicID  string `gorm:"size:36;not null;index"`
	Title     string `gorm:"size:30;not null"`
	CreatorID uint64 `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Group) TableName() string { return "groups" }

// Member 无唯一约束，重复加入会产生重复行
type Member struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    uint64 `gorm:"not null;index"`
	GroupID   uint64 `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Member) TableName() string { return "members" }
