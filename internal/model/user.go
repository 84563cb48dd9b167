package model

import "time"

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	PublicID  string `gorm:"size:36;not null;index"`
	FirstName string `gorm:"size:30;not null"`
	LastName  string `gorm:"size:30;not null"`
	Email     string `gorm:"size:64;not null;index"`
	Password  string `gorm:"size:255;not null"`
	Admin     bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string { return "users" }
