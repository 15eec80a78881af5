package models

import "time"

type RefreshToken struct {
	ID         uint      `gorm:"primaryKey"`
	EmployeeID uint      `gorm:"index;not null"`
	Token      string    `gorm:"uniqueIndex;size:255;not null"`
	ExpiresAt  time.Time `gorm:"index"`
	RevokedAt  *time.Time
	CreatedAt  time.Time
}
