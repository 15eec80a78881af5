package models

import "time"

type Employee struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Email        string       `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string       `gorm:"size:255;not null" json:"-"`
	FirstName    string       `gorm:"size:120;not null" json:"firstName"`
	LastName     string       `gorm:"size:120;not null" json:"lastName"`
	Telephone    string       `gorm:"size:50" json:"telephone"`
	Role         Role         `gorm:"not null;default:2" json:"role"`
	ManagerID    *uint        `gorm:"index" json:"managerId"`
	Manager      *Employee    `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	Status       bool         `gorm:"not null;default:true" json:"status"`
	Departments  []Department `gorm:"many2many:employee_departments" json:"departments,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}
