package models

import "time"

type Department struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:200;not null" json:"name"`
	Status    bool       `gorm:"not null;default:true" json:"status"`
	ManagerID *uint      `gorm:"index" json:"managerId"`
	Manager   *Employee  `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	Employees []Employee `gorm:"many2many:employee_departments" json:"employees,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
