package service

import (
	"context"

	"github.com/NabsK/hr-admin-system/internal/models"
)

// Identity is the caller identity derived from a verified session token.
// Requests without a verified token never reach the services; the auth
// middleware rejects them first.
type Identity struct {
	EmployeeID uint
	Role       models.Role
}

type ToggleAction string

const (
	ActionActivate   ToggleAction = "Activate"
	ActionDeactivate ToggleAction = "Deactivate"
)

type CreateEmployeeInput struct {
	Email         string
	FirstName     string
	LastName      string
	Telephone     string
	Role          models.Role
	Status        *bool
	ManagerID     *uint
	DepartmentIDs []uint
}

// UpdateEmployeeInput carries a partial update; nil fields are left
// untouched. A non-nil DepartmentIDs replaces the membership wholesale.
type UpdateEmployeeInput struct {
	Email         *string
	FirstName     *string
	LastName      *string
	Telephone     *string
	Role          *models.Role
	Status        *bool
	ManagerID     *uint
	DepartmentIDs *[]uint
}

type CreateDepartmentInput struct {
	Name        string
	Status      *bool
	ManagerID   *uint
	EmployeeIDs []uint
}

type UpdateDepartmentInput struct {
	Name        *string
	Status      *bool
	ManagerID   *uint
	EmployeeIDs *[]uint
}

type Employees interface {
	Create(ctx context.Context, caller Identity, input CreateEmployeeInput) (models.Employee, error)
	Update(ctx context.Context, caller Identity, id uint, input UpdateEmployeeInput) (models.Employee, error)
	GetByID(ctx context.Context, caller Identity, id uint) (models.Employee, error)
	List(ctx context.Context, caller Identity) ([]models.Employee, error)
	ToggleActivation(ctx context.Context, caller Identity, id uint, action ToggleAction) (models.Employee, error)
	ListManagers(ctx context.Context, caller Identity) ([]models.Employee, error)
}

type Departments interface {
	Create(ctx context.Context, caller Identity, input CreateDepartmentInput) (models.Department, error)
	Update(ctx context.Context, caller Identity, id uint, input UpdateDepartmentInput) (models.Department, error)
	GetByID(ctx context.Context, caller Identity, id uint) (models.Department, error)
	List(ctx context.Context, caller Identity) ([]models.Department, error)
	ToggleActivation(ctx context.Context, caller Identity, id uint, action ToggleAction) (models.Department, error)
}

// Notifier delivers out-of-band notifications; a nil Notifier disables them.
type Notifier interface {
	SendInitialCredentials(to string, password string) error
}
