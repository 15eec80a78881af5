package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/NabsK/hr-admin-system/internal/apperror"
	"github.com/NabsK/hr-admin-system/internal/models"
	"github.com/NabsK/hr-admin-system/internal/rbac"
)

type DepartmentService struct {
	db *gorm.DB
}

func NewDepartmentService(db *gorm.DB) *DepartmentService {
	return &DepartmentService{db: db}
}

func (s *DepartmentService) Create(ctx context.Context, caller Identity, input CreateDepartmentInput) (models.Department, error) {
	if !rbac.Allows(caller.Role, rbac.OpDepartmentCreate) {
		return models.Department{}, apperror.New(apperror.CodeForbidden, "only super users can create departments")
	}

	name, err := normalizeRequiredString(input.Name, "name")
	if err != nil {
		return models.Department{}, err
	}

	if input.ManagerID != nil {
		if err := s.ensureEmployeeExists(ctx, *input.ManagerID); err != nil {
			return models.Department{}, err
		}
	}

	employees, err := s.loadEmployees(ctx, input.EmployeeIDs)
	if err != nil {
		return models.Department{}, err
	}

	status := true
	if input.Status != nil {
		status = *input.Status
	}

	department := models.Department{
		Name:      name,
		Status:    status,
		ManagerID: input.ManagerID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&department).Error; err != nil {
			return mapDatabaseError(err)
		}
		if len(employees) > 0 {
			if err := tx.Model(&department).Association("Employees").Append(&employees); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.Department{}, err
	}

	return s.getByID(ctx, department.ID)
}

func (s *DepartmentService) Update(ctx context.Context, caller Identity, id uint, input UpdateDepartmentInput) (models.Department, error) {
	var department models.Department
	if err := s.db.WithContext(ctx).First(&department, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Department{}, apperror.New(apperror.CodeNotFound, "department not found")
		}
		return models.Department{}, fmt.Errorf("load department: %w", err)
	}

	if !rbac.Allows(caller.Role, rbac.OpDepartmentUpdate) {
		return models.Department{}, apperror.New(apperror.CodeForbidden, "only super users can edit departments")
	}

	updates := map[string]any{}

	if input.Name != nil {
		name, err := normalizeRequiredString(*input.Name, "name")
		if err != nil {
			return models.Department{}, err
		}
		updates["name"] = name
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.ManagerID != nil {
		if err := s.ensureEmployeeExists(ctx, *input.ManagerID); err != nil {
			return models.Department{}, err
		}
		updates["manager_id"] = *input.ManagerID
	}

	var employees []models.Employee
	if input.EmployeeIDs != nil {
		loaded, err := s.loadEmployees(ctx, *input.EmployeeIDs)
		if err != nil {
			return models.Department{}, err
		}
		employees = loaded
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&department).Updates(updates).Error; err != nil {
				return mapDatabaseError(err)
			}
		}
		if input.EmployeeIDs != nil {
			// Membership is replaced wholesale, never merged.
			assoc := tx.Model(&department).Association("Employees")
			if len(employees) == 0 {
				return assoc.Clear()
			}
			return assoc.Replace(&employees)
		}
		return nil
	})
	if err != nil {
		return models.Department{}, err
	}

	return s.getByID(ctx, department.ID)
}

func (s *DepartmentService) GetByID(ctx context.Context, caller Identity, id uint) (models.Department, error) {
	if !rbac.Allows(caller.Role, rbac.OpDepartmentRead) {
		return models.Department{}, apperror.New(apperror.CodeForbidden, "forbidden")
	}
	return s.getByID(ctx, id)
}

// List returns every department with its membership; visible to any
// authenticated caller regardless of role.
func (s *DepartmentService) List(ctx context.Context, caller Identity) ([]models.Department, error) {
	if !rbac.Allows(caller.Role, rbac.OpDepartmentList) {
		return nil, apperror.New(apperror.CodeForbidden, "forbidden")
	}

	var departments []models.Department
	if err := s.db.WithContext(ctx).
		Preload("Employees").
		Preload("Manager").
		Order("id").
		Find(&departments).Error; err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return departments, nil
}

func (s *DepartmentService) ToggleActivation(ctx context.Context, caller Identity, id uint, action ToggleAction) (models.Department, error) {
	var department models.Department
	if err := s.db.WithContext(ctx).First(&department, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Department{}, apperror.New(apperror.CodeNotFound, "department not found")
		}
		return models.Department{}, fmt.Errorf("load department: %w", err)
	}

	if !rbac.Allows(caller.Role, rbac.OpDepartmentToggle) {
		return models.Department{}, apperror.New(apperror.CodeForbidden, "only super users can activate or deactivate departments")
	}

	var status bool
	switch action {
	case ActionActivate:
		status = true
	case ActionDeactivate:
		status = false
	default:
		return models.Department{}, apperror.New(apperror.CodeValidation, "action must be Activate or Deactivate")
	}

	if err := s.db.WithContext(ctx).Model(&department).Update("status", status).Error; err != nil {
		return models.Department{}, fmt.Errorf("update status: %w", err)
	}

	return s.getByID(ctx, department.ID)
}

func (s *DepartmentService) getByID(ctx context.Context, id uint) (models.Department, error) {
	var department models.Department
	if err := s.db.WithContext(ctx).
		Preload("Employees").
		Preload("Manager").
		First(&department, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Department{}, apperror.New(apperror.CodeNotFound, "department not found")
		}
		return models.Department{}, fmt.Errorf("load department: %w", err)
	}
	return department, nil
}

func (s *DepartmentService) ensureEmployeeExists(ctx context.Context, id uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Employee{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("check employee: %w", err)
	}
	if count == 0 {
		return apperror.New(apperror.CodeValidation, "manager does not exist")
	}
	return nil
}

func (s *DepartmentService) loadEmployees(ctx context.Context, ids []uint) ([]models.Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	unique := map[uint]bool{}
	for _, id := range ids {
		unique[id] = true
	}

	var employees []models.Employee
	if err := s.db.WithContext(ctx).Find(&employees, ids).Error; err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}
	if len(employees) != len(unique) {
		return nil, apperror.New(apperror.CodeValidation, "one or more employees do not exist")
	}
	return employees, nil
}
