package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/NabsK/hr-admin-system/internal/apperror"
	"github.com/NabsK/hr-admin-system/internal/models"
	"github.com/NabsK/hr-admin-system/internal/rbac"
	"github.com/NabsK/hr-admin-system/internal/utils"
)

// EmployeeService implements the employee operations. Every operation
// re-reads current state before mutating; nothing is cached between calls.
// Concurrent updates to the same record resolve last-write-wins.
type EmployeeService struct {
	db              *gorm.DB
	defaultPassword string
	notifier        Notifier
}

func NewEmployeeService(db *gorm.DB, defaultPassword string, notifier Notifier) *EmployeeService {
	return &EmployeeService{
		db:              db,
		defaultPassword: defaultPassword,
		notifier:        notifier,
	}
}

func (s *EmployeeService) Create(ctx context.Context, caller Identity, input CreateEmployeeInput) (models.Employee, error) {
	if !rbac.Allows(caller.Role, rbac.OpEmployeeCreate) {
		return models.Employee{}, apperror.New(apperror.CodeForbidden, "only super users can create employees")
	}

	email, err := normalizeEmail(input.Email)
	if err != nil {
		return models.Employee{}, err
	}
	firstName, err := normalizeRequiredString(input.FirstName, "firstName")
	if err != nil {
		return models.Employee{}, err
	}
	lastName, err := normalizeRequiredString(input.LastName, "lastName")
	if err != nil {
		return models.Employee{}, err
	}
	telephone, err := normalizeRequiredString(input.Telephone, "telephone")
	if err != nil {
		return models.Employee{}, err
	}
	if !input.Role.Valid() {
		return models.Employee{}, apperror.New(apperror.CodeValidation, "role must be 0, 1 or 2")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Employee{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return models.Employee{}, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return models.Employee{}, apperror.New(apperror.CodeConflict, "email already exists")
	}

	if input.ManagerID != nil {
		if err := s.ensureManagerAssignable(ctx, 0, *input.ManagerID); err != nil {
			return models.Employee{}, err
		}
	}

	departments, err := s.loadDepartments(ctx, input.DepartmentIDs)
	if err != nil {
		return models.Employee{}, err
	}

	// Every new employee starts with the system-wide default password and is
	// expected to change it on first login.
	passwordHash, err := utils.HashPassword(s.defaultPassword)
	if err != nil {
		return models.Employee{}, fmt.Errorf("hash password: %w", err)
	}

	status := true
	if input.Status != nil {
		status = *input.Status
	}

	employee := models.Employee{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		Telephone:    telephone,
		Role:         input.Role,
		ManagerID:    input.ManagerID,
		Status:       status,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&employee).Error; err != nil {
			return mapDatabaseError(err)
		}
		if len(departments) > 0 {
			if err := tx.Model(&employee).Association("Departments").Append(&departments); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.Employee{}, err
	}

	if s.notifier != nil {
		if err := s.notifier.SendInitialCredentials(email, s.defaultPassword); err != nil {
			log.Warn().Err(err).Str("email", email).Msg("initial credentials mail failed")
		}
	}

	return s.getByID(ctx, employee.ID)
}

func (s *EmployeeService) Update(ctx context.Context, caller Identity, id uint, input UpdateEmployeeInput) (models.Employee, error) {
	var employee models.Employee
	if err := s.db.WithContext(ctx).First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Employee{}, apperror.New(apperror.CodeNotFound, "employee not found")
		}
		return models.Employee{}, fmt.Errorf("load employee: %w", err)
	}

	if !rbac.CanEditEmployee(caller.Role, caller.EmployeeID, &employee) {
		return models.Employee{}, apperror.New(apperror.CodeForbidden, "not allowed to edit this employee")
	}

	// Non-super-users cannot change role or status; the fields are dropped
	// from the payload rather than rejected.
	if !rbac.CanSetRoleAndStatus(caller.Role) {
		input.Role = nil
		input.Status = nil
	}

	updates := map[string]any{}

	if input.Email != nil {
		email, err := normalizeEmail(*input.Email)
		if err != nil {
			return models.Employee{}, err
		}
		if email != employee.Email {
			var count int64
			if err := s.db.WithContext(ctx).Model(&models.Employee{}).
				Where("email = ? AND id <> ?", email, id).Count(&count).Error; err != nil {
				return models.Employee{}, fmt.Errorf("check email: %w", err)
			}
			if count > 0 {
				return models.Employee{}, apperror.New(apperror.CodeConflict, "email already exists")
			}
		}
		updates["email"] = email
	}
	if input.FirstName != nil {
		firstName, err := normalizeRequiredString(*input.FirstName, "firstName")
		if err != nil {
			return models.Employee{}, err
		}
		updates["first_name"] = firstName
	}
	if input.LastName != nil {
		lastName, err := normalizeRequiredString(*input.LastName, "lastName")
		if err != nil {
			return models.Employee{}, err
		}
		updates["last_name"] = lastName
	}
	if input.Telephone != nil {
		telephone, err := normalizeRequiredString(*input.Telephone, "telephone")
		if err != nil {
			return models.Employee{}, err
		}
		updates["telephone"] = telephone
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return models.Employee{}, apperror.New(apperror.CodeValidation, "role must be 0, 1 or 2")
		}
		updates["role"] = *input.Role
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.ManagerID != nil {
		if err := s.ensureManagerAssignable(ctx, employee.ID, *input.ManagerID); err != nil {
			return models.Employee{}, err
		}
		updates["manager_id"] = *input.ManagerID
	}

	var departments []models.Department
	if input.DepartmentIDs != nil {
		loaded, err := s.loadDepartments(ctx, *input.DepartmentIDs)
		if err != nil {
			return models.Employee{}, err
		}
		departments = loaded
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&employee).Updates(updates).Error; err != nil {
				return mapDatabaseError(err)
			}
		}
		if input.DepartmentIDs != nil {
			assoc := tx.Model(&employee).Association("Departments")
			if len(departments) == 0 {
				return assoc.Clear()
			}
			return assoc.Replace(&departments)
		}
		return nil
	})
	if err != nil {
		return models.Employee{}, err
	}

	return s.getByID(ctx, employee.ID)
}

func (s *EmployeeService) GetByID(ctx context.Context, caller Identity, id uint) (models.Employee, error) {
	if !rbac.Allows(caller.Role, rbac.OpEmployeeRead) {
		return models.Employee{}, apperror.New(apperror.CodeForbidden, "forbidden")
	}
	return s.getByID(ctx, id)
}

// List returns the role-scoped employee listing: super users see everyone,
// managers see themselves plus their direct reports, employees only
// themselves.
func (s *EmployeeService) List(ctx context.Context, caller Identity) ([]models.Employee, error) {
	if !rbac.Allows(caller.Role, rbac.OpEmployeeList) {
		return nil, apperror.New(apperror.CodeForbidden, "role is not allowed to list employees")
	}

	query := s.db.WithContext(ctx).
		Preload("Departments").
		Preload("Manager").
		Order("id")

	switch caller.Role {
	case models.RoleManager:
		query = query.Where("id = ? OR manager_id = ?", caller.EmployeeID, caller.EmployeeID)
	case models.RoleEmployee:
		query = query.Where("id = ?", caller.EmployeeID)
	}

	var employees []models.Employee
	if err := query.Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

func (s *EmployeeService) ToggleActivation(ctx context.Context, caller Identity, id uint, action ToggleAction) (models.Employee, error) {
	// Existence is checked before authorization, matching the behavior the
	// front end was built against.
	var employee models.Employee
	if err := s.db.WithContext(ctx).First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Employee{}, apperror.New(apperror.CodeNotFound, "employee not found")
		}
		return models.Employee{}, fmt.Errorf("load employee: %w", err)
	}

	if !rbac.Allows(caller.Role, rbac.OpEmployeeToggle) {
		return models.Employee{}, apperror.New(apperror.CodeForbidden, "only super users can activate or deactivate employees")
	}

	var status bool
	switch action {
	case ActionActivate:
		status = true
	case ActionDeactivate:
		status = false
	default:
		return models.Employee{}, apperror.New(apperror.CodeValidation, "action must be Activate or Deactivate")
	}

	if err := s.db.WithContext(ctx).Model(&employee).Update("status", status).Error; err != nil {
		return models.Employee{}, fmt.Errorf("update status: %w", err)
	}

	return s.getByID(ctx, employee.ID)
}

// ListManagers returns the distinct set of employees currently referenced as
// someone's manager.
func (s *EmployeeService) ListManagers(ctx context.Context, caller Identity) ([]models.Employee, error) {
	if !rbac.Allows(caller.Role, rbac.OpManagerList) {
		return nil, apperror.New(apperror.CodeForbidden, "forbidden")
	}

	var ids []uint
	if err := s.db.WithContext(ctx).Model(&models.Employee{}).
		Where("manager_id IS NOT NULL").
		Distinct().
		Pluck("manager_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("collect manager ids: %w", err)
	}
	if len(ids) == 0 {
		return []models.Employee{}, nil
	}

	var managers []models.Employee
	if err := s.db.WithContext(ctx).Order("id").Find(&managers, ids).Error; err != nil {
		return nil, fmt.Errorf("load managers: %w", err)
	}
	return managers, nil
}

func (s *EmployeeService) getByID(ctx context.Context, id uint) (models.Employee, error) {
	var employee models.Employee
	if err := s.db.WithContext(ctx).
		Preload("Departments").
		Preload("Manager").
		First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Employee{}, apperror.New(apperror.CodeNotFound, "employee not found")
		}
		return models.Employee{}, fmt.Errorf("load employee: %w", err)
	}
	return employee, nil
}

// ensureManagerAssignable checks that managerID references an existing
// employee and that assigning it to employeeID would not close a reporting
// cycle. The manager relation is a directed graph over employee ids; the walk
// is bounded by a visited set so a pre-existing cycle higher up cannot loop
// forever. Pass employeeID 0 on creation, where no cycle is possible yet.
func (s *EmployeeService) ensureManagerAssignable(ctx context.Context, employeeID uint, managerID uint) error {
	if employeeID != 0 && managerID == employeeID {
		return apperror.New(apperror.CodeValidation, "an employee cannot be their own manager")
	}

	seen := map[uint]bool{}
	current := managerID
	for {
		if employeeID != 0 && current == employeeID {
			return apperror.New(apperror.CodeValidation, "manager assignment would create a cycle")
		}
		if seen[current] {
			return nil
		}
		seen[current] = true

		var manager models.Employee
		err := s.db.WithContext(ctx).Select("id", "manager_id").First(&manager, current).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if current == managerID {
					return apperror.New(apperror.CodeValidation, "manager does not exist")
				}
				// Dangling reference further up the chain; not this
				// request's problem.
				return nil
			}
			return fmt.Errorf("walk manager chain: %w", err)
		}
		if manager.ManagerID == nil {
			return nil
		}
		current = *manager.ManagerID
	}
}

// loadDepartments resolves a department id set, rejecting unknown ids.
func (s *EmployeeService) loadDepartments(ctx context.Context, ids []uint) ([]models.Department, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	unique := map[uint]bool{}
	for _, id := range ids {
		unique[id] = true
	}

	var departments []models.Department
	if err := s.db.WithContext(ctx).Find(&departments, ids).Error; err != nil {
		return nil, fmt.Errorf("load departments: %w", err)
	}
	if len(departments) != len(unique) {
		return nil, apperror.New(apperror.CodeValidation, "one or more departments do not exist")
	}
	return departments, nil
}
