package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NabsK/hr-admin-system/internal/apperror"
	"github.com/NabsK/hr-admin-system/internal/models"
)

func TestDepartmentCreate(t *testing.T) {
	database := newTestDB(t)
	svc := NewDepartmentService(database)

	boss := seedEmployee(t, database, &models.Employee{
		Email: "boss@x.com", FirstName: "Boss", LastName: "One", Telephone: "1",
		Role: models.RoleManager, Status: true,
	})
	worker := seedEmployee(t, database, &models.Employee{
		Email: "worker@x.com", FirstName: "Worker", LastName: "Bee", Telephone: "2",
		Role: models.RoleEmployee, Status: true,
	})

	created, err := svc.Create(testContext(), superUser(1), CreateDepartmentInput{
		Name:        "Cyber Security",
		ManagerID:   &boss.ID,
		EmployeeIDs: []uint{worker.ID},
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, "Cyber Security", created.Name)
	assert.True(t, created.Status)
	require.NotNil(t, created.ManagerID)
	assert.Equal(t, boss.ID, *created.ManagerID)
	require.Len(t, created.Employees, 1)
	assert.Equal(t, worker.ID, created.Employees[0].ID)
}

func TestDepartmentCreateForbidden(t *testing.T) {
	database := newTestDB(t)
	svc := NewDepartmentService(database)

	for _, caller := range []Identity{manager(1), regularEmployee(2)} {
		_, err := svc.Create(testContext(), caller, CreateDepartmentInput{Name: "IT"})
		assert.Equal(t, apperror.CodeForbidden, apperror.GetCode(err))
	}
}

func TestDepartmentCreateValidation(t *testing.T) {
	database := newTestDB(t)
	svc := NewDepartmentService(database)

	_, err := svc.Create(testContext(), superUser(1), CreateDepartmentInput{Name: "   "})
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))

	missing := uint(42)
	_, err = svc.Create(testContext(), superUser(1), CreateDepartmentInput{Name: "IT", ManagerID: &missing})
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))

	_, err = svc.Create(testContext(), superUser(1), CreateDepartmentInput{Name: "IT", EmployeeIDs: []uint{42}})
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
}

func TestDepartmentUpdate(t *testing.T) {
	database := newTestDB(t)
	svc := NewDepartmentService(database)

	dept := seedDepartment(t, database, &models.Department{Name: "IT", Status: true})
	w1 := seedEmployee(t, database, &models.Employee{
		Email: "w1@x.com", FirstName: "W", LastName: "One", Telephone: "1",
		Role: models.RoleEmployee, Status: true,
	})
	w2 := seedEmployee(t, database, &models.Employee{
		Email: "w2@x.com", FirstName: "W", LastName: "Two", Telephone: "2",
		Role: models.RoleEmployee, Status: true,
	})
	require.NoError(t, database.Model(dept).Association("Employees").Append(&[]models.Employee{*w1}))

	name := "Information Technology"
	ids := []uint{w2.ID}
	updated, err := svc.Update(testContext(), superUser(1), dept.ID, UpdateDepartmentInput{
		Name:        &name,
		EmployeeIDs: &ids,
	})
	require.NoError(t, err)

	assert.Equal(t, "Information Technology", updated.Name)
	require.Len(t, updated.Employees, 1)
	assert.Equal(t, w2.ID, updated.Employees[0].ID)

	// Absent membership set leaves membership untouched.
	status := false
	updated, err = svc.Update(testContext(), superUser(1), dept.ID, UpdateDepartmentInput{Status: &status})
	require.NoError(t, err)
	assert.False(t, updated.Status)
	require.Len(t, updated.Employees, 1)

	empty := []uint{}
	updated, err = svc.Update(testContext(), superUser(1), dept.ID, UpdateDepartmentInput{EmployeeIDs: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.Employees)
}

func TestDepartmentUpdateErrors(t *testing.T) {
	database := newTestDB(t)
	svc := NewDepartmentService(database)

	dept := seedDepartment(t, database, &models.Department{Name: "IT", Status: true})

	name := "X"
	_, err := svc.Update(testContext(), superUser(1), 999, UpdateDepartmentInput{Name: &name})
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))

	_, err = svc.Update(testContext(), manager(1), dept.ID, UpdateDepartmentInput{Name: &name})
	assert.Equal(t, apperror.CodeForbidden, apperror.GetCode(err))
}

func TestDepartmentListVisibleToAnyRole(t *testing.T) {
	database := newTestDB(t)
	svc := NewDepartmentService(database)

	seedDepartment(t, database, &models.Department{Name: "IT", Status: true})
	seedDepartment(t, database, &models.Department{Name: "HR", Status: false})

	for _, caller := range []Identity{superUser(1), manager(2), regularEmployee(3)} {
		departments, err := svc.List(testContext(), caller)
		require.NoError(t, err)
		assert.Len(t, departments, 2)
	}

	_, err := svc.List(testContext(), Identity{EmployeeID: 4, Role: models.Role(8)})
	assert.Equal(t, apperror.CodeForbidden, apperror.GetCode(err))
}

func TestDepartmentToggleActivation(t *testing.T) {
	database := newTestDB(t)
	svc := NewDepartmentService(database)

	dept := seedDepartment(t, database, &models.Department{Name: "IT", Status: true})

	toggled, err := svc.ToggleActivation(testContext(), superUser(1), dept.ID, ActionDeactivate)
	require.NoError(t, err)
	assert.False(t, toggled.Status)

	toggled, err = svc.ToggleActivation(testContext(), superUser(1), dept.ID, ActionActivate)
	require.NoError(t, err)
	assert.True(t, toggled.Status)

	// Missing target wins over missing permission.
	_, err = svc.ToggleActivation(testContext(), regularEmployee(2), 999, ActionDeactivate)
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))

	_, err = svc.ToggleActivation(testContext(), regularEmployee(2), dept.ID, ActionDeactivate)
	assert.Equal(t, apperror.CodeForbidden, apperror.GetCode(err))
}

func TestDepartmentGetByID(t *testing.T) {
	database := newTestDB(t)
	svc := NewDepartmentService(database)

	dept := seedDepartment(t, database, &models.Department{Name: "IT", Status: true})

	got, err := svc.GetByID(testContext(), regularEmployee(1), dept.ID)
	require.NoError(t, err)
	assert.Equal(t, dept.ID, got.ID)

	_, err = svc.GetByID(testContext(), regularEmployee(1), 999)
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))
}
