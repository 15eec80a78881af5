package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/NabsK/hr-admin-system/internal/db"
	"github.com/NabsK/hr-admin-system/internal/models"
)

const testDefaultPassword = "Password123#"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database))
	return database
}

func seedEmployee(t *testing.T, database *gorm.DB, employee *models.Employee) *models.Employee {
	t.Helper()
	if employee.PasswordHash == "" {
		employee.PasswordHash = "x"
	}
	require.NoError(t, database.Create(employee).Error)
	return employee
}

func seedDepartment(t *testing.T, database *gorm.DB, department *models.Department) *models.Department {
	t.Helper()
	require.NoError(t, database.Create(department).Error)
	return department
}

func superUser(id uint) Identity {
	return Identity{EmployeeID: id, Role: models.RoleSuperUser}
}

func manager(id uint) Identity {
	return Identity{EmployeeID: id, Role: models.RoleManager}
}

func regularEmployee(id uint) Identity {
	return Identity{EmployeeID: id, Role: models.RoleEmployee}
}

func testContext() context.Context {
	return context.Background()
}
