package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/NabsK/hr-admin-system/internal/models"
	"github.com/NabsK/hr-admin-system/internal/utils"
)

// Seed loads the demo dataset. It is a no-op unless the employee table is
// empty, so running it on every start is safe.
func Seed(database *gorm.DB, defaultPassword string) error {
	var count int64
	if err := database.Model(&models.Employee{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count employees: %w", err)
	}
	if count > 0 {
		return nil
	}

	adminHash, err := utils.HashPassword("TestPass1234")
	if err != nil {
		return err
	}
	defaultHash, err := utils.HashPassword(defaultPassword)
	if err != nil {
		return err
	}

	return database.Transaction(func(tx *gorm.DB) error {
		it := models.Department{Name: "IT", Status: true}
		hr := models.Department{Name: "HR", Status: true}
		customerService := models.Department{Name: "Customer Service", Status: true}
		training := models.Department{Name: "Training", Status: true}
		cyberSecurity := models.Department{Name: "Cyber Security", Status: true}
		for _, department := range []*models.Department{&it, &hr, &customerService, &training, &cyberSecurity} {
			if err := tx.Create(department).Error; err != nil {
				return err
			}
		}

		admin := models.Employee{
			Email:        "hradmin@test.com",
			PasswordHash: adminHash,
			FirstName:    "SUPER",
			LastName:     "USER",
			Telephone:    "000 000 0000",
			Role:         models.RoleSuperUser,
			Status:       true,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		bob := models.Employee{
			Email:        "bob@gmail.com",
			PasswordHash: defaultHash,
			FirstName:    "Bob",
			LastName:     "Ross",
			Telephone:    "123 455 7891",
			Role:         models.RoleManager,
			Status:       true,
			Departments:  []models.Department{it, cyberSecurity, training},
		}
		steve := models.Employee{
			Email:        "stevejobs@apple.com",
			PasswordHash: defaultHash,
			FirstName:    "Steve",
			LastName:     "Jobs",
			Telephone:    "678 567 7394",
			Role:         models.RoleManager,
			Status:       true,
			Departments:  []models.Department{hr, customerService},
		}
		for _, manager := range []*models.Employee{&bob, &steve} {
			if err := tx.Create(manager).Error; err != nil {
				return err
			}
		}

		reports := []models.Employee{
			{
				Email: "danny@gmail.com", PasswordHash: defaultHash,
				FirstName: "Danny", LastName: "Danniel", Telephone: "123 455 9341",
				Role: models.RoleEmployee, Status: true, ManagerID: &bob.ID,
				Departments: []models.Department{it},
			},
			{
				Email: "banner@yahoo.com", PasswordHash: defaultHash,
				FirstName: "Bruce", LastName: "Banner", Telephone: "739 834 8392",
				Role: models.RoleEmployee, Status: true, ManagerID: &bob.ID,
				Departments: []models.Department{it, cyberSecurity},
			},
			{
				Email: "rodgers@gamil.com", PasswordHash: defaultHash,
				FirstName: "Steve", LastName: "Rodgers", Telephone: "123 894 7891",
				Role: models.RoleEmployee, Status: true, ManagerID: &steve.ID,
				Departments: []models.Department{hr, customerService},
			},
			{
				Email: "damian@yahoo.com", PasswordHash: defaultHash,
				FirstName: "Damian", LastName: "Wayne", Telephone: "278 273 2784",
				Role: models.RoleEmployee, Status: true, ManagerID: &bob.ID,
				Departments: []models.Department{training},
			},
			{
				Email: "barry@gmail.com", PasswordHash: defaultHash,
				FirstName: "Barry", LastName: "Allen", Telephone: "903 455 7891",
				Role: models.RoleEmployee, Status: true, ManagerID: &steve.ID,
				Departments: []models.Department{customerService},
			},
			{
				Email: "tony@gmail.com", PasswordHash: defaultHash,
				FirstName: "Tony", LastName: "Stark", Telephone: "273 743 9038",
				Role: models.RoleEmployee, Status: true, ManagerID: &steve.ID,
				Departments: []models.Department{hr},
			},
		}
		for i := range reports {
			if err := tx.Create(&reports[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
