package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/NabsK/hr-admin-system/internal/config"
	"github.com/NabsK/hr-admin-system/internal/db"
	"github.com/NabsK/hr-admin-system/internal/middleware"
	"github.com/NabsK/hr-admin-system/internal/models"
	"github.com/NabsK/hr-admin-system/internal/utils"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database))

	cfg := config.Config{
		JwtSecret:        testSecret,
		JwtAccessMinutes: 5,
		JwtRefreshHours:  1,
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewAuthHandler(database, cfg)

	router.POST("/api/auth/login", handler.Login)
	router.POST("/api/auth/refresh", handler.Refresh)
	router.POST("/api/auth/logout", handler.Logout)
	router.GET("/api/me", middleware.AuthRequired(cfg.JwtSecret), handler.Me)

	return router, database
}

func seedLoginEmployee(t *testing.T, database *gorm.DB, email string, password string, status bool) *models.Employee {
	t.Helper()

	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	employee := &models.Employee{
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Test",
		LastName:     "User",
		Telephone:    "000",
		Role:         models.RoleEmployee,
		Status:       status,
	}
	require.NoError(t, database.Create(employee).Error)
	return employee
}

func TestLogin(t *testing.T) {
	router, database := newAuthRouter(t)
	employee := seedLoginEmployee(t, database, "ann@x.com", "Password123#", true)

	recorder := doRequest(router, http.MethodPost, "/api/auth/login", "",
		map[string]any{"email": "Ann@X.com", "password": "Password123#"})
	require.Equal(t, http.StatusOK, recorder.Code)

	var payload struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
		User         struct {
			ID   uint        `json:"id"`
			Role models.Role `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&payload))
	assert.NotEmpty(t, payload.AccessToken)
	assert.NotEmpty(t, payload.RefreshToken)
	assert.Equal(t, employee.ID, payload.User.ID)
	assert.Equal(t, models.RoleEmployee, payload.User.Role)

	recorder = doRequest(router, http.MethodGet, "/api/me", "Bearer "+payload.AccessToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var me models.Employee
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&me))
	assert.Equal(t, employee.ID, me.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router, database := newAuthRouter(t)
	seedLoginEmployee(t, database, "ann@x.com", "Password123#", true)

	recorder := doRequest(router, http.MethodPost, "/api/auth/login", "",
		map[string]any{"email": "ann@x.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = doRequest(router, http.MethodPost, "/api/auth/login", "",
		map[string]any{"email": "nobody@x.com", "password": "Password123#"})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	router, database := newAuthRouter(t)
	seedLoginEmployee(t, database, "gone@x.com", "Password123#", false)

	recorder := doRequest(router, http.MethodPost, "/api/auth/login", "",
		map[string]any{"email": "gone@x.com", "password": "Password123#"})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRefreshAndLogout(t *testing.T) {
	router, database := newAuthRouter(t)
	seedLoginEmployee(t, database, "ann@x.com", "Password123#", true)

	recorder := doRequest(router, http.MethodPost, "/api/auth/login", "",
		map[string]any{"email": "ann@x.com", "password": "Password123#"})
	require.Equal(t, http.StatusOK, recorder.Code)

	var login struct {
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&login))

	recorder = doRequest(router, http.MethodPost, "/api/auth/refresh", "",
		map[string]any{"refreshToken": login.RefreshToken})
	require.Equal(t, http.StatusOK, recorder.Code)

	var refreshed struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&refreshed))
	assert.NotEmpty(t, refreshed.AccessToken)

	recorder = doRequest(router, http.MethodPost, "/api/auth/logout", "",
		map[string]any{"refreshToken": login.RefreshToken})
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(router, http.MethodPost, "/api/auth/refresh", "",
		map[string]any{"refreshToken": login.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
