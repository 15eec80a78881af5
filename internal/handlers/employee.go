package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NabsK/hr-admin-system/internal/middleware"
	"github.com/NabsK/hr-admin-system/internal/models"
	"github.com/NabsK/hr-admin-system/internal/service"
)

type EmployeeHandler struct {
	Service service.Employees
}

func NewEmployeeHandler(svc service.Employees) *EmployeeHandler {
	return &EmployeeHandler{Service: svc}
}

type createEmployeeRequest struct {
	FirstName     string      `json:"firstName" binding:"required"`
	LastName      string      `json:"lastName" binding:"required"`
	Email         string      `json:"email" binding:"required,email"`
	Telephone     string      `json:"telephone" binding:"required"`
	Role          *int        `json:"role"`
	Status        *statusFlag `json:"status"`
	ManagerID     *uint       `json:"managerId"`
	DepartmentIDs []uint      `json:"departmentIds"`
}

type updateEmployeeRequest struct {
	FirstName     *string     `json:"firstName"`
	LastName      *string     `json:"lastName"`
	Email         *string     `json:"email"`
	Telephone     *string     `json:"telephone"`
	Role          *int        `json:"role"`
	Status        *statusFlag `json:"status"`
	ManagerID     *uint       `json:"managerId"`
	DepartmentIDs *[]uint     `json:"departmentIds"`
}

type toggleStatusRequest struct {
	Action string `json:"action" binding:"required,oneof=Activate Deactivate"`
}

func (h *EmployeeHandler) List(c *gin.Context) {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	employees, err := h.Service.List(c.Request.Context(), caller)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	employee, err := h.Service.GetByID(c.Request.Context(), caller, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	input := service.CreateEmployeeInput{
		Email:         req.Email,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Telephone:     req.Telephone,
		Role:          models.RoleEmployee,
		ManagerID:     req.ManagerID,
		DepartmentIDs: req.DepartmentIDs,
	}
	if req.Role != nil {
		input.Role = models.Role(*req.Role)
	}
	if req.Status != nil {
		status := bool(*req.Status)
		input.Status = &status
	}

	employee, err := h.Service.Create(c.Request.Context(), caller, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, employee)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	input := service.UpdateEmployeeInput{
		Email:         req.Email,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Telephone:     req.Telephone,
		ManagerID:     req.ManagerID,
		DepartmentIDs: req.DepartmentIDs,
	}
	if req.Role != nil {
		role := models.Role(*req.Role)
		input.Role = &role
	}
	if req.Status != nil {
		status := bool(*req.Status)
		input.Status = &status
	}

	employee, err := h.Service.Update(c.Request.Context(), caller, id, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) ToggleStatus(c *gin.Context) {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req toggleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	employee, err := h.Service.ToggleActivation(c.Request.Context(), caller, id, service.ToggleAction(req.Action))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) ListManagers(c *gin.Context) {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	managers, err := h.Service.ListManagers(c.Request.Context(), caller)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, managers)
}
