package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NabsK/hr-admin-system/internal/middleware"
	"github.com/NabsK/hr-admin-system/internal/service"
)

type DepartmentHandler struct {
	Service service.Departments
}

func NewDepartmentHandler(svc service.Departments) *DepartmentHandler {
	return &DepartmentHandler{Service: svc}
}

type createDepartmentRequest struct {
	Name        string      `json:"name" binding:"required"`
	Status      *statusFlag `json:"status"`
	ManagerID   *uint       `json:"managerId"`
	EmployeeIDs []uint      `json:"employeeIds"`
}

type updateDepartmentRequest struct {
	Name        *string     `json:"name"`
	Status      *statusFlag `json:"status"`
	ManagerID   *uint       `json:"managerId"`
	EmployeeIDs *[]uint     `json:"employeeIds"`
}

func (h *DepartmentHandler) List(c *gin.Context) {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	departments, err := h.Service.List(c.Request.Context(), caller)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, departments)
}

func (h *DepartmentHandler) Get(c *gin.Context) {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	department, err := h.Service.GetByID(c.Request.Context(), caller, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, department)
}

func (h *DepartmentHandler) Create(c *gin.Context) {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	input := service.CreateDepartmentInput{
		Name:        req.Name,
		ManagerID:   req.ManagerID,
		EmployeeIDs: req.EmployeeIDs,
	}
	if req.Status != nil {
		status := bool(*req.Status)
		input.Status = &status
	}

	department, err := h.Service.Create(c.Request.Context(), caller, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, department)
}

func (h *DepartmentHandler) Update(c *gin.Context) {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	input := service.UpdateDepartmentInput{
		Name:        req.Name,
		ManagerID:   req.ManagerID,
		EmployeeIDs: req.EmployeeIDs,
	}
	if req.Status != nil {
		status := bool(*req.Status)
		input.Status = &status
	}

	department, err := h.Service.Update(c.Request.Context(), caller, id, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, department)
}

func (h *DepartmentHandler) ToggleStatus(c *gin.Context) {
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

	department, err := h.Service.ToggleActivation(c.Request.Context(), caller, id, service.ToggleAction(req.Action))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, department)
}
