// Package rbac holds the role-authorization rules for employee and department
// mutations. The rules are table-driven: changing who may do what is an edit
// to the policy table below, not to the services that consult it.
package rbac

import "github.com/NabsK/hr-admin-system/internal/models"

type Operation string

const (
	OpEmployeeCreate   Operation = "employee:create"
	OpEmployeeUpdate   Operation = "employee:update"
	OpEmployeeToggle   Operation = "employee:toggle_status"
	OpEmployeeList     Operation = "employee:list"
	OpEmployeeRead     Operation = "employee:read"
	OpManagerList      Operation = "employee:list_managers"
	OpDepartmentCreate Operation = "department:create"
	OpDepartmentUpdate Operation = "department:update"
	OpDepartmentToggle Operation = "department:toggle_status"
	OpDepartmentList   Operation = "department:list"
	OpDepartmentRead   Operation = "department:read"
)

// policy maps each role to the set of operations it may attempt. Update
// operations are further scoped by CanEditEmployee; this table answers only
// "may this role reach the operation at all".
//
// The source system changed its gating between revisions (employee creation
// was briefly open to managers). The table encodes the final revision:
// creation and status toggles are super-user only, managers edit within
// their reporting line, everyone reads.
var policy = map[models.Role]map[Operation]bool{
	models.RoleSuperUser: {
		OpEmployeeCreate:   true,
		OpEmployeeUpdate:   true,
		OpEmployeeToggle:   true,
		OpEmployeeList:     true,
		OpEmployeeRead:     true,
		OpManagerList:      true,
		OpDepartmentCreate: true,
		OpDepartmentUpdate: true,
		OpDepartmentToggle: true,
		OpDepartmentList:   true,
		OpDepartmentRead:   true,
	},
	models.RoleManager: {
		OpEmployeeUpdate: true,
		OpEmployeeList:   true,
		OpEmployeeRead:   true,
		OpManagerList:    true,
		OpDepartmentList: true,
		OpDepartmentRead: true,
	},
	models.RoleEmployee: {
		OpEmployeeUpdate: true,
		OpEmployeeList:   true,
		OpEmployeeRead:   true,
		OpManagerList:    true,
		OpDepartmentList: true,
		OpDepartmentRead: true,
	},
}

// Allows reports whether role may attempt op. Unknown role values are denied.
func Allows(role models.Role, op Operation) bool {
	ops, ok := policy[role]
	if !ok {
		return false
	}
	return ops[op]
}

// CanEditEmployee scopes OpEmployeeUpdate to a concrete target: a super-user
// may edit anyone, a manager may edit their own record and their direct
// reports, an employee only their own record.
func CanEditEmployee(callerRole models.Role, callerID uint, target *models.Employee) bool {
	if !Allows(callerRole, OpEmployeeUpdate) {
		return false
	}
	switch callerRole {
	case models.RoleSuperUser:
		return true
	case models.RoleManager:
		if target.ID == callerID {
			return true
		}
		return target.ManagerID != nil && *target.ManagerID == callerID
	case models.RoleEmployee:
		return target.ID == callerID
	}
	return false
}

// CanSetRoleAndStatus reports whether the caller may change role and status
// fields on an employee. For everyone else those fields are silently dropped
// from update payloads, never rejected.
func CanSetRoleAndStatus(callerRole models.Role) bool {
	return callerRole == models.RoleSuperUser
}
