package models

// Role is the authorization class of an employee. The numeric values are part
// of the wire contract with the front end and of the stored data, so they must
// not be reordered.
type Role int

const (
	RoleSuperUser Role = 0
	RoleManager   Role = 1
	RoleEmployee  Role = 2
)

func (r Role) Valid() bool {
	return r >= RoleSuperUser && r <= RoleEmployee
}

func (r Role) String() string {
	switch r {
	case RoleSuperUser:
		return "super_user"
	case RoleManager:
		return "manager"
	case RoleEmployee:
		return "employee"
	}
	return "unknown"
}
