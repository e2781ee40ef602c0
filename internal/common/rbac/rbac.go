// Package rbac maps user roles to an explicit set of capabilities. Route
// guards ask for a permission, never for a role name, so widening access for
// a role is a one-line change here.
package rbac

type Permission int

const (
	PermRegisterPatients Permission = iota
	PermUpdatePatients
	PermDeletePatients
	PermManageStaff
	PermCreateBills
	PermUpdateBills
	PermMarkAttendance
)

var rolePermissions = map[string][]Permission{
	"Admin": {
		PermRegisterPatients,
		PermUpdatePatients,
		PermDeletePatients,
		PermManageStaff,
		PermCreateBills,
		PermUpdateBills,
		PermMarkAttendance,
	},
	"Receptionist": {
		PermRegisterPatients,
		PermUpdatePatients,
		PermCreateBills,
		PermUpdateBills,
	},
}

// Allowed reports whether the role carries the permission. Unknown roles
// carry nothing.
func Allowed(role string, perm Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}
