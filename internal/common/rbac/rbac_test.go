package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminHasEveryPermission(t *testing.T) {
	perms := []Permission{
		PermRegisterPatients, PermUpdatePatients, PermDeletePatients,
		PermManageStaff, PermCreateBills, PermUpdateBills, PermMarkAttendance,
	}
	for _, perm := range perms {
		assert.True(t, Allowed("Admin", perm))
	}
}

func TestReceptionistScope(t *testing.T) {
	assert.True(t, Allowed("Receptionist", PermRegisterPatients))
	assert.True(t, Allowed("Receptionist", PermUpdatePatients))
	assert.True(t, Allowed("Receptionist", PermCreateBills))
	assert.True(t, Allowed("Receptionist", PermUpdateBills))

	assert.False(t, Allowed("Receptionist", PermDeletePatients))
	assert.False(t, Allowed("Receptionist", PermManageStaff))
	assert.False(t, Allowed("Receptionist", PermMarkAttendance))
}

func TestUnknownRolesCarryNothing(t *testing.T) {
	for _, role := range []string{"Doctor", "Nurse", "Staff", ""} {
		assert.False(t, Allowed(role, PermMarkAttendance))
		assert.False(t, Allowed(role, PermRegisterPatients))
	}
}
