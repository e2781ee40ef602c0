package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmsdev/hms-backend/internal/staff/models"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *StaffService) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewStaffService(db)
}

func staffRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "email", "phone", "role", "department", "qualification",
		"experience", "salary", "joining_date", "is_active", "address",
		"created_by", "created_at", "updated_at",
	})
}

func addStaffRow(rows *sqlmock.Rows, id int64, name, email, role string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, name, email, "9000000001", role, "General Medicine",
		"MBBS", 5, 85000.0, now, true, "", int64(1), now, now)
}

func TestCreate_LowercasesEmail(t *testing.T) {
	db, mock, service := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id FROM staff").
		WithArgs("Rajesh.Verma@hospital.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO staff").
		WithArgs("Dr. Rajesh Verma", "rajesh.verma@hospital.com", "9000000001",
			"Doctor", "General Medicine", "MBBS", 5, 85000.0, sqlmock.AnyArg(),
			true, "", int64(1), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectQuery("FROM staff WHERE id").
		WithArgs(int64(4)).
		WillReturnRows(addStaffRow(staffRows(), 4, "Dr. Rajesh Verma", "rajesh.verma@hospital.com", "Doctor"))

	staff, err := service.Create(models.StaffInput{
		Name:          "Dr. Rajesh Verma",
		Email:         "Rajesh.Verma@hospital.com",
		Phone:         "9000000001",
		Role:          "Doctor",
		Department:    "General Medicine",
		Qualification: "MBBS",
		Experience:    5,
		Salary:        85000,
	}, 1)

	require.NoError(t, err)
	assert.Equal(t, "rajesh.verma@hospital.com", staff.Email)
	assert.True(t, staff.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmailStoresNothing(t *testing.T) {
	db, mock, service := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id FROM staff").
		WithArgs("rajesh.verma@hospital.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(4)))

	_, err := service.Create(models.StaffInput{
		Name:  "Dr. Rajesh Verma",
		Email: "rajesh.verma@hospital.com",
		Role:  "Doctor",
	}, 1)

	assert.ErrorIs(t, err, ErrStaffEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_OnlyActiveStaff(t *testing.T) {
	db, mock, service := setupMockDB(t)
	defer db.Close()

	rows := staffRows()
	addStaffRow(rows, 4, "Dr. Rajesh Verma", "rajesh.verma@hospital.com", "Doctor")
	mock.ExpectQuery("FROM staff WHERE is_active = 1").
		WillReturnRows(rows)

	staff, err := service.List(models.ListFilter{})

	require.NoError(t, err)
	require.Len(t, staff, 1)
	assert.True(t, staff[0].IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_RoleFilter(t *testing.T) {
	db, mock, service := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery("FROM staff WHERE is_active = 1 AND role").
		WithArgs("Nurse").
		WillReturnRows(staffRows())

	staff, err := service.List(models.ListFilter{Role: "Nurse"})

	require.NoError(t, err)
	assert.Empty(t, staff)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_RejectsEmailAlreadyInUse(t *testing.T) {
	db, mock, service := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery("FROM staff WHERE id").
		WithArgs(int64(4)).
		WillReturnRows(addStaffRow(staffRows(), 4, "Dr. Rajesh Verma", "rajesh.verma@hospital.com", "Doctor"))
	mock.ExpectQuery("SELECT id FROM staff WHERE email").
		WithArgs("sunita.rao@hospital.com", int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	_, err := service.Update(4, models.StaffInput{
		Name:  "Dr. Rajesh Verma",
		Email: "sunita.rao@hospital.com",
		Role:  "Doctor",
	})

	assert.ErrorIs(t, err, ErrStaffEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock, service := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery("FROM staff WHERE id").
		WithArgs(int64(99)).
		WillReturnRows(staffRows())

	_, err := service.GetByID(99)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}
