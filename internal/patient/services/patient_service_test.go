package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmsdev/hms-backend/internal/patient/models"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PatientService) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewPatientService(db)
}

func patientRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "age", "gender", "contact", "email", "address",
		"blood_group", "type", "ward", "diagnosis", "admission_date",
		"discharge_date", "status", "assigned_doctor", "created_by",
		"u_name", "d_name", "created_at", "updated_at",
	})
}

func addPatientRow(rows *sqlmock.Rows, id int64, name, patientType, ward string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, name, 34, "Male", "9876543210", "", "", "",
		patientType, ward, "Fever", now, nil, "Active", nil, int64(1),
		"Dr. Admin", nil, now, now)
}

func TestCreate_InsertsAndReturnsPatient(t *testing.T) {
	db, mock, service := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO patients").
		WithArgs("Amit Sharma", 34, "Male", "9876543210", "", "", "", "OPD",
			"OPD Floor", "Fever", sqlmock.AnyArg(), "Active", nil, int64(1),
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(9, 1))

	mock.ExpectQuery("FROM patients p").
		WithArgs(int64(9)).
		WillReturnRows(addPatientRow(patientRows(), 9, "Amit Sharma", "OPD", "OPD Floor"))

	patient, err := service.Create(models.PatientInput{
		Name:      "Amit Sharma",
		Age:       34,
		Gender:    "Male",
		Contact:   "9876543210",
		Type:      "OPD",
		Ward:      "OPD Floor",
		Diagnosis: "Fever",
	}, 1)

	require.NoError(t, err)
	assert.Equal(t, int64(9), patient.ID)
	assert.Equal(t, "OPD Floor", patient.Ward)
	assert.Nil(t, patient.DischargeDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_AppliesFiltersAndPagination(t *testing.T) {
	db, mock, service := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("%sharma%", "%sharma%", "IPD").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := patientRows()
	addPatientRow(rows, 3, "Priya Sharma", "IPD", "ICU Floor")
	mock.ExpectQuery("FROM patients p").
		WithArgs("%sharma%", "%sharma%", "IPD", 20, 0).
		WillReturnRows(rows)

	patients, total, err := service.List(models.ListFilter{
		Search: "sharma",
		Type:   "IPD",
		Page:   1,
		Limit:  20,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, patients, 1)
	assert.Equal(t, "Priya Sharma", patients[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock, service := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery("FROM patients p").
		WithArgs(int64(99)).
		WillReturnRows(patientRows())

	_, err := service.GetByID(99)
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	db, mock, service := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM patients").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := service.Delete(99)
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestStats_CountsTodayAndWeek(t *testing.T) {
	db, mock, service := setupMockDB(t)
	defer db.Close()

	count := func(n int) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"count"}).AddRow(n)
	}

	// today total / OPD / IPD, then active
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(count(5))
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(count(3))
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(count(2))
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(count(12))
	// seven days x (OPD, IPD)
	for i := 0; i < 7; i++ {
		mock.ExpectQuery("SELECT COUNT").WillReturnRows(count(1))
		mock.ExpectQuery("SELECT COUNT").WillReturnRows(count(0))
	}

	stats, err := service.Stats()

	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalToday)
	assert.Equal(t, 3, stats.OpdToday)
	assert.Equal(t, 2, stats.IpdToday)
	assert.Equal(t, 12, stats.TotalActive)
	require.Len(t, stats.WeeklyData, 7)
	assert.Equal(t, 1, stats.WeeklyData[0].OPD)
	assert.Equal(t, 0, stats.WeeklyData[0].IPD)
	// Series ends on today.
	assert.Equal(t, time.Now().Weekday().String()[:3], stats.WeeklyData[6].Date)
	assert.NoError(t, mock.ExpectationsWereMet())
}
