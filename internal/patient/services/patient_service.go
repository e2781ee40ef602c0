package services

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/hmsdev/hms-backend/internal/patient/models"
)

var ErrPatientNotFound = errors.New("patient not found")

type PatientService struct {
	DB *sql.DB
}

func NewPatientService(db *sql.DB) *PatientService {
	return &PatientService{DB: db}
}

const patientColumns = `
	p.id, p.name, p.age, p.gender, p.contact, p.email, p.address, p.blood_group,
	p.type, p.ward, p.diagnosis, p.admission_date, p.discharge_date, p.status,
	p.assigned_doctor, p.created_by, u.name, d.name, p.created_at, p.updated_at`

const patientJoins = `
	FROM patients p
	LEFT JOIN users u ON p.created_by = u.id
	LEFT JOIN users d ON p.assigned_doctor = d.id`

func scanPatient(row interface{ Scan(...interface{}) error }) (*models.Patient, error) {
	var p models.Patient
	var dischargeDate sql.NullTime
	var assignedDoctor, createdBy sql.NullInt64
	var createdByName, doctorName sql.NullString

	err := row.Scan(
		&p.ID, &p.Name, &p.Age, &p.Gender, &p.Contact, &p.Email, &p.Address,
		&p.BloodGroup, &p.Type, &p.Ward, &p.Diagnosis, &p.AdmissionDate,
		&dischargeDate, &p.Status, &assignedDoctor, &createdBy,
		&createdByName, &doctorName, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dischargeDate.Valid {
		p.DischargeDate = &dischargeDate.Time
	}
	if assignedDoctor.Valid {
		p.AssignedDoctor = &assignedDoctor.Int64
	}
	if createdBy.Valid {
		p.CreatedBy = &createdBy.Int64
	}
	if createdByName.Valid {
		p.CreatedByName = &createdByName.String
	}
	if doctorName.Valid {
		p.DoctorName = &doctorName.String
	}
	return &p, nil
}

// Create inserts a new patient record stamped with the registering user.
func (s *PatientService) Create(input models.PatientInput, createdBy int64) (*models.Patient, error) {
	admissionDate := time.Now()
	if input.AdmissionDate != "" {
		if parsed, err := time.Parse("2006-01-02", input.AdmissionDate); err == nil {
			admissionDate = parsed
		}
	}
	status := input.Status
	if status == "" {
		status = "Active"
	}

	now := time.Now()
	result, err := s.DB.Exec(`
		INSERT INTO patients
			(name, age, gender, contact, email, address, blood_group, type, ward,
			 diagnosis, admission_date, status, assigned_doctor, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		input.Name, input.Age, input.Gender, input.Contact, input.Email,
		input.Address, input.BloodGroup, input.Type, input.Ward, input.Diagnosis,
		admissionDate, status, input.AssignedDoctor, createdBy, now, now,
	)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// List returns a filtered, paginated page of patients plus the total count
// matching the filter.
func (s *PatientService) List(filter models.ListFilter) ([]models.Patient, int, error) {
	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		conditions = append(conditions, "(p.name LIKE ? OR p.contact LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	if filter.Ward != "" {
		conditions = append(conditions, "p.ward = ?")
		args = append(args, filter.Ward)
	}
	if filter.Type != "" {
		conditions = append(conditions, "p.type = ?")
		args = append(args, filter.Type)
	}
	if filter.Status != "" {
		conditions = append(conditions, "p.status = ?")
		args = append(args, filter.Status)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM patients p" + where
	if err := s.DB.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	query := "SELECT" + patientColumns + patientJoins + where +
		" ORDER BY p.created_at DESC LIMIT ? OFFSET ?"
	rows, err := s.DB.Query(query, append(args, filter.Limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	patients := []models.Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		patients = append(patients, *p)
	}
	return patients, total, rows.Err()
}

// GetByID fetches a single patient with creator and doctor names joined in.
func (s *PatientService) GetByID(id int64) (*models.Patient, error) {
	query := "SELECT" + patientColumns + patientJoins + " WHERE p.id = ?"
	p, err := scanPatient(s.DB.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the mutable fields of an existing patient.
func (s *PatientService) Update(id int64, input models.PatientInput) (*models.Patient, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}

	var dischargeDate interface{}
	if input.DischargeDate != "" {
		if parsed, err := time.Parse("2006-01-02", input.DischargeDate); err == nil {
			dischargeDate = parsed
		}
	}

	_, err := s.DB.Exec(`
		UPDATE patients SET
			name = ?, age = ?, gender = ?, contact = ?, email = ?, address = ?,
			blood_group = ?, type = ?, ward = ?, diagnosis = ?, discharge_date = ?,
			status = ?, assigned_doctor = ?, updated_at = ?
		WHERE id = ?`,
		input.Name, input.Age, input.Gender, input.Contact, input.Email,
		input.Address, input.BloodGroup, input.Type, input.Ward, input.Diagnosis,
		dischargeDate, input.Status, input.AssignedDoctor, time.Now(), id,
	)
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Delete removes the patient record. Bills referencing it are untouched;
// deletions never cascade.
func (s *PatientService) Delete(id int64) error {
	result, err := s.DB.Exec("DELETE FROM patients WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPatientNotFound
	}
	return nil
}

// Stats aggregates today's admissions and a seven-day OPD/IPD series. Each
// day is counted by its own bounded range query over created_at.
func (s *PatientService) Stats() (*models.PatientStats, error) {
	today := startOfDay(time.Now())
	tomorrow := today.AddDate(0, 0, 1)

	totalToday, err := s.countAdmitted("", today, tomorrow)
	if err != nil {
		return nil, err
	}
	opdToday, err := s.countAdmitted("OPD", today, tomorrow)
	if err != nil {
		return nil, err
	}
	ipdToday, err := s.countAdmitted("IPD", today, tomorrow)
	if err != nil {
		return nil, err
	}

	var totalActive int
	if err := s.DB.QueryRow("SELECT COUNT(*) FROM patients p WHERE p.status = ?", "Active").Scan(&totalActive); err != nil {
		return nil, err
	}

	weekly := make([]models.DailyAdmissions, 0, 7)
	for i := 6; i >= 0; i-- {
		day := startOfDay(time.Now().AddDate(0, 0, -i))
		next := day.AddDate(0, 0, 1)
		opd, err := s.countAdmitted("OPD", day, next)
		if err != nil {
			return nil, err
		}
		ipd, err := s.countAdmitted("IPD", day, next)
		if err != nil {
			return nil, err
		}
		weekly = append(weekly, models.DailyAdmissions{
			Date: day.Weekday().String()[:3],
			OPD:  opd,
			IPD:  ipd,
		})
	}

	return &models.PatientStats{
		TotalToday:  totalToday,
		OpdToday:    opdToday,
		IpdToday:    ipdToday,
		TotalActive: totalActive,
		WeeklyData:  weekly,
	}, nil
}

func (s *PatientService) countAdmitted(patientType string, from, to time.Time) (int, error) {
	query := "SELECT COUNT(*) FROM patients p WHERE p.created_at >= ? AND p.created_at < ?"
	args := []interface{}{from, to}
	if patientType != "" {
		query += " AND p.type = ?"
		args = append(args, patientType)
	}
	var count int
	err := s.DB.QueryRow(query, args...).Scan(&count)
	return count, err
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
