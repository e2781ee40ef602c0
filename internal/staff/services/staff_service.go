package services

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/hmsdev/hms-backend/internal/staff/models"
)

var (
	ErrStaffNotFound   = errors.New("staff not found")
	ErrStaffEmailTaken = errors.New("staff email already registered")
)

type StaffService struct {
	DB *sql.DB
}

func NewStaffService(db *sql.DB) *StaffService {
	return &StaffService{DB: db}
}

const staffColumns = `
	id, name, email, phone, role, department, qualification, experience,
	salary, joining_date, is_active, address, created_by, created_at, updated_at`

func scanStaff(row interface{ Scan(...interface{}) error }) (*models.Staff, error) {
	var st models.Staff
	var createdBy sql.NullInt64
	err := row.Scan(
		&st.ID, &st.Name, &st.Email, &st.Phone, &st.Role, &st.Department,
		&st.Qualification, &st.Experience, &st.Salary, &st.JoiningDate,
		&st.IsActive, &st.Address, &createdBy, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if createdBy.Valid {
		st.CreatedBy = &createdBy.Int64
	}
	return &st, nil
}

// Create inserts a staff member. The email must be unique across staff.
func (s *StaffService) Create(input models.StaffInput, createdBy int64) (*models.Staff, error) {
	var existingID int64
	err := s.DB.QueryRow("SELECT id FROM staff WHERE email = ?", input.Email).Scan(&existingID)
	if err == nil {
		return nil, ErrStaffEmailTaken
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	joiningDate := time.Now()
	if input.JoiningDate != "" {
		if parsed, err := time.Parse("2006-01-02", input.JoiningDate); err == nil {
			joiningDate = parsed
		}
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	now := time.Now()
	result, err := s.DB.Exec(`
		INSERT INTO staff
			(name, email, phone, role, department, qualification, experience,
			 salary, joining_date, is_active, address, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		input.Name, strings.ToLower(input.Email), input.Phone, input.Role,
		input.Department, input.Qualification, input.Experience, input.Salary,
		joiningDate, isActive, input.Address, createdBy, now, now,
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

// List returns active staff matching the filters, newest first. Deactivated
// staff never appear here.
func (s *StaffService) List(filter models.ListFilter) ([]models.Staff, error) {
	conditions := []string{"is_active = 1"}
	var args []interface{}

	if filter.Search != "" {
		conditions = append(conditions, "(name LIKE ? OR email LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	if filter.Role != "" {
		conditions = append(conditions, "role = ?")
		args = append(args, filter.Role)
	}
	if filter.Department != "" {
		conditions = append(conditions, "department = ?")
		args = append(args, filter.Department)
	}

	query := "SELECT" + staffColumns + " FROM staff WHERE " +
		strings.Join(conditions, " AND ") + " ORDER BY created_at DESC"
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	staff := []models.Staff{}
	for rows.Next() {
		st, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		staff = append(staff, *st)
	}
	return staff, rows.Err()
}

// GetByID fetches one staff member regardless of active flag.
func (s *StaffService) GetByID(id int64) (*models.Staff, error) {
	st, err := scanStaff(s.DB.QueryRow("SELECT"+staffColumns+" FROM staff WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

// Update replaces the mutable fields; setting isActive false deactivates the
// member, which removes them from listings and the attendance roster.
func (s *StaffService) Update(id int64, input models.StaffInput) (*models.Staff, error) {
	current, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Email != "" && !strings.EqualFold(input.Email, current.Email) {
		var existingID int64
		err := s.DB.QueryRow("SELECT id FROM staff WHERE email = ? AND id <> ?", strings.ToLower(input.Email), id).Scan(&existingID)
		if err == nil {
			return nil, ErrStaffEmailTaken
		} else if err != sql.ErrNoRows {
			return nil, err
		}
	}

	isActive := current.IsActive
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	_, err = s.DB.Exec(`
		UPDATE staff SET
			name = ?, email = ?, phone = ?, role = ?, department = ?,
			qualification = ?, experience = ?, salary = ?, is_active = ?,
			address = ?, updated_at = ?
		WHERE id = ?`,
		input.Name, strings.ToLower(input.Email), input.Phone, input.Role,
		input.Department, input.Qualification, input.Experience, input.Salary,
		isActive, input.Address, time.Now(), id,
	)
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}
