package services

import (
	"database/sql"
	"time"

	"github.com/hmsdev/hms-backend/internal/attendance/models"
	staffmodels "github.com/hmsdev/hms-backend/internal/staff/models"
)

type AttendanceService struct {
	DB *sql.DB
}

func NewAttendanceService(db *sql.DB) *AttendanceService {
	return &AttendanceService{DB: db}
}

const attendanceColumns = `
	a.id, a.staff_id, a.date, a.status, a.check_in, a.check_out, a.notes,
	a.marked_by, s.name, s.role, s.department, a.created_at, a.updated_at`

const attendanceJoins = `
	FROM attendance a
	JOIN staff s ON a.staff_id = s.id`

func scanAttendance(row interface{ Scan(...interface{}) error }) (*models.Attendance, error) {
	var a models.Attendance
	var markedBy sql.NullInt64
	var staffName, staffRole, staffDept sql.NullString

	err := row.Scan(
		&a.ID, &a.StaffID, &a.Date, &a.Status, &a.CheckIn, &a.CheckOut,
		&a.Notes, &markedBy, &staffName, &staffRole, &staffDept,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if markedBy.Valid {
		a.MarkedBy = &markedBy.Int64
	}
	if staffName.Valid {
		a.StaffName = &staffName.String
	}
	if staffRole.Valid {
		a.StaffRole = &staffRole.String
	}
	if staffDept.Valid {
		a.StaffDept = &staffDept.String
	}
	return &a, nil
}

// Mark upserts one record by its (staffId, date) natural key: an existing
// record gets its status, check times, notes and marking user overwritten in
// place; otherwise a new record is inserted. The unique key on
// (staff_id, date) turns a racing duplicate insert into an error instead of
// silent duplication.
func (s *AttendanceService) Mark(req models.MarkRequest, markedBy int64) (*models.Attendance, error) {
	var existingID int64
	err := s.DB.QueryRow(
		"SELECT id FROM attendance WHERE staff_id = ? AND date = ?",
		req.StaffID, req.Date,
	).Scan(&existingID)

	switch {
	case err == nil:
		_, err = s.DB.Exec(`
			UPDATE attendance SET
				status = ?, check_in = ?, check_out = ?, notes = ?, marked_by = ?, updated_at = ?
			WHERE id = ?`,
			req.Status, req.CheckIn, req.CheckOut, req.Notes, markedBy, time.Now(), existingID,
		)
		if err != nil {
			return nil, err
		}
		return s.getByID(existingID)
	case err == sql.ErrNoRows:
		now := time.Now()
		result, err := s.DB.Exec(`
			INSERT INTO attendance
				(staff_id, date, status, check_in, check_out, notes, marked_by, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			req.StaffID, req.Date, req.Status, req.CheckIn, req.CheckOut,
			req.Notes, markedBy, now, now,
		)
		if err != nil {
			return nil, err
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, err
		}
		return s.getByID(id)
	default:
		return nil, err
	}
}

// MarkBulk upserts each record in order, stopping at the first failure.
func (s *AttendanceService) MarkBulk(records []models.MarkRequest, markedBy int64) ([]models.Attendance, error) {
	results := make([]models.Attendance, 0, len(records))
	for _, record := range records {
		marked, err := s.Mark(record, markedBy)
		if err != nil {
			return nil, err
		}
		results = append(results, *marked)
	}
	return results, nil
}

func (s *AttendanceService) getByID(id int64) (*models.Attendance, error) {
	query := "SELECT" + attendanceColumns + attendanceJoins + " WHERE a.id = ?"
	return scanAttendance(s.DB.QueryRow(query, id))
}

// List returns attendance records matching the filter, newest date first.
func (s *AttendanceService) List(filter models.ListFilter) ([]models.Attendance, error) {
	query := "SELECT" + attendanceColumns + attendanceJoins
	var conditions []string
	var args []interface{}

	if filter.Date != "" {
		conditions = append(conditions, "a.date = ?")
		args = append(args, filter.Date)
	}
	if filter.StaffID != 0 {
		conditions = append(conditions, "a.staff_id = ?")
		args = append(args, filter.StaffID)
	}
	if filter.Month != "" {
		conditions = append(conditions, "a.date LIKE ?")
		args = append(args, filter.Month+"%")
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY a.date DESC, a.id"

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.Attendance{}
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *a)
	}
	return records, rows.Err()
}

// DailyRoster left-joins the day's records onto the full active staff
// roster: every active staff member appears exactly once, with a null
// attendance when nobody has marked them yet.
func (s *AttendanceService) DailyRoster(date string) ([]models.RosterEntry, error) {
	records, err := s.List(models.ListFilter{Date: date})
	if err != nil {
		return nil, err
	}
	byStaff := make(map[int64]*models.Attendance, len(records))
	for i := range records {
		byStaff[records[i].StaffID] = &records[i]
	}

	staff, err := s.activeStaff()
	if err != nil {
		return nil, err
	}

	roster := make([]models.RosterEntry, 0, len(staff))
	for _, member := range staff {
		roster = append(roster, models.RosterEntry{
			Staff:      member,
			Attendance: byStaff[member.ID],
		})
	}
	return roster, nil
}

// MonthlySummary groups the month's records by staff and counts each status.
// Staff with no records in the month do not appear; the daily roster is the
// view that always covers the whole active roster.
func (s *AttendanceService) MonthlySummary(month string) ([]map[string]interface{}, error) {
	records, err := s.List(models.ListFilter{Month: month})
	if err != nil {
		return nil, err
	}

	summaries := make(map[int64]map[string]interface{})
	var order []int64
	for _, record := range records {
		entry, ok := summaries[record.StaffID]
		if !ok {
			entry = map[string]interface{}{
				"staff": map[string]interface{}{
					"id":         record.StaffID,
					"name":       deref(record.StaffName),
					"role":       deref(record.StaffRole),
					"department": deref(record.StaffDept),
				},
			}
			for _, status := range models.Statuses {
				entry[status] = 0
			}
			summaries[record.StaffID] = entry
			order = append(order, record.StaffID)
		}
		if count, ok := entry[record.Status].(int); ok {
			entry[record.Status] = count + 1
		}
	}

	result := make([]map[string]interface{}, 0, len(order))
	for _, staffID := range order {
		result = append(result, summaries[staffID])
	}
	return result, nil
}

func (s *AttendanceService) activeStaff() ([]staffmodels.Staff, error) {
	rows, err := s.DB.Query(`
		SELECT id, name, email, phone, role, department, qualification,
			experience, salary, joining_date, is_active, address, created_by,
			created_at, updated_at
		FROM staff WHERE is_active = 1 ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	staff := []staffmodels.Staff{}
	for rows.Next() {
		var st staffmodels.Staff
		var createdBy sql.NullInt64
		err := rows.Scan(
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
		staff = append(staff, st)
	}
	return staff, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
