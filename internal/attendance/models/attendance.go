package models

import (
	"time"

	staffmodels "github.com/hmsdev/hms-backend/internal/staff/models"
)

// Statuses an attendance record can carry. Summary maps are keyed by these
// exact strings, including the space in "Half Day".
var Statuses = []string{"Present", "Absent", "Late", "Half Day", "Leave"}

// Attendance is a (staff, calendar date) pair. The date is plain
// YYYY-MM-DD text so month filtering is a prefix match.
type Attendance struct {
	ID        int64     `json:"id"`
	StaffID   int64     `json:"staffId"`
	Date      string    `json:"date"`
	Status    string    `json:"status"`
	CheckIn   string    `json:"checkIn"`
	CheckOut  string    `json:"checkOut"`
	Notes     string    `json:"notes"`
	MarkedBy  *int64    `json:"markedBy"`
	StaffName *string   `json:"staffName,omitempty"`
	StaffRole *string   `json:"staffRole,omitempty"`
	StaffDept *string   `json:"staffDepartment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MarkRequest upserts one record by its (staffId, date) natural key.
type MarkRequest struct {
	StaffID  int64  `json:"staffId"`
	Date     string `json:"date"`
	Status   string `json:"status"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Notes    string `json:"notes"`
}

type BulkMarkRequest struct {
	Records []MarkRequest `json:"records"`
}

// RosterEntry pairs an active staff member with their attendance for one
// day; Attendance is null for staff not yet marked.
type RosterEntry struct {
	Staff      staffmodels.Staff `json:"staff"`
	Attendance *Attendance       `json:"attendance"`
}

// ListFilter narrows the attendance listing. Month is a YYYY-MM prefix.
type ListFilter struct {
	Date    string
	StaffID int64
	Month   string
}

func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}
