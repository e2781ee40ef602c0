package models

import "time"

// Roles a staff member can hold.
var Roles = []string{
	"Doctor", "Nurse", "Receptionist", "Pharmacist",
	"Lab Technician", "Admin", "Security", "Cleaner",
}

type Staff struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Role          string    `json:"role"`
	Department    string    `json:"department"`
	Qualification string    `json:"qualification"`
	Experience    int       `json:"experience"`
	Salary        float64   `json:"salary"`
	JoiningDate   time.Time `json:"joiningDate"`
	IsActive      bool      `json:"isActive"`
	Address       string    `json:"address"`
	CreatedBy     *int64    `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type StaffInput struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Role          string  `json:"role"`
	Department    string  `json:"department"`
	Qualification string  `json:"qualification"`
	Experience    int     `json:"experience"`
	Salary        float64 `json:"salary"`
	JoiningDate   string  `json:"joiningDate"`
	IsActive      *bool   `json:"isActive"`
	Address       string  `json:"address"`
}

// ListFilter narrows the staff listing; only active staff are listed.
type ListFilter struct {
	Search     string
	Role       string
	Department string
}

func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}
