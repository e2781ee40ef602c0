package models

import "time"

// Admission types, wards and statuses are fixed enumerations; IPD patients
// occupy a real ward while OPD patients sit on the "OPD Floor" pseudo-ward.
var (
	Types    = []string{"OPD", "IPD"}
	Wards    = []string{"OPD Floor", "ICU Floor", "General Ward", "Private Ward", "Emergency"}
	Statuses = []string{"Active", "Discharged", "Critical"}
)

type Patient struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Age            int        `json:"age"`
	Gender         string     `json:"gender"`
	Contact        string     `json:"contact"`
	Email          string     `json:"email"`
	Address        string     `json:"address"`
	BloodGroup     string     `json:"bloodGroup"`
	Type           string     `json:"type"`
	Ward           string     `json:"ward"`
	Diagnosis      string     `json:"diagnosis"`
	AdmissionDate  time.Time  `json:"admissionDate"`
	DischargeDate  *time.Time `json:"dischargeDate"`
	Status         string     `json:"status"`
	AssignedDoctor *int64     `json:"assignedDoctor"`
	CreatedBy      *int64     `json:"createdBy"`
	CreatedByName  *string    `json:"createdByName,omitempty"`
	DoctorName     *string    `json:"assignedDoctorName,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// PatientInput is the create/update payload.
type PatientInput struct {
	Name           string `json:"name"`
	Age            int    `json:"age"`
	Gender         string `json:"gender"`
	Contact        string `json:"contact"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	BloodGroup     string `json:"bloodGroup"`
	Type           string `json:"type"`
	Ward           string `json:"ward"`
	Diagnosis      string `json:"diagnosis"`
	AdmissionDate  string `json:"admissionDate"`
	DischargeDate  string `json:"dischargeDate"`
	Status         string `json:"status"`
	AssignedDoctor *int64 `json:"assignedDoctor"`
}

// ListFilter narrows the patient listing.
type ListFilter struct {
	Search string
	Ward   string
	Type   string
	Status string
	Page   int
	Limit  int
}

type DailyAdmissions struct {
	Date string `json:"date"`
	OPD  int    `json:"OPD"`
	IPD  int    `json:"IPD"`
}

type PatientStats struct {
	TotalToday  int               `json:"totalToday"`
	OpdToday    int               `json:"opdToday"`
	IpdToday    int               `json:"ipdToday"`
	TotalActive int               `json:"totalActive"`
	WeeklyData  []DailyAdmissions `json:"weeklyData"`
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func ValidType(t string) bool   { return contains(Types, t) }
func ValidWard(w string) bool   { return contains(Wards, w) }
func ValidStatus(s string) bool { return contains(Statuses, s) }
