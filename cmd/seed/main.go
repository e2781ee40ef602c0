// Command seed wipes and repopulates the database with demo data: three
// login accounts, a staff roster, patients, bills and a week of attendance.
package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hmsdev/hms-backend/config"
	attendancemodels "github.com/hmsdev/hms-backend/internal/attendance/models"
	attendanceservices "github.com/hmsdev/hms-backend/internal/attendance/services"
	authmodels "github.com/hmsdev/hms-backend/internal/auth/models"
	authservices "github.com/hmsdev/hms-backend/internal/auth/services"
	billingmodels "github.com/hmsdev/hms-backend/internal/billing/models"
	billingservices "github.com/hmsdev/hms-backend/internal/billing/services"
	patientmodels "github.com/hmsdev/hms-backend/internal/patient/models"
	patientservices "github.com/hmsdev/hms-backend/internal/patient/services"
	staffmodels "github.com/hmsdev/hms-backend/internal/staff/models"
	staffservices "github.com/hmsdev/hms-backend/internal/staff/services"
	"github.com/hmsdev/hms-backend/pkg/logger"
	"github.com/hmsdev/hms-backend/pkg/storage/mariadb"
)

func main() {
	cfg := config.LoadConfig()
	logger.Setup(cfg.AppEnv)

	db := mariadb.Connect()

	for _, table := range []string{"attendance", "bill_items", "bills", "patients", "staff", "users"} {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			log.Fatal().Err(err).Str("table", table).Msg("Failed to clear table")
		}
	}
	if _, err := db.Exec("UPDATE counters SET value = 0 WHERE name = ?", "bill_number"); err != nil {
		log.Fatal().Err(err).Msg("Failed to reset bill counter")
	}
	log.Info().Msg("Cleared existing data")

	authService := authservices.NewAuthService(db)
	staffService := staffservices.NewStaffService(db)
	patientService := patientservices.NewPatientService(db)
	billingService := billingservices.NewBillingService(db)
	attendanceService := attendanceservices.NewAttendanceService(db)

	admin, err := authService.Register(authmodels.RegisterRequest{
		Name: "Dr. Admin Kumar", Email: "admin@hms.com", Password: "admin123",
		Role: "Admin", Department: "Administration",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin user")
	}
	mustRegister(authService, authmodels.RegisterRequest{
		Name: "Dr. Priya Sharma", Email: "doctor@hms.com", Password: "doctor123",
		Role: "Doctor", Department: "Cardiology",
	})
	mustRegister(authService, authmodels.RegisterRequest{
		Name: "Anita Singh", Email: "receptionist@hms.com", Password: "recep123",
		Role: "Receptionist", Department: "Front Desk",
	})
	log.Info().Msg("Users created")

	staffInputs := []staffmodels.StaffInput{
		{Name: "Dr. Priya Sharma", Email: "priya.sharma@hms.com", Phone: "9876543210", Role: "Doctor", Department: "Cardiology", Qualification: "MBBS, MD", Experience: 8, Salary: 150000},
		{Name: "Dr. Rajesh Patel", Email: "rajesh.patel@hms.com", Phone: "9876543211", Role: "Doctor", Department: "Orthopedics", Qualification: "MBBS, MS", Experience: 12, Salary: 180000},
		{Name: "Dr. Meena Gupta", Email: "meena.gupta@hms.com", Phone: "9876543212", Role: "Doctor", Department: "Pediatrics", Qualification: "MBBS, DCH", Experience: 6, Salary: 130000},
		{Name: "Sunita Verma", Email: "sunita.verma@hms.com", Phone: "9876543213", Role: "Nurse", Department: "ICU", Qualification: "BSc Nursing", Experience: 4, Salary: 45000},
		{Name: "Ravi Kumar", Email: "ravi.kumar@hms.com", Phone: "9876543214", Role: "Nurse", Department: "General Ward", Qualification: "GNM", Experience: 3, Salary: 38000},
		{Name: "Anita Singh", Email: "anita.singh@hms.com", Phone: "9876543215", Role: "Receptionist", Department: "Front Desk", Qualification: "BA", Experience: 2, Salary: 30000},
		{Name: "Mohammed Ali", Email: "mohammed.ali@hms.com", Phone: "9876543216", Role: "Lab Technician", Department: "Pathology", Qualification: "DMLT", Experience: 5, Salary: 42000},
		{Name: "Pooja Mehta", Email: "pooja.mehta@hms.com", Phone: "9876543217", Role: "Pharmacist", Department: "Pharmacy", Qualification: "B.Pharm", Experience: 3, Salary: 40000},
	}
	staffIDs := make([]int64, 0, len(staffInputs))
	for _, input := range staffInputs {
		st, err := staffService.Create(input, admin.ID)
		if err != nil {
			log.Fatal().Err(err).Str("email", input.Email).Msg("Failed to create staff")
		}
		staffIDs = append(staffIDs, st.ID)
	}
	log.Info().Int("count", len(staffIDs)).Msg("Staff created")

	names := []string{"Amit Sharma", "Priya Patel", "Rahul Singh", "Kavita Gupta", "Deepak Kumar", "Sneha Joshi", "Vikram Rao", "Ananya Das"}
	diagnoses := []string{"Hypertension", "Diabetes", "Fracture", "Fever", "Appendicitis", "Asthma", "Cardiac Arrest", "Pneumonia"}
	patientStatuses := []string{"Active", "Active", "Active", "Discharged"}

	patientIDs := make([]int64, 0, 25)
	for i := 0; i < 25; i++ {
		patientType := "OPD"
		ward := "OPD Floor"
		if i%3 == 0 {
			patientType = "IPD"
			ward = patientmodels.Wards[1+i%4]
		}
		p, err := patientService.Create(patientmodels.PatientInput{
			Name:      fmt.Sprintf("%s %d", names[i%len(names)], i+1),
			Age:       20 + i*2%50,
			Gender:    []string{"Male", "Female"}[i%2],
			Contact:   fmt.Sprintf("98765%05d", 43200+i),
			Type:      patientType,
			Ward:      ward,
			Diagnosis: diagnoses[i%len(diagnoses)],
			Status:    patientStatuses[i%4],
		}, admin.ID)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create patient")
		}
		patientIDs = append(patientIDs, p.ID)
	}
	log.Info().Int("count", len(patientIDs)).Msg("Patients created")

	billStatuses := []string{"Paid", "Pending", "Partial"}
	for i, patientID := range patientIDs[:10] {
		consultation := 500.0 + float64(i*100)
		_, err := billingService.Create(billingmodels.CreateBillRequest{
			PatientID: patientID,
			Items: []billingmodels.BillItemInput{
				{ServiceName: "Consultation", Quantity: 1, UnitPrice: consultation, Total: consultation},
				{ServiceName: "Lab Tests", Quantity: 2, UnitPrice: 350, Total: 700},
			},
			Discount:      float64(i%3) * 50,
			Tax:           10,
			PaymentStatus: billStatuses[i%3],
			PaymentMethod: []string{"Cash", "Card", "UPI"}[i%3],
		}, admin.ID)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create bill")
		}
	}
	log.Info().Msg("Bills created")

	attendanceStatuses := []string{"Present", "Present", "Present", "Late", "Absent", "Half Day", "Leave"}
	for day := 6; day >= 0; day-- {
		date := time.Now().AddDate(0, 0, -day).Format("2006-01-02")
		for i, staffID := range staffIDs {
			_, err := attendanceService.Mark(attendancemodels.MarkRequest{
				StaffID: staffID,
				Date:    date,
				Status:  attendanceStatuses[(day+i)%len(attendanceStatuses)],
				CheckIn: "09:00",
			}, admin.ID)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to mark attendance")
			}
		}
	}
	log.Info().Msg("Attendance created")

	log.Info().Msg("Seed complete")
}

func mustRegister(service *authservices.AuthService, req authmodels.RegisterRequest) {
	if _, err := service.Register(req); err != nil {
		log.Fatal().Err(err).Str("email", req.Email).Msg("Failed to create user")
	}
}
