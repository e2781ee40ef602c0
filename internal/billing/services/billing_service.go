package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hmsdev/hms-backend/internal/billing/models"
)

var ErrBillNotFound = errors.New("bill not found")

type BillingService struct {
	DB *sql.DB
}

func NewBillingService(db *sql.DB) *BillingService {
	return &BillingService{DB: db}
}

// billTotals derives the amounts from caller-supplied line items:
// subtotal is the sum of the item totals, and the grand total applies the
// discount and the tax percentage on the subtotal.
func billTotals(items []models.BillItemInput, discount, tax float64) (subtotal, total float64) {
	for _, item := range items {
		subtotal += item.Total
	}
	total = subtotal - discount + subtotal*tax/100
	return subtotal, total
}

// formatBillNumber renders a sequence value as the human-readable number.
func formatBillNumber(seq int64) string {
	return fmt.Sprintf("HMS-%05d", seq)
}

// Create stores a bill with its line items. The bill number comes from the
// counters row, incremented atomically inside the same transaction, so
// concurrent creations cannot allocate the same number. The number is
// assigned exactly once, immediately before the insert.
func (s *BillingService) Create(req models.CreateBillRequest, createdBy int64) (*models.Bill, error) {
	subtotal, totalAmount := billTotals(req.Items, req.Discount, req.Tax)

	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = "Pending"
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return nil, err
	}

	result, err := tx.Exec(
		"UPDATE counters SET value = LAST_INSERT_ID(value + 1) WHERE name = ?",
		"bill_number",
	)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	seq, err := result.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	billNumber := formatBillNumber(seq)

	now := time.Now()
	result, err = tx.Exec(`
		INSERT INTO bills
			(patient_id, bill_number, subtotal, discount, tax, total_amount,
			 payment_status, payment_method, notes, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.PatientID, billNumber, subtotal, req.Discount, req.Tax, totalAmount,
		paymentStatus, req.PaymentMethod, req.Notes, createdBy, now, now,
	)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	billID, err := result.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, item := range req.Items {
		if _, err := tx.Exec(`
			INSERT INTO bill_items (bill_id, service_name, quantity, unit_price, total)
			VALUES (?, ?, ?, ?, ?)`,
			billID, item.ServiceName, item.Quantity, item.UnitPrice, item.Total,
		); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.GetByID(billID)
}

const billColumns = `
	b.id, b.patient_id, b.bill_number, b.subtotal, b.discount, b.tax,
	b.total_amount, b.payment_status, b.payment_method, b.notes, b.created_by,
	u.name, p.name, p.contact, p.type, p.ward, b.created_at, b.updated_at`

const billJoins = `
	FROM bills b
	LEFT JOIN patients p ON b.patient_id = p.id
	LEFT JOIN users u ON b.created_by = u.id`

func scanBill(row interface{ Scan(...interface{}) error }) (*models.Bill, error) {
	var b models.Bill
	var createdBy sql.NullInt64
	var createdByName, patientName, patientContact, patientType, patientWard sql.NullString

	err := row.Scan(
		&b.ID, &b.PatientID, &b.BillNumber, &b.Subtotal, &b.Discount, &b.Tax,
		&b.TotalAmount, &b.PaymentStatus, &b.PaymentMethod, &b.Notes,
		&createdBy, &createdByName, &patientName, &patientContact,
		&patientType, &patientWard, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if createdBy.Valid {
		b.CreatedBy = &createdBy.Int64
	}
	if createdByName.Valid {
		b.CreatedByName = &createdByName.String
	}
	if patientName.Valid {
		b.PatientName = &patientName.String
	}
	if patientContact.Valid {
		b.PatientContact = &patientContact.String
	}
	if patientType.Valid {
		b.PatientType = &patientType.String
	}
	if patientWard.Valid {
		b.PatientWard = &patientWard.String
	}
	return &b, nil
}

func (s *BillingService) loadItems(bill *models.Bill) error {
	rows, err := s.DB.Query(
		"SELECT id, service_name, quantity, unit_price, total FROM bill_items WHERE bill_id = ? ORDER BY id",
		bill.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	bill.Items = []models.BillItem{}
	for rows.Next() {
		var item models.BillItem
		if err := rows.Scan(&item.ID, &item.ServiceName, &item.Quantity, &item.UnitPrice, &item.Total); err != nil {
			return err
		}
		bill.Items = append(bill.Items, item)
	}
	return rows.Err()
}

// List returns a page of bills, optionally filtered by payment status,
// newest first, with patient and creator details joined in.
func (s *BillingService) List(paymentStatus string, page, limit int) ([]models.Bill, int, error) {
	where := ""
	var args []interface{}
	if paymentStatus != "" {
		where = " WHERE b.payment_status = ?"
		args = append(args, paymentStatus)
	}

	var total int
	if err := s.DB.QueryRow("SELECT COUNT(*) FROM bills b"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := "SELECT" + billColumns + billJoins + where +
		" ORDER BY b.created_at DESC LIMIT ? OFFSET ?"
	rows, err := s.DB.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	bills := []models.Bill{}
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, 0, err
		}
		bills = append(bills, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range bills {
		if err := s.loadItems(&bills[i]); err != nil {
			return nil, 0, err
		}
	}
	return bills, total, nil
}

// GetByPatient returns every bill for one patient, newest first.
func (s *BillingService) GetByPatient(patientID int64) ([]models.Bill, error) {
	query := "SELECT" + billColumns + billJoins +
		" WHERE b.patient_id = ? ORDER BY b.created_at DESC"
	rows, err := s.DB.Query(query, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bills := []models.Bill{}
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range bills {
		if err := s.loadItems(&bills[i]); err != nil {
			return nil, err
		}
	}
	return bills, nil
}

// GetByID fetches one bill including its line items.
func (s *BillingService) GetByID(id int64) (*models.Bill, error) {
	query := "SELECT" + billColumns + billJoins + " WHERE b.id = ?"
	b, err := scanBill(s.DB.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, ErrBillNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.loadItems(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Update changes payment fields, notes, discount and tax. Discount or tax
// changes re-derive the total from the stored subtotal; the bill number and
// items never change.
func (s *BillingService) Update(id int64, req models.UpdateBillRequest) (*models.Bill, error) {
	bill, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Discount != nil {
		bill.Discount = *req.Discount
	}
	if req.Tax != nil {
		bill.Tax = *req.Tax
	}
	if req.Notes != nil {
		bill.Notes = *req.Notes
	}
	if req.PaymentStatus != nil {
		bill.PaymentStatus = *req.PaymentStatus
	}
	if req.PaymentMethod != nil {
		bill.PaymentMethod = *req.PaymentMethod
	}
	bill.TotalAmount = bill.Subtotal - bill.Discount + bill.Subtotal*bill.Tax/100

	_, err = s.DB.Exec(`
		UPDATE bills SET
			discount = ?, tax = ?, total_amount = ?, payment_status = ?,
			payment_method = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		bill.Discount, bill.Tax, bill.TotalAmount, bill.PaymentStatus,
		bill.PaymentMethod, bill.Notes, time.Now(), id,
	)
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Stats computes today's collected revenue and a seven-day series, one
// bounded range query per day. Pending bills never count as revenue.
func (s *BillingService) Stats() (*models.BillStats, error) {
	today := startOfDay(time.Now())
	tomorrow := today.AddDate(0, 0, 1)

	revenueToday, err := s.revenueInRange(today, tomorrow)
	if err != nil {
		return nil, err
	}

	weekly := make([]models.DailyRevenue, 0, 7)
	for i := 6; i >= 0; i-- {
		day := startOfDay(time.Now().AddDate(0, 0, -i))
		next := day.AddDate(0, 0, 1)
		revenue, err := s.revenueInRange(day, next)
		if err != nil {
			return nil, err
		}
		weekly = append(weekly, models.DailyRevenue{
			Date:    day.Weekday().String()[:3],
			Revenue: revenue,
		})
	}

	return &models.BillStats{
		RevenueToday:  revenueToday,
		WeeklyRevenue: weekly,
	}, nil
}

func (s *BillingService) revenueInRange(from, to time.Time) (float64, error) {
	var revenue float64
	err := s.DB.QueryRow(`
		SELECT COALESCE(SUM(total_amount), 0) FROM bills
		WHERE created_at >= ? AND created_at < ? AND payment_status <> ?`,
		from, to, "Pending",
	).Scan(&revenue)
	return revenue, err
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
