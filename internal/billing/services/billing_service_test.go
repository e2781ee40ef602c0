package services

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmsdev/hms-backend/internal/billing/models"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *BillingService) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewBillingService(db)
}

func TestBillTotals(t *testing.T) {
	items := []models.BillItemInput{
		{ServiceName: "X-Ray", Quantity: 2, UnitPrice: 500, Total: 1000},
	}

	subtotal, total := billTotals(items, 0, 10)
	assert.InDelta(t, 1000.0, subtotal, 0.001)
	assert.InDelta(t, 1100.0, total, 0.001)
}

func TestBillTotals_DiscountAndMultipleItems(t *testing.T) {
	items := []models.BillItemInput{
		{ServiceName: "Consultation", Quantity: 1, UnitPrice: 500, Total: 500},
		{ServiceName: "Lab Tests", Quantity: 3, UnitPrice: 100, Total: 300},
	}

	subtotal, total := billTotals(items, 100, 5)
	assert.InDelta(t, 800.0, subtotal, 0.001)
	// 800 - 100 + 800*0.05
	assert.InDelta(t, 740.0, total, 0.001)
}

func TestFormatBillNumber(t *testing.T) {
	assert.Equal(t, "HMS-00001", formatBillNumber(1))
	assert.Equal(t, "HMS-00042", formatBillNumber(42))
	assert.Equal(t, "HMS-12345", formatBillNumber(12345))
}

func billRow(id int64, number string, subtotal, discount, tax, total float64, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "patient_id", "bill_number", "subtotal", "discount", "tax",
		"total_amount", "payment_status", "payment_method", "notes",
		"created_by", "u_name", "p_name", "p_contact", "p_type", "p_ward",
		"created_at", "updated_at",
	}).AddRow(id, int64(1), number, subtotal, discount, tax, total, status,
		"", "", int64(7), "Dr. Admin", "Amit Sharma", "9876543210", "OPD",
		"OPD Floor", now, now)
}

func emptyItemRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "service_name", "quantity", "unit_price", "total"})
}

func expectCreate(mock sqlmock.Sqlmock, seq, billID int64, subtotal, discount, tax, total float64) {
	number := fmt.Sprintf("HMS-%05d", seq)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE counters").
		WithArgs("bill_number").
		WillReturnResult(sqlmock.NewResult(seq, 1))
	mock.ExpectExec("INSERT INTO bills").
		WithArgs(int64(1), number, subtotal, discount, tax, total, "Pending",
			"", "", int64(7), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(billID, 1))
	mock.ExpectExec("INSERT INTO bill_items").
		WithArgs(billID, "X-Ray", 2, 500.0, 1000.0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("FROM bills b").
		WithArgs(billID).
		WillReturnRows(billRow(billID, number, subtotal, discount, tax, total, "Pending"))
	mock.ExpectQuery("FROM bill_items").
		WithArgs(billID).
		WillReturnRows(emptyItemRows().
			AddRow(int64(1), "X-Ray", 2, 500.0, 1000.0))
}

func TestCreate_ComputesTotalsAndAssignsNumber(t *testing.T) {
	db, mock, service := setupMockDB(t)
	defer db.Close()

	expectCreate(mock, 1, 10, 1000.0, 0.0, 10.0, 1100.0)

	bill, err := service.Create(models.CreateBillRequest{
		PatientID: 1,
		Items: []models.BillItemInput{
			{ServiceName: "X-Ray", Quantity: 2, UnitPrice: 500, Total: 1000},
		},
		Tax: 10,
	}, 7)

	require.NoError(t, err)
	assert.Equal(t, "HMS-00001", bill.BillNumber)
	assert.InDelta(t, 1000.0, bill.Subtotal, 0.001)
	assert.InDelta(t, 1100.0, bill.TotalAmount, 0.001)
	assert.Equal(t, "Pending", bill.PaymentStatus)
	assert.Len(t, bill.Items, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_SequentialNumbers(t *testing.T) {
	db, mock, service := setupMockDB(t)
	defer db.Close()

	for seq := int64(1); seq <= 3; seq++ {
		expectCreate(mock, seq, 100+seq, 1000.0, 0.0, 10.0, 1100.0)
	}

	req := models.CreateBillRequest{
		PatientID: 1,
		Items: []models.BillItemInput{
			{ServiceName: "X-Ray", Quantity: 2, UnitPrice: 500, Total: 1000},
		},
		Tax: 10,
	}

	var numbers []string
	for i := 0; i < 3; i++ {
		bill, err := service.Create(req, 7)
		require.NoError(t, err)
		numbers = append(numbers, bill.BillNumber)
	}

	assert.Equal(t, []string{"HMS-00001", "HMS-00002", "HMS-00003"}, numbers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_RollsBackOnInsertFailure(t *testing.T) {
	db, mock, service := setupMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE counters").
		WithArgs("bill_number").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO bills").
		WillReturnError(fmt.Errorf("duplicate key"))
	mock.ExpectRollback()

	_, err := service.Create(models.CreateBillRequest{
		PatientID: 1,
		Items: []models.BillItemInput{
			{ServiceName: "X-Ray", Quantity: 2, UnitPrice: 500, Total: 1000},
		},
	}, 7)

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_RecomputesTotalAmount(t *testing.T) {
	db, mock, service := setupMockDB(t)
	defer db.Close()

	// Existing bill: subtotal 1000, no discount, no tax.
	mock.ExpectQuery("FROM bills b").
		WithArgs(int64(5)).
		WillReturnRows(billRow(5, "HMS-00005", 1000.0, 0.0, 0.0, 1000.0, "Pending"))
	mock.ExpectQuery("FROM bill_items").
		WithArgs(int64(5)).
		WillReturnRows(emptyItemRows())

	discount := 100.0
	tax := 10.0
	status := "Paid"
	// 1000 - 100 + 1000*0.10 = 1000
	mock.ExpectExec("UPDATE bills").
		WithArgs(100.0, 10.0, 1000.0, "Paid", "", "", sqlmock.AnyArg(), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery("FROM bills b").
		WithArgs(int64(5)).
		WillReturnRows(billRow(5, "HMS-00005", 1000.0, 100.0, 10.0, 1000.0, "Paid"))
	mock.ExpectQuery("FROM bill_items").
		WithArgs(int64(5)).
		WillReturnRows(emptyItemRows())

	bill, err := service.Update(5, models.UpdateBillRequest{
		Discount:      &discount,
		Tax:           &tax,
		PaymentStatus: &status,
	})

	require.NoError(t, err)
	assert.Equal(t, "HMS-00005", bill.BillNumber)
	assert.InDelta(t, 1000.0, bill.TotalAmount, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock, service := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery("FROM bills b").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := service.GetByID(99)
	assert.ErrorIs(t, err, ErrBillNotFound)
}
