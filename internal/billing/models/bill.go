package models

import "time"

var (
	PaymentStatuses = []string{"Pending", "Paid", "Partial"}
	PaymentMethods  = []string{"Cash", "Card", "UPI", "Insurance", ""}
)

// BillItem is one billed service line. The line total is supplied by the
// caller and is not re-derived from quantity x unit price.
type BillItem struct {
	ID          int64   `json:"id"`
	ServiceName string  `json:"serviceName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

type Bill struct {
	ID             int64      `json:"id"`
	PatientID      int64      `json:"patientId"`
	BillNumber     string     `json:"billNumber"`
	Items          []BillItem `json:"items"`
	Subtotal       float64    `json:"subtotal"`
	Discount       float64    `json:"discount"`
	Tax            float64    `json:"tax"`
	TotalAmount    float64    `json:"totalAmount"`
	PaymentStatus  string     `json:"paymentStatus"`
	PaymentMethod  string     `json:"paymentMethod"`
	Notes          string     `json:"notes"`
	CreatedBy      *int64     `json:"createdBy"`
	CreatedByName  *string    `json:"createdByName,omitempty"`
	PatientName    *string    `json:"patientName,omitempty"`
	PatientContact *string    `json:"patientContact,omitempty"`
	PatientType    *string    `json:"patientType,omitempty"`
	PatientWard    *string    `json:"patientWard,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type BillItemInput struct {
	ServiceName string  `json:"serviceName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

type CreateBillRequest struct {
	PatientID     int64           `json:"patientId"`
	Items         []BillItemInput `json:"items"`
	Discount      float64         `json:"discount"`
	Tax           float64         `json:"tax"`
	Notes         string          `json:"notes"`
	PaymentStatus string          `json:"paymentStatus"`
	PaymentMethod string          `json:"paymentMethod"`
}

// UpdateBillRequest carries the fields mutable after creation. The bill
// number and line items are fixed once the bill is stored.
type UpdateBillRequest struct {
	Discount      *float64 `json:"discount"`
	Tax           *float64 `json:"tax"`
	Notes         *string  `json:"notes"`
	PaymentStatus *string  `json:"paymentStatus"`
	PaymentMethod *string  `json:"paymentMethod"`
}

type DailyRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"Revenue"`
}

type BillStats struct {
	RevenueToday  float64        `json:"revenueToday"`
	WeeklyRevenue []DailyRevenue `json:"weeklyRevenue"`
}

func ValidPaymentStatus(s string) bool {
	for _, v := range PaymentStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func ValidPaymentMethod(m string) bool {
	for _, v := range PaymentMethods {
		if v == m {
			return true
		}
	}
	return false
}
