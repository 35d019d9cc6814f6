package domain

import (
	"errors"
	"time"
)

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

const (
	InvoiceUnpaid  InvoiceStatus = "unpaid"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

var ErrInvoiceNotFound = errors.New("invoice not found")

// Invoice is a billing record for a client, optionally linked to a case.
type Invoice struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	Number      string        `json:"number" bson:"number"`
	ClientID    string        `json:"client_id" bson:"client_id"`
	CaseID      string        `json:"case_id,omitempty" bson:"case_id,omitempty"`
	Amount      float64       `json:"amount" bson:"amount"`
	Description string        `json:"description,omitempty" bson:"description,omitempty"`
	Status      InvoiceStatus `json:"status" bson:"status"`
	DueDate     *time.Time    `json:"due_date,omitempty" bson:"due_date,omitempty"`
	PaidAt      *time.Time    `json:"paid_at,omitempty" bson:"paid_at,omitempty"`
	CreatedBy   string        `json:"created_by" bson:"created_by"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
}
