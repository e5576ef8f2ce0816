package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus estado de pago de una factura.
type InvoiceStatus string

// Estados de factura: solo pending → paid.
const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
)

// Valid indica si el estado es conocido.
func (s InvoiceStatus) Valid() bool {
	return s == InvoicePending || s == InvoicePaid
}

// Invoice factura derivada de un devis: copia fija de cliente, líneas y totales.
type Invoice struct {
	ID           string
	UserID       string
	QuoteID      string
	QuoteNumber  string
	Number       string
	Client       Client
	CreatedAt    time.Time
	PaidAt       *time.Time
	TaxRate      decimal.Decimal
	TotalHT      decimal.Decimal
	TotalTVA     decimal.Decimal
	TotalTTC     decimal.Decimal
	Status       InvoiceStatus
	PaymentTerms PaymentTerms
	Notes        string
	Lines        []LineItem
	UpdatedAt    time.Time
}

// InvoiceSummary fila de listado.
type InvoiceSummary struct {
	ID          string
	Number      string
	QuoteID     string
	QuoteNumber string
	ClientName  string
	CreatedAt   time.Time
	PaidAt      *time.Time
	TotalTTC    decimal.Decimal
	Status      InvoiceStatus
}
