package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	QuoteID string `json:"quote_id" validate:"required"`
}

// UpdateInvoiceStatusRequest body para PUT /api/invoices/:id/status.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid"`
}

// InvoiceResponse factura completa.
type InvoiceResponse struct {
	ID           string             `json:"id"`
	Number       string             `json:"number"`
	QuoteID      string             `json:"quote_id"`
	QuoteNumber  string             `json:"quote_number"`
	Client       ClientDTO          `json:"client"`
	CreatedAt    time.Time          `json:"created_at"`
	PaidAt       *time.Time         `json:"paid_at,omitempty"`
	TaxRate      decimal.Decimal    `json:"tax_rate"`
	TotalHT      decimal.Decimal    `json:"total_ht"`
	TotalTVA     decimal.Decimal    `json:"total_tva"`
	TotalTTC     decimal.Decimal    `json:"total_ttc"`
	Status       string             `json:"status"`
	PaymentTerms PaymentTermsDTO    `json:"payment_terms"`
	Notes        string             `json:"notes,omitempty"`
	Lines        []LineItemResponse `json:"lines"`
}

// InvoiceSummaryResponse fila del listado de facturas.
type InvoiceSummaryResponse struct {
	ID          string          `json:"id"`
	Number      string          `json:"number"`
	QuoteID     string          `json:"quote_id"`
	QuoteNumber string          `json:"quote_number"`
	ClientName  string          `json:"client_name"`
	CreatedAt   time.Time       `json:"created_at"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
	TotalTTC    decimal.Decimal `json:"total_ttc"`
	Status      string          `json:"status"`
}
