package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus estado del ciclo de vida de un devis.
type QuoteStatus string

// Estados del devis: draft → validated → sent → accepted → refused | invoiced.
const (
	QuoteDraft     QuoteStatus = "draft"
	QuoteValidated QuoteStatus = "validated"
	QuoteSent      QuoteStatus = "sent"
	QuoteAccepted  QuoteStatus = "accepted"
	QuoteRefused   QuoteStatus = "refused"
	QuoteInvoiced  QuoteStatus = "invoiced"
)

// Valid indica si el estado es conocido.
func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteDraft, QuoteValidated, QuoteSent, QuoteAccepted, QuoteRefused, QuoteInvoiced:
		return true
	}
	return false
}

// DefaultValidityDays validez por defecto de un devis.
const DefaultValidityDays = 30

// LineCategory categoría de obra de una línea; fija el orden de impresión.
type LineCategory string

// Categorías de línea en orden de impresión.
const (
	CategoryKitchen   LineCategory = "kitchen"
	CategoryPartition LineCategory = "partition"
	CategoryPaint     LineCategory = "paint"
	CategoryFlooring  LineCategory = "flooring"
	CategoryOther     LineCategory = "other"
)

// LineCategoryOrder orden fijo de las categorías en el documento.
var LineCategoryOrder = []LineCategory{
	CategoryKitchen, CategoryPartition, CategoryPaint, CategoryFlooring, CategoryOther,
}

// Client datos del cliente embebidos en el devis (sin identidad propia).
type Client struct {
	LastName   string `json:"last_name"`
	FirstName  string `json:"first_name,omitempty"`
	Address    string `json:"address,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	City       string `json:"city,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
}

// FullName nombre para mostrar.
func (c Client) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	return c.FirstName + " " + c.LastName
}

var maxTaxRate = decimal.NewFromInt(100)

// ValidTaxRate: entre 0 y 100 con como máximo dos decimales (columnas NUMERIC(5,2)).
func ValidTaxRate(rate decimal.Decimal) bool {
	if rate.IsNegative() || rate.GreaterThan(maxTaxRate) {
		return false
	}
	return rate.Equal(rate.Round(2))
}

// LineOptions opciones específicas de cada categoría.
type LineOptions struct {
	ACClass         string   `json:"ac_class,omitempty"`
	Underlay        bool     `json:"underlay,omitempty"`
	WorktopMaterial string   `json:"worktop_material,omitempty"`
	UpperCabinets   int      `json:"upper_cabinets,omitempty"`
	LowerCabinets   int      `json:"lower_cabinets,omitempty"`
	Appliances      int      `json:"appliances,omitempty"`
	FinishType      string   `json:"finish_type,omitempty"`
	Extras          []string `json:"extras,omitempty"`
}

// LineItem línea de un devis o de una factura (desnormalizada al crearla).
type LineItem struct {
	ID            string          `json:"id"`
	Category      LineCategory    `json:"category"`
	ReferenceID   string          `json:"reference_id"`
	ReferenceName string          `json:"reference_name"`
	Description   string          `json:"description,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	PriceMin      decimal.Decimal `json:"price_min"`
	PriceMax      decimal.Decimal `json:"price_max"`
	DefaultPrice  decimal.Decimal `json:"default_price"`
	AdjustedPrice decimal.Decimal `json:"adjusted_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Complimentary bool            `json:"complimentary"`
	Options       *LineOptions    `json:"options,omitempty"`
}

// Quote devis. Propiedad de un único usuario.
type Quote struct {
	ID           string
	UserID       string
	Number       string
	Client       Client
	CreatedAt    time.Time
	ValidityDays int
	ValidUntil   time.Time
	TaxRate      decimal.Decimal
	TotalHT      decimal.Decimal
	TotalTVA     decimal.Decimal
	TotalTTC     decimal.Decimal
	Status       QuoteStatus
	PaymentTerms PaymentTerms
	Notes        string
	Lines        []LineItem
	UpdatedAt    time.Time
}

// WithDefaults completa los campos ausentes en registros antiguos (sin condiciones de
// pago, sin fecha de validez o sin desglose de TVA). Es el único punto donde se
// reconstruyen esos campos; se aplica al leer desde el almacenamiento.
func (q *Quote) WithDefaults(terms PaymentTerms) *Quote {
	if q.PaymentTerms.IsZero() {
		q.PaymentTerms = terms
	}
	if q.ValidityDays <= 0 {
		q.ValidityDays = DefaultValidityDays
	}
	if q.ValidUntil.IsZero() {
		q.ValidUntil = q.CreatedAt.AddDate(0, 0, q.ValidityDays)
	}
	if q.TotalTVA.IsZero() && q.TotalTTC.GreaterThan(q.TotalHT) {
		q.TotalTVA = q.TotalTTC.Sub(q.TotalHT).Round(2)
	}
	if q.Status == "" {
		q.Status = QuoteDraft
	}
	if q.UpdatedAt.IsZero() {
		q.UpdatedAt = q.CreatedAt
	}
	return q
}

// QuoteSummary fila de listado.
type QuoteSummary struct {
	ID         string
	Number     string
	ClientName string
	CreatedAt  time.Time
	TotalTTC   decimal.Decimal
	Status     QuoteStatus
}
