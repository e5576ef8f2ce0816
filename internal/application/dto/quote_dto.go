package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientDTO datos del cliente del devis.
type ClientDTO struct {
	LastName   string `json:"last_name" validate:"required,max=200"`
	FirstName  string `json:"first_name,omitempty" validate:"max=200"`
	Address    string `json:"address,omitempty" validate:"max=300"`
	PostalCode string `json:"postal_code,omitempty" validate:"max=20"`
	City       string `json:"city,omitempty" validate:"max=120"`
	Phone      string `json:"phone,omitempty" validate:"max=40"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
}

// InstallmentDTO tramo del calendario de pagos.
type InstallmentDTO struct {
	Label   string          `json:"label" validate:"required,max=200"`
	Percent decimal.Decimal `json:"percent"`
}

// PaymentTermsDTO condiciones de pago.
type PaymentTermsDTO struct {
	Mode         string           `json:"mode" validate:"required,oneof=net installments"`
	NetDays      int              `json:"net_days,omitempty" validate:"min=0,max=365"`
	Installments []InstallmentDTO `json:"installments,omitempty" validate:"dive"`
}

// LineOptionsDTO opciones de línea por categoría.
type LineOptionsDTO struct {
	ACClass         string   `json:"ac_class,omitempty"`
	Underlay        bool     `json:"underlay,omitempty"`
	WorktopMaterial string   `json:"worktop_material,omitempty"`
	UpperCabinets   int      `json:"upper_cabinets,omitempty" validate:"min=0"`
	LowerCabinets   int      `json:"lower_cabinets,omitempty" validate:"min=0"`
	Appliances      int      `json:"appliances,omitempty" validate:"min=0"`
	FinishType      string   `json:"finish_type,omitempty"`
	Extras          []string `json:"extras,omitempty"`
}

// LineItemRequest línea solicitada. adjusted_price ausente = precio por defecto.
type LineItemRequest struct {
	Category      string           `json:"category" validate:"required,oneof=kitchen partition paint flooring other"`
	ReferenceID   string           `json:"reference_id,omitempty"`
	ReferenceName string           `json:"reference_name" validate:"required,max=200"`
	Description   string           `json:"description,omitempty" validate:"max=1000"`
	Quantity      decimal.Decimal  `json:"quantity"`
	Unit          string           `json:"unit" validate:"required,max=30"`
	PriceMin      decimal.Decimal  `json:"price_min"`
	PriceMax      decimal.Decimal  `json:"price_max"`
	DefaultPrice  decimal.Decimal  `json:"default_price"`
	AdjustedPrice *decimal.Decimal `json:"adjusted_price,omitempty"`
	Complimentary bool             `json:"complimentary"`
	Options       *LineOptionsDTO  `json:"options,omitempty"`
}

// CreateQuoteRequest body para POST /api/quotes.
type CreateQuoteRequest struct {
	Client       ClientDTO         `json:"client"`
	Lines        []LineItemRequest `json:"lines" validate:"dive"`
	TaxRate      *decimal.Decimal  `json:"tax_rate,omitempty"`
	ValidityDays *int              `json:"validity_days,omitempty" validate:"omitempty,min=1,max=365"`
	PaymentTerms *PaymentTermsDTO  `json:"payment_terms,omitempty"`
	Notes        string            `json:"notes,omitempty" validate:"max=5000"`
}

// UpdateQuoteRequest body para PUT /api/quotes/:id. Solo se reemplazan los campos presentes.
type UpdateQuoteRequest struct {
	Client       *ClientDTO         `json:"client,omitempty"`
	TaxRate      *decimal.Decimal   `json:"tax_rate,omitempty"`
	ValidityDays *int               `json:"validity_days,omitempty" validate:"omitempty,min=1,max=365"`
	PaymentTerms *PaymentTermsDTO   `json:"payment_terms,omitempty"`
	Notes        *string            `json:"notes,omitempty" validate:"omitempty,max=5000"`
	Status       *string            `json:"status,omitempty"`
	Lines        *[]LineItemRequest `json:"lines,omitempty" validate:"omitempty,dive"`
}

// PatchQuoteRequest body para PATCH /api/quotes/:id (cambio de estado y datos menores).
type PatchQuoteRequest struct {
	Status *string    `json:"status,omitempty"`
	Client *ClientDTO `json:"client,omitempty"`
	Notes  *string    `json:"notes,omitempty" validate:"omitempty,max=5000"`
}

// LineItemResponse línea calculada.
type LineItemResponse struct {
	ID            string          `json:"id"`
	Category      string          `json:"category"`
	ReferenceID   string          `json:"reference_id,omitempty"`
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
	Options       *LineOptionsDTO `json:"options,omitempty"`
}

// QuoteResponse devis completo.
type QuoteResponse struct {
	ID           string             `json:"id"`
	Number       string             `json:"number"`
	Client       ClientDTO          `json:"client"`
	CreatedAt    time.Time          `json:"created_at"`
	ValidityDays int                `json:"validity_days"`
	ValidUntil   time.Time          `json:"valid_until"`
	TaxRate      decimal.Decimal    `json:"tax_rate"`
	TotalHT      decimal.Decimal    `json:"total_ht"`
	TotalTVA     decimal.Decimal    `json:"total_tva"`
	TotalTTC     decimal.Decimal    `json:"total_ttc"`
	Status       string             `json:"status"`
	PaymentTerms PaymentTermsDTO    `json:"payment_terms"`
	Notes        string             `json:"notes,omitempty"`
	Lines        []LineItemResponse `json:"lines"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// QuoteSummaryResponse fila del listado de devis.
type QuoteSummaryResponse struct {
	ID         string          `json:"id"`
	Number     string          `json:"number"`
	ClientName string          `json:"client_name"`
	CreatedAt  time.Time       `json:"created_at"`
	TotalTTC   decimal.Decimal `json:"total_ttc"`
	Status     string          `json:"status"`
}
