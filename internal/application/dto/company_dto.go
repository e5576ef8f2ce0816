package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyProfileResponse perfil de empresa del usuario.
type CompanyProfileResponse struct {
	CompanyName         string          `json:"company_name"`
	Address             string          `json:"address"`
	PostalCode          string          `json:"postal_code"`
	City                string          `json:"city"`
	Phone               string          `json:"phone"`
	Email               string          `json:"email"`
	SIRET               string          `json:"siret"`
	VATNumber           string          `json:"vat_number"`
	Insurance           string          `json:"insurance"`
	DefaultPaymentTerms PaymentTermsDTO `json:"default_payment_terms"`
	DefaultTaxRate      decimal.Decimal `json:"default_tax_rate"`
	LegalMentions       string          `json:"legal_mentions"`
	WarrantyText        string          `json:"warranty_text"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// UpdateCompanyProfileRequest actualización parcial: solo cambian los campos presentes.
type UpdateCompanyProfileRequest struct {
	CompanyName         *string          `json:"company_name,omitempty" validate:"omitempty,max=200"`
	Address             *string          `json:"address,omitempty" validate:"omitempty,max=300"`
	PostalCode          *string          `json:"postal_code,omitempty" validate:"omitempty,max=20"`
	City                *string          `json:"city,omitempty" validate:"omitempty,max=120"`
	Phone               *string          `json:"phone,omitempty" validate:"omitempty,max=40"`
	Email               *string          `json:"email,omitempty" validate:"omitempty,email"`
	SIRET               *string          `json:"siret,omitempty" validate:"omitempty,max=20"`
	VATNumber           *string          `json:"vat_number,omitempty" validate:"omitempty,max=30"`
	Insurance           *string          `json:"insurance,omitempty" validate:"omitempty,max=500"`
	DefaultPaymentTerms *PaymentTermsDTO `json:"default_payment_terms,omitempty"`
	DefaultTaxRate      *decimal.Decimal `json:"default_tax_rate,omitempty"`
	LegalMentions       *string          `json:"legal_mentions,omitempty" validate:"omitempty,max=4000"`
	WarrantyText        *string          `json:"warranty_text,omitempty" validate:"omitempty,max=4000"`
}
