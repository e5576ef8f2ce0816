package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Textos por defecto del perfil de empresa (se imprimen en el PDF).
const (
	DefaultLegalMentions = "Devis gratuit. Les prix s'entendent hors taxes, TVA au taux en vigueur. " +
		"Tout retard de paiement entraîne des pénalités au taux légal ainsi qu'une indemnité " +
		"forfaitaire de 40 € pour frais de recouvrement."
	DefaultWarrantyText = "Travaux couverts par la garantie de parfait achèvement (1 an), " +
		"la garantie biennale de bon fonctionnement (2 ans) et la garantie décennale (10 ans)."
)

// DefaultTaxRate TVA por defecto (%) cuando ni el devis ni la empresa la indican.
var DefaultTaxRate = decimal.NewFromInt(20)

// CompanyProfile datos de la empresa del usuario (uno por usuario).
// Se crea con valores por defecto en el primer acceso; nunca se borra sin el usuario.
type CompanyProfile struct {
	UserID              string
	CompanyName         string
	Address             string
	PostalCode          string
	City                string
	Phone               string
	Email               string
	SIRET               string
	VATNumber           string
	Insurance           string // assurance décennale: aseguradora y número de póliza
	DefaultPaymentTerms PaymentTerms
	DefaultTaxRate      decimal.Decimal
	LegalMentions       string
	WarrantyText        string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewCompanyProfile construye el perfil por defecto de un usuario.
func NewCompanyProfile(user *User, now time.Time) *CompanyProfile {
	p := &CompanyProfile{
		DefaultPaymentTerms: DefaultPaymentTerms(),
		DefaultTaxRate:      DefaultTaxRate,
		LegalMentions:       DefaultLegalMentions,
		WarrantyText:        DefaultWarrantyText,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if user != nil {
		p.UserID = user.ID
		p.CompanyName = user.Name
		p.Email = user.Email
	}
	return p
}
