package dto

import "github.com/shopspring/decimal"

// PriceBandDTO banda de precio [min, max].
type PriceBandDTO struct {
	Code string          `json:"code"`
	Min  decimal.Decimal `json:"min"`
	Max  decimal.Decimal `json:"max"`
}

// ReferenceItemResponse ítem de un catálogo de referencia.
type ReferenceItemResponse struct {
	ID          string         `json:"id"`
	Catalog     string         `json:"catalog"`
	Name        string         `json:"name"`
	Type        string         `json:"type,omitempty"`
	Category    string         `json:"category,omitempty"`
	Description string         `json:"description,omitempty"`
	Unit        string         `json:"unit"`
	ACClass     string         `json:"ac_class,omitempty"`
	Bands       []PriceBandDTO `json:"bands"`
}

// ServiceRatesResponse tarifas de servicios (GET /api/references/services).
type ServiceRatesResponse struct {
	DeliveryPerKm  decimal.Decimal            `json:"delivery_per_km"`
	TravelPerKm    decimal.Decimal            `json:"travel_per_km"`
	DisposalPerCbm map[string]decimal.Decimal `json:"disposal_per_m3"`
}
