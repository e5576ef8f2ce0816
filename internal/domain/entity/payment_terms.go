package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Modalidades de pago.
const (
	PaymentModeNet          = "net"          // pago único a N días
	PaymentModeInstallments = "installments" // calendario de pagos en porcentajes
)

// Installment tramo de un calendario de pagos (ej. "Acompte à la signature", 30%).
type Installment struct {
	Label   string          `json:"label"`
	Percent decimal.Decimal `json:"percent"`
}

// PaymentTerms condiciones de pago impresas en el documento.
type PaymentTerms struct {
	Mode         string        `json:"mode"`
	NetDays      int           `json:"net_days,omitempty"`
	Installments []Installment `json:"installments,omitempty"`
}

// DefaultPaymentTerms condiciones integradas: 30% a la firma, 40% a mitad de obra, 30% a la recepción.
func DefaultPaymentTerms() PaymentTerms {
	return PaymentTerms{
		Mode: PaymentModeInstallments,
		Installments: []Installment{
			{Label: "Acompte à la signature", Percent: decimal.NewFromInt(30)},
			{Label: "En cours de chantier", Percent: decimal.NewFromInt(40)},
			{Label: "Solde à la réception des travaux", Percent: decimal.NewFromInt(30)},
		},
	}
}

// IsZero indica si las condiciones no fueron informadas.
func (t PaymentTerms) IsZero() bool {
	return t.Mode == "" && t.NetDays == 0 && len(t.Installments) == 0
}

// Validate comprueba la coherencia de las condiciones de pago.
func (t PaymentTerms) Validate() error {
	switch t.Mode {
	case PaymentModeNet:
		if t.NetDays < 0 {
			return fmt.Errorf("net_days no puede ser negativo")
		}
		return nil
	case PaymentModeInstallments:
		if len(t.Installments) == 0 {
			return fmt.Errorf("se requiere al menos un tramo de pago")
		}
		sum := decimal.Zero
		for _, in := range t.Installments {
			if in.Label == "" {
				return fmt.Errorf("cada tramo requiere label")
			}
			if !in.Percent.IsPositive() {
				return fmt.Errorf("el porcentaje del tramo %q debe ser positivo", in.Label)
			}
			sum = sum.Add(in.Percent)
		}
		if !sum.Equal(decimal.NewFromInt(100)) {
			return fmt.Errorf("los porcentajes suman %s, deben sumar 100", sum.String())
		}
		return nil
	default:
		return fmt.Errorf("modalidad de pago desconocida: %q", t.Mode)
	}
}
