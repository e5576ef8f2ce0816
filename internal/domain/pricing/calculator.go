// Package pricing calcula precios de línea y totales de un devis (servicio de dominio puro).
package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// LineInput línea solicitada por el cliente antes de calcular.
type LineInput struct {
	Category      entity.LineCategory
	ReferenceID   string
	ReferenceName string
	Description   string
	Quantity      decimal.Decimal
	Unit          string
	PriceMin      decimal.Decimal
	PriceMax      decimal.Decimal
	DefaultPrice  decimal.Decimal
	AdjustedPrice *decimal.Decimal // nil = usar el precio por defecto
	Complimentary bool
	Options       *entity.LineOptions
}

// Totals totales HT/TVA/TTC redondeados a 2 decimales.
type Totals struct {
	HT  decimal.Decimal
	TVA decimal.Decimal
	TTC decimal.Decimal
}

// EffectivePrice precio unitario aplicado: el ajustado si existe, si no el de por defecto.
// Un precio fuera de [min, max] se sustituye en silencio por el de por defecto.
func EffectivePrice(in LineInput) decimal.Decimal {
	price := in.DefaultPrice
	if in.AdjustedPrice != nil {
		price = *in.AdjustedPrice
	}
	if price.LessThan(in.PriceMin) || price.GreaterThan(in.PriceMax) {
		return in.DefaultPrice
	}
	return price
}

// WasClamped indica si el precio ajustado solicitado se descartó por estar fuera de banda.
func WasClamped(in LineInput) bool {
	if in.AdjustedPrice == nil {
		return false
	}
	return !EffectivePrice(in).Equal(*in.AdjustedPrice)
}

// BuildLine calcula una línea persistible. No asigna ID.
// Subtotal = cantidad × precio aplicado; una línea offerte conserva su subtotal.
func BuildLine(in LineInput) entity.LineItem {
	price := EffectivePrice(in)
	return entity.LineItem{
		Category:      in.Category,
		ReferenceID:   in.ReferenceID,
		ReferenceName: in.ReferenceName,
		Description:   in.Description,
		Quantity:      in.Quantity,
		Unit:          in.Unit,
		PriceMin:      in.PriceMin,
		PriceMax:      in.PriceMax,
		DefaultPrice:  in.DefaultPrice,
		AdjustedPrice: price,
		Subtotal:      in.Quantity.Mul(price).Round(2),
		Complimentary: in.Complimentary,
		Options:       in.Options,
	}
}

// BuildLines calcula todas las líneas y les asigna un ID nuevo.
func BuildLines(inputs []LineInput) []entity.LineItem {
	lines := make([]entity.LineItem, 0, len(inputs))
	for _, in := range inputs {
		l := BuildLine(in)
		l.ID = uuid.New().String()
		lines = append(lines, l)
	}
	return lines
}

// ComputeTotals suma los subtotales no offerts y aplica la TVA.
// total_ttc = total_ht + total_tva = round(total_ht × (1 + rate/100), 2).
func ComputeTotals(lines []entity.LineItem, taxRate decimal.Decimal) Totals {
	ht := decimal.Zero
	for _, l := range lines {
		if l.Complimentary {
			continue
		}
		ht = ht.Add(l.Subtotal)
	}
	ht = ht.Round(2)
	tva := ht.Mul(taxRate).Div(hundred).Round(2)
	return Totals{HT: ht, TVA: tva, TTC: ht.Add(tva)}
}

// ApplyTotals recalcula y asigna los totales de un devis desde cero.
func ApplyTotals(q *entity.Quote) {
	t := ComputeTotals(q.Lines, q.TaxRate)
	q.TotalHT, q.TotalTVA, q.TotalTTC = t.HT, t.TVA, t.TTC
}
