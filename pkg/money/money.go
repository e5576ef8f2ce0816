// Package money formatea importes en euros con la convención francesa (1 234,56 €).
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.French)

// Format devuelve el importe redondeado a 2 decimales, con espacios como separador
// de miles, coma decimal y el símbolo € al final.
func Format(d decimal.Decimal) string {
	return Number(d) + " €"
}

// Number igual que Format pero sin símbolo de moneda.
func Number(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	s := printer.Sprintf("%.2f", f)
	// x/text usa espacios finos no separables; el PDF sólo necesita espacios simples.
	s = strings.NewReplacer("\u202f", " ", "\u00a0", " ").Replace(s)
	return s
}

// Percent formatea una tasa (p. ej. 20 -> "20 %", 5.5 -> "5,5 %").
func Percent(d decimal.Decimal) string {
	s := strings.Replace(d.String(), ".", ",", 1)
	return s + " %"
}
