package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
)

// DocumentKind tipo de documento imprimible.
type DocumentKind string

// Tipos de documento.
const (
	DocumentQuote   DocumentKind = "quote"
	DocumentInvoice DocumentKind = "invoice"
)

// Etiquetas francesas de las categorías de línea, en orden de impresión.
var categoryTitles = map[entity.LineCategory]string{
	entity.CategoryKitchen:   "Cuisine",
	entity.CategoryPartition: "Cloisons",
	entity.CategoryPaint:     "Peinture",
	entity.CategoryFlooring:  "Parquet",
	entity.CategoryOther:     "Divers",
}

// ComplimentaryLabel texto impreso en lugar del importe de una línea offerte.
const ComplimentaryLabel = "Offert"

// PrintableParty bloque de empresa o de cliente.
type PrintableParty struct {
	Name         string
	AddressLines []string
	Phone        string
	Email        string
	SIRET        string
	VATNumber    string
	Insurance    string
}

// PrintableLine línea del documento.
type PrintableLine struct {
	Designation   string
	Description   string
	Quantity      decimal.Decimal
	Unit          string
	UnitPrice     decimal.Decimal
	Amount        decimal.Decimal
	Complimentary bool
}

// PrintableSection líneas de una categoría con su subtotal (sin las offertes).
type PrintableSection struct {
	Category entity.LineCategory
	Title    string
	Lines    []PrintableLine
	Subtotal decimal.Decimal
}

// PrintableInstallment tramo del calendario con su importe sobre el TTC.
type PrintableInstallment struct {
	Label   string
	Percent decimal.Decimal
	Amount  decimal.Decimal
}

// PrintableDocument modelo de vista de un devis o una factura, listo para maquetar.
type PrintableDocument struct {
	Kind           DocumentKind
	Title          string
	Number         string
	Date           time.Time
	ValidUntil     *time.Time // solo devis
	PaidAt         *time.Time // solo factura pagada
	QuoteReference string     // solo factura: número del devis de origen
	Company        PrintableParty
	Client         PrintableParty
	Sections       []PrintableSection
	TaxRate        decimal.Decimal
	TotalHT        decimal.Decimal
	TotalTVA       decimal.Decimal
	TotalTTC       decimal.Decimal
	PaymentTerms   string
	Schedule       []PrintableInstallment
	Notes          string
	LegalMentions  string
	WarrantyText   string
	SignatureBlock bool
}

// PrintableSource datos comunes a devis y factura para construir el documento.
type PrintableSource struct {
	Number         string
	Date           time.Time
	ValidUntil     *time.Time
	PaidAt         *time.Time
	QuoteReference string
	Client         entity.Client
	Lines          []entity.LineItem
	TaxRate        decimal.Decimal
	TotalHT        decimal.Decimal
	TotalTVA       decimal.Decimal
	TotalTTC       decimal.Decimal
	PaymentTerms   entity.PaymentTerms
	Notes          string
}

// SourceFromQuote datos imprimibles de un devis.
func SourceFromQuote(q *entity.Quote) PrintableSource {
	validUntil := q.ValidUntil
	return PrintableSource{
		Number:       q.Number,
		Date:         q.CreatedAt,
		ValidUntil:   &validUntil,
		Client:       q.Client,
		Lines:        q.Lines,
		TaxRate:      q.TaxRate,
		TotalHT:      q.TotalHT,
		TotalTVA:     q.TotalTVA,
		TotalTTC:     q.TotalTTC,
		PaymentTerms: q.PaymentTerms,
		Notes:        q.Notes,
	}
}

// SourceFromInvoice datos imprimibles de una factura.
func SourceFromInvoice(inv *entity.Invoice) PrintableSource {
	return PrintableSource{
		Number:         inv.Number,
		Date:           inv.CreatedAt,
		PaidAt:         inv.PaidAt,
		QuoteReference: inv.QuoteNumber,
		Client:         inv.Client,
		Lines:          inv.Lines,
		TaxRate:        inv.TaxRate,
		TotalHT:        inv.TotalHT,
		TotalTVA:       inv.TotalTVA,
		TotalTTC:       inv.TotalTTC,
		PaymentTerms:   inv.PaymentTerms,
		Notes:          inv.Notes,
	}
}

// BuildPrintable arma el documento: cabecera de empresa, cliente, líneas agrupadas por categoría,
// totales, condiciones de pago, notas, menciones legales y bloque de firma.
func BuildPrintable(kind DocumentKind, src PrintableSource, company *entity.CompanyProfile) *PrintableDocument {
	doc := &PrintableDocument{
		Kind:           kind,
		Number:         src.Number,
		Date:           src.Date,
		QuoteReference: src.QuoteReference,
		Client:         clientParty(src.Client),
		Sections:       GroupLines(src.Lines),
		TaxRate:        src.TaxRate,
		TotalHT:        src.TotalHT,
		TotalTVA:       src.TotalTVA,
		TotalTTC:       src.TotalTTC,
		PaymentTerms:   PaymentNarrative(src.PaymentTerms),
		Schedule:       InstallmentSchedule(src.PaymentTerms, src.TotalTTC),
		Notes:          src.Notes,
	}
	switch kind {
	case DocumentInvoice:
		doc.Title = "FACTURE"
		doc.PaidAt = src.PaidAt
	default:
		doc.Title = "DEVIS"
		doc.ValidUntil = src.ValidUntil
	}
	doc.SignatureBlock = true
	if company != nil {
		doc.Company = PrintableParty{
			Name:         company.CompanyName,
			AddressLines: addressLines(company.Address, company.PostalCode, company.City),
			Phone:        company.Phone,
			Email:        company.Email,
			SIRET:        company.SIRET,
			VATNumber:    company.VATNumber,
			Insurance:    company.Insurance,
		}
		doc.LegalMentions = company.LegalMentions
		doc.WarrantyText = company.WarrantyText
	}
	if doc.LegalMentions == "" {
		doc.LegalMentions = entity.DefaultLegalMentions
	}
	if doc.WarrantyText == "" {
		doc.WarrantyText = entity.DefaultWarrantyText
	}
	return doc
}

// GroupLines agrupa las líneas en el orden fijo cuisine, cloisons, peinture, parquet, divers.
// Las categorías desconocidas van a divers. Las líneas offertes se listan pero no suman.
func GroupLines(lines []entity.LineItem) []PrintableSection {
	byCat := make(map[entity.LineCategory][]entity.LineItem)
	for _, l := range lines {
		cat := l.Category
		if _, ok := categoryTitles[cat]; !ok {
			cat = entity.CategoryOther
		}
		byCat[cat] = append(byCat[cat], l)
	}

	sections := make([]PrintableSection, 0, len(byCat))
	for _, cat := range entity.LineCategoryOrder {
		items := byCat[cat]
		if len(items) == 0 {
			continue
		}
		sec := PrintableSection{Category: cat, Title: categoryTitles[cat], Subtotal: decimal.Zero}
		for _, l := range items {
			sec.Lines = append(sec.Lines, PrintableLine{
				Designation:   l.ReferenceName,
				Description:   l.Description,
				Quantity:      l.Quantity,
				Unit:          l.Unit,
				UnitPrice:     l.AdjustedPrice,
				Amount:        l.Subtotal,
				Complimentary: l.Complimentary,
			})
			if !l.Complimentary {
				sec.Subtotal = sec.Subtotal.Add(l.Subtotal)
			}
		}
		sec.Subtotal = sec.Subtotal.Round(2)
		sections = append(sections, sec)
	}
	return sections
}

// PaymentNarrative frase de condiciones de pago.
func PaymentNarrative(t entity.PaymentTerms) string {
	switch t.Mode {
	case entity.PaymentModeNet:
		if t.NetDays == 0 {
			return "Paiement comptant à réception de facture"
		}
		return fmt.Sprintf("Paiement à %d jours", t.NetDays)
	case entity.PaymentModeInstallments:
		return "Paiement selon l'échéancier suivant :"
	}
	return ""
}

// InstallmentSchedule calcula el importe de cada tramo sobre el TTC. El último tramo absorbe
// el redondeo para que la suma sea exactamente el TTC.
func InstallmentSchedule(t entity.PaymentTerms, totalTTC decimal.Decimal) []PrintableInstallment {
	if t.Mode != entity.PaymentModeInstallments || len(t.Installments) == 0 {
		return nil
	}
	out := make([]PrintableInstallment, 0, len(t.Installments))
	allocated := decimal.Zero
	last := len(t.Installments) - 1
	for i, in := range t.Installments {
		amount := totalTTC.Mul(in.Percent).Div(decimal.NewFromInt(100)).Round(2)
		if i == last {
			amount = totalTTC.Sub(allocated)
		}
		allocated = allocated.Add(amount)
		out = append(out, PrintableInstallment{Label: in.Label, Percent: in.Percent, Amount: amount})
	}
	return out
}

func clientParty(c entity.Client) PrintableParty {
	return PrintableParty{
		Name:         c.FullName(),
		AddressLines: addressLines(c.Address, c.PostalCode, c.City),
		Phone:        c.Phone,
		Email:        c.Email,
	}
}

func addressLines(address, postalCode, city string) []string {
	var lines []string
	if a := strings.TrimSpace(address); a != "" {
		lines = append(lines, a)
	}
	if pc := strings.TrimSpace(postalCode + " " + city); pc != "" {
		lines = append(lines, pc)
	}
	return lines
}
