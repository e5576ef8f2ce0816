// Package pdf genera el PDF de devis y facturas a partir del documento imprimible.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + SIRET/TVA  │  DEVIS/FACTURE N° + fechas   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPRESA: Dirección / Tel / Email │ CLIENTE: Nombre + dir.   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA por categoría: Désignation | Qté | P.U. HT | Total   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total HT / TVA / Total TTC                         │
//	│  CONDICIONES DE PAGO + calendario                            │
//	│  NOTAS / MENCIONES LEGALES / GARANTÍAS / FIRMA (devis)       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/devis-renovation-api/internal/application/billing"
	"github.com/jhoicas/devis-renovation-api/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLight   = &props.Color{Red: 232, Green: 240, Blue: 248}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const dateLayout = "02/01/2006"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.DocumentPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

var _ billing.DocumentPDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateDocumentPDF genera el PDF y devuelve sus bytes. Cada página lleva "Page N / M".
func (g *MarotoPDFGenerator) GenerateDocumentPDF(ctx context.Context, doc *billing.PrintableDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} / {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   colorGray,
		}).
		WithTitle(doc.Title+" "+doc.Number, true).
		WithAuthor(nonEmpty(doc.Company.Name, "Devis Rénovation"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(doc))
	m.AddRows(row.New(4))

	m.AddRows(tableHeaderRow())
	for _, sec := range doc.Sections {
		m.AddRows(sectionRows(sec)...)
	}

	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc))
	m.AddRows(paymentRows(doc)...)
	m.AddRows(footerRows(doc)...)
	if doc.SignatureBlock {
		m.AddRows(signatureRow(doc.Kind))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + identificadores (izq) y título, número y fechas (der).
func headerRow(doc *billing.PrintableDocument) core.Row {
	var ids []string
	if doc.Company.SIRET != "" {
		ids = append(ids, "SIRET : "+doc.Company.SIRET)
	}
	if doc.Company.VATNumber != "" {
		ids = append(ids, "TVA : "+doc.Company.VATNumber)
	}

	dates := []string{"Date : " + doc.Date.Format(dateLayout)}
	if doc.ValidUntil != nil {
		dates = append(dates, "Valable jusqu'au : "+doc.ValidUntil.Format(dateLayout))
	}
	if doc.QuoteReference != "" {
		dates = append(dates, "Devis n° "+doc.QuoteReference)
	}
	if doc.PaidAt != nil {
		dates = append(dates, "Payée le : "+doc.PaidAt.Format(dateLayout))
	}

	return row.New(24).Add(
		col.New(7).Add(
			text.New(nonEmpty(doc.Company.Name, "—"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(strings.Join(ids, "  ·  "), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(doc.Title, props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+doc.Number, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 8,
			}),
		).Add(textLines(dates, props.Text{Size: 8, Align: align.Right, Top: 13, Color: colorGray}, 3.5)...),
	)
}

// partiesRow: bloque de la empresa (izq) y del cliente (der).
func partiesRow(doc *billing.PrintableDocument) core.Row {
	company := append([]string{}, doc.Company.AddressLines...)
	company = appendIf(company, "Tél. ", doc.Company.Phone)
	company = appendIf(company, "", doc.Company.Email)
	company = appendIf(company, "Assurance décennale : ", doc.Company.Insurance)

	client := append([]string{doc.Client.Name}, doc.Client.AddressLines...)
	client = appendIf(client, "Tél. ", doc.Client.Phone)
	client = appendIf(client, "", doc.Client.Email)

	return row.New(30).Add(
		col.New(6).Add(
			text.New("ÉMETTEUR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		).Add(textLines(company, props.Text{Size: 8, Top: 6}, 3.8)...),
		col.New(6).Add(
			text.New("CLIENT", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Left: 4}),
		).Add(textLines(client, props.Text{Size: 8, Top: 6, Left: 4}, 3.8)...),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas sobre fondo de color.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Désignation", 6, align.Left),
		h("Qté", 2, align.Center),
		h("P.U. HT", 2, align.Right),
		h("Total HT", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// sectionRows: título de la categoría, una fila por línea y el subtotal.
func sectionRows(sec billing.PrintableSection) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(text.New(sec.Title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1, Left: 1,
		}))).WithStyle(&props.Cell{BackgroundColor: colorLight}),
	}

	for _, l := range sec.Lines {
		designation := []core.Component{text.New(l.Designation, props.Text{Size: 8, Top: 1, Left: 1})}
		height := 6.0
		if l.Description != "" {
			designation = append(designation, text.New(l.Description, props.Text{Size: 7, Top: 5, Left: 1, Color: colorGray}))
			height = 10
		}
		amount := money.Format(l.Amount)
		if l.Complimentary {
			amount = billing.ComplimentaryLabel
		}
		rows = append(rows, row.New(height).Add(
			col.New(6).Add(designation...),
			col.New(2).Add(text.New(quantity(l.Quantity)+" "+l.Unit, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(money.Format(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(amount, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}

	rows = append(rows, row.New(6).Add(
		col.New(8),
		col.New(2).Add(text.New("Sous-total", props.Text{Style: fontstyle.Italic, Size: 8, Align: align.Right, Top: 1})),
		col.New(2).Add(text.New(money.Format(sec.Subtotal), props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1})),
	))
	return rows
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(doc *billing.PrintableDocument) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}

	return row.New(22).Add(
		col.New(6),
		col.New(3).Add(
			label("Total HT :", 1),
			label("TVA "+money.Percent(doc.TaxRate)+" :", 7),
			text.New("Total TTC :", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 13,
			}),
		),
		col.New(3).Add(
			value(money.Format(doc.TotalHT), 1),
			value(money.Format(doc.TotalTVA), 7),
			text.New(money.Format(doc.TotalTTC), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 13,
			}),
		),
	)
}

// paymentRows: condiciones de pago y, si aplica, el calendario con importes.
func paymentRows(doc *billing.PrintableDocument) []core.Row {
	if doc.PaymentTerms == "" {
		return nil
	}
	rows := []core.Row{
		sectionTitleRow("CONDITIONS DE PAIEMENT"),
		row.New(6).Add(col.New(12).Add(text.New(doc.PaymentTerms, props.Text{Size: 8, Top: 1}))),
	}
	for _, in := range doc.Schedule {
		rows = append(rows, row.New(5).Add(
			col.New(7).Add(text.New("• "+in.Label, props.Text{Size: 8, Left: 3})),
			col.New(2).Add(text.New(money.Percent(in.Percent), props.Text{Size: 8, Align: align.Right})),
			col.New(3).Add(text.New(money.Format(in.Amount), props.Text{Size: 8, Align: align.Right, Right: 1})),
		))
	}
	return rows
}

// footerRows: notas, menciones legales y garantías.
func footerRows(doc *billing.PrintableDocument) []core.Row {
	var rows []core.Row
	if doc.Notes != "" {
		rows = append(rows, sectionTitleRow("NOTES"))
		rows = append(rows, paragraphRow(doc.Notes, 8, nil))
	}
	if doc.LegalMentions != "" {
		rows = append(rows, sectionTitleRow("MENTIONS LÉGALES"))
		rows = append(rows, paragraphRow(doc.LegalMentions, 7, colorGray))
	}
	if doc.WarrantyText != "" {
		rows = append(rows, sectionTitleRow("GARANTIES"))
		rows = append(rows, paragraphRow(doc.WarrantyText, 7, colorGray))
	}
	return rows
}

// signatureRow: "Bon pour accord" del cliente en el devis, cachet de la empresa en la factura.
func signatureRow(kind billing.DocumentKind) core.Row {
	title, hint, mention := "Bon pour accord", "Date et signature du client,", "précédées de la mention « Bon pour accord »"
	if kind == billing.DocumentInvoice {
		title, hint, mention = "L'entreprise", "Cachet et signature de l'entreprise", ""
	}
	box := col.New(6).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Top: 4}),
		text.New(hint, props.Text{Size: 7, Top: 10, Color: colorGray}),
	)
	if mention != "" {
		box.Add(text.New(mention, props.Text{Size: 7, Top: 13.5, Color: colorGray}))
	}
	return row.New(32).Add(
		col.New(6),
		box.WithStyle(&props.Cell{BorderType: border.Full, BorderColor: colorGray}),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(text.New(title, props.Text{
		Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 3,
	})))
}

// paragraphRow estima la altura por el número de caracteres (≈110 por línea a 8pt).
func paragraphRow(s string, size float64, color *props.Color) core.Row {
	lines := 1
	for _, p := range strings.Split(s, "\n") {
		lines += len([]rune(p)) / 110
	}
	lines += strings.Count(s, "\n")
	return row.New(float64(lines)*size*0.5 + 2).Add(col.New(12).Add(
		text.New(s, props.Text{Size: size, Color: color, Top: 1}),
	))
}

// textLines apila una línea de texto por elemento a partir de base.Top.
func textLines(lines []string, base props.Text, step float64) []core.Component {
	out := make([]core.Component, 0, len(lines))
	for i, l := range lines {
		p := base
		p.Top = base.Top + float64(i)*step
		out = append(out, text.New(l, p))
	}
	return out
}

func appendIf(lines []string, prefix, value string) []string {
	if value == "" {
		return lines
	}
	return append(lines, prefix+value)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// quantity formatea la cantidad con coma decimal y sin ceros superfluos ("12,5").
func quantity(d decimal.Decimal) string {
	return strings.Replace(d.String(), ".", ",", 1)
}
