package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/devis-renovation-api/internal/application/billing"
	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
	"github.com/jhoicas/devis-renovation-api/internal/infrastructure/pdf"
)

func sampleQuote() *entity.Quote {
	created := time.Date(2024, 5, 14, 9, 30, 0, 0, time.UTC)
	return &entity.Quote{
		Number:     "DEV-20240514093000",
		Client:     entity.Client{LastName: "Martin", FirstName: "Claire", Address: "3 rue des Lilas", PostalCode: "69003", City: "Lyon"},
		CreatedAt:  created,
		ValidUntil: created.AddDate(0, 0, 30),
		TaxRate:    decimal.NewFromInt(20),
		TotalHT:    decimal.NewFromInt(750),
		TotalTVA:   decimal.NewFromInt(150),
		TotalTTC:   decimal.NewFromInt(900),
		Lines: []entity.LineItem{
			{Category: entity.CategoryPaint, ReferenceName: "Peinture murs", Description: "Deux couches, finition mate",
				Quantity: decimal.NewFromInt(5), Unit: "m²", AdjustedPrice: decimal.NewFromInt(150), Subtotal: decimal.NewFromInt(750)},
			{Category: entity.CategoryOther, ReferenceName: "Nettoyage", Quantity: decimal.NewFromInt(1), Unit: "forfait",
				AdjustedPrice: decimal.NewFromInt(300), Subtotal: decimal.NewFromInt(300), Complimentary: true},
		},
		PaymentTerms: entity.DefaultPaymentTerms(),
		Notes:        "Accès au chantier par la cour.",
	}
}

func TestGenerateDocumentPDF_Devis(t *testing.T) {
	company := entity.NewCompanyProfile(&entity.User{Name: "Rénov Pro", Email: "contact@renov.fr"}, time.Now())
	company.SIRET = "123 456 789 00012"
	doc := billing.BuildPrintable(billing.DocumentQuote, billing.SourceFromQuote(sampleQuote()), company)

	out, err := pdf.NewMarotoPDFGenerator().GenerateDocumentPDF(context.Background(), doc)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe empezar con la cabecera PDF")
}

func TestGenerateDocumentPDF_FacturaPagada(t *testing.T) {
	q := sampleQuote()
	paid := q.CreatedAt.AddDate(0, 1, 0)
	inv := &entity.Invoice{
		Number: "FAC-20240614100000", QuoteNumber: q.Number, Client: q.Client, CreatedAt: q.CreatedAt, PaidAt: &paid,
		TaxRate: q.TaxRate, TotalHT: q.TotalHT, TotalTVA: q.TotalTVA, TotalTTC: q.TotalTTC,
		PaymentTerms: entity.PaymentTerms{Mode: entity.PaymentModeNet, NetDays: 30}, Lines: q.Lines,
	}
	doc := billing.BuildPrintable(billing.DocumentInvoice, billing.SourceFromInvoice(inv), nil)

	out, err := pdf.NewMarotoPDFGenerator().GenerateDocumentPDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateDocumentPDF_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pdf.NewMarotoPDFGenerator().GenerateDocumentPDF(ctx, &billing.PrintableDocument{Title: "DEVIS"})
	assert.ErrorIs(t, err, context.Canceled)
}
