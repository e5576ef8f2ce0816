package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/devis-renovation-api/internal/application/billing"
	"github.com/jhoicas/devis-renovation-api/internal/domain"
)

func TestQuotePDF_NombreDeArchivoYDocumento(t *testing.T) {
	f := newInvoicingFixture()
	q := createSample(t, f.quoteUC, "u1")
	gen := &capturePDF{}
	uc := billing.NewPDFUseCase(f.store.Quotes(), f.store.Invoices(), defaultProfiles(), gen)
	ctx := context.Background()

	data, name, err := uc.QuotePDF(ctx, "u1", q.ID)
	require.NoError(t, err)
	assert.Equal(t, "Devis_"+q.Number+".pdf", name)
	assert.NotEmpty(t, data)
	require.NotNil(t, gen.last)
	assert.Equal(t, "Rénov Pro", gen.last.Company.Name)
	require.Len(t, gen.last.Sections, 2)
	assert.Equal(t, "Peinture", gen.last.Sections[0].Title)

	_, _, err = uc.QuotePDF(ctx, "u2", q.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoicePDF(t *testing.T) {
	f := newInvoicingFixture()
	q := acceptedSample(t, f, "u1")
	ctx := context.Background()
	inv, err := f.uc.Create(ctx, "u1", q.ID)
	require.NoError(t, err)
	gen := &capturePDF{}
	uc := billing.NewPDFUseCase(f.store.Quotes(), f.store.Invoices(), defaultProfiles(), gen)

	_, name, err := uc.InvoicePDF(ctx, "u1", inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Facture_"+inv.Number+".pdf", name)
	assert.Equal(t, "FACTURE", gen.last.Title)

	_, _, err = uc.InvoicePDF(ctx, "u1", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
