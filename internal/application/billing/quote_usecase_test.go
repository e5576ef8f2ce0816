package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/devis-renovation-api/internal/application/billing"
	"github.com/jhoicas/devis-renovation-api/internal/application/dto"
	"github.com/jhoicas/devis-renovation-api/internal/domain"
	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
	"github.com/jhoicas/devis-renovation-api/internal/testutil/memstore"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func paintLine(qty, adjusted string) dto.LineItemRequest {
	l := dto.LineItemRequest{
		Category:      "paint",
		ReferenceName: "Peinture murs et plafonds",
		Quantity:      dec(qty),
		Unit:          "m²",
		PriceMin:      dec("10"),
		PriceMax:      dec("20"),
		DefaultPrice:  dec("15"),
	}
	if adjusted != "" {
		l.AdjustedPrice = decPtr(adjusted)
	}
	return l
}

func newQuoteUseCase(store *memstore.Store) *billing.QuoteUseCase {
	return billing.NewQuoteUseCase(store.Quotes(), defaultProfiles(), billing.QuoteDefaults{ValidityDays: 30}, nil).
		WithClock(fixedClock)
}

func createSample(t *testing.T, uc *billing.QuoteUseCase, userID string) *dto.QuoteResponse {
	t.Helper()
	gift := paintLine("10", "")
	gift.Category = "other"
	gift.ReferenceName = "Nettoyage de fin de chantier"
	gift.Complimentary = true

	res, err := uc.Create(context.Background(), userID, dto.CreateQuoteRequest{
		Client: dto.ClientDTO{LastName: "Martin", FirstName: "Claire"},
		Lines:  []dto.LineItemRequest{paintLine("50", ""), gift},
	})
	require.NoError(t, err)
	return res
}

func TestCreateQuote_TotalesExcluyenLineasOffertes(t *testing.T) {
	uc := newQuoteUseCase(memstore.New())

	res := createSample(t, uc, "u1")

	assert.Equal(t, "DEV-20240514093000", res.Number)
	assert.Equal(t, string(entity.QuoteDraft), res.Status)
	assert.Equal(t, "750.00", res.TotalHT.StringFixed(2))
	assert.Equal(t, "150.00", res.TotalTVA.StringFixed(2))
	assert.Equal(t, "900.00", res.TotalTTC.StringFixed(2))
	require.Len(t, res.Lines, 2)
	assert.Equal(t, "150.00", res.Lines[1].Subtotal.StringFixed(2), "la línea offerte conserva su subtotal")
	assert.Equal(t, fixedClock().AddDate(0, 0, 30), res.ValidUntil)
	assert.Equal(t, entity.PaymentModeInstallments, res.PaymentTerms.Mode)
}

func TestCreateQuote_PrecioFueraDeBanda_SeAplicaElPorDefecto(t *testing.T) {
	uc := newQuoteUseCase(memstore.New())

	res, err := uc.Create(context.Background(), "u1", dto.CreateQuoteRequest{
		Client: dto.ClientDTO{LastName: "Durand"},
		Lines:  []dto.LineItemRequest{paintLine("10", "35"), paintLine("10", "18")},
	})
	require.NoError(t, err)

	assert.Equal(t, "15.00", res.Lines[0].AdjustedPrice.StringFixed(2))
	assert.Equal(t, "18.00", res.Lines[1].AdjustedPrice.StringFixed(2))
	assert.Equal(t, "330.00", res.TotalHT.StringFixed(2))
}

func TestCreateQuote_EntradaInvalida(t *testing.T) {
	uc := newQuoteUseCase(memstore.New())
	ctx := context.Background()

	zeroQty := paintLine("0", "")
	_, err := uc.Create(ctx, "u1", dto.CreateQuoteRequest{Client: dto.ClientDTO{LastName: "X"}, Lines: []dto.LineItemRequest{zeroQty}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, "u1", dto.CreateQuoteRequest{Client: dto.ClientDTO{LastName: "X"}, TaxRate: decPtr("120")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	badTerms := &dto.PaymentTermsDTO{Mode: "installments", Installments: []dto.InstallmentDTO{{Label: "Acompte", Percent: dec("50")}}}
	_, err = uc.Create(ctx, "u1", dto.CreateQuoteRequest{Client: dto.ClientDTO{LastName: "X"}, PaymentTerms: badTerms})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Una TVA con más de dos decimales no se puede guardar tal cual en NUMERIC(5,2):
// los totales dejarían de cuadrar al releer el devis.
func TestQuote_TasaConMasDeDosDecimales_Invalida(t *testing.T) {
	store := memstore.New()
	uc := newQuoteUseCase(store)
	ctx := context.Background()

	_, err := uc.Create(ctx, "u1", dto.CreateQuoteRequest{
		Client:  dto.ClientDTO{LastName: "X"},
		Lines:   []dto.LineItemRequest{paintLine("100", "10")},
		TaxRate: decPtr("5.555"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	res := createSample(t, uc, "u1")
	_, err = uc.Update(ctx, "u1", res.ID, dto.UpdateQuoteRequest{TaxRate: decPtr("5.555")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ok, err := uc.Update(ctx, "u1", res.ID, dto.UpdateQuoteRequest{TaxRate: decPtr("5.5")})
	require.NoError(t, err)
	assert.True(t, ok.TotalTTC.Equal(ok.TotalHT.Mul(dec("1.055")).Round(2)))
}

func TestGetQuote_DeOtroUsuario_NoEncontrado(t *testing.T) {
	uc := newQuoteUseCase(memstore.New())
	res := createSample(t, uc, "u1")

	_, err := uc.Get(context.Background(), "u2", res.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.Delete(context.Background(), "u2", res.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateQuote_RecalculaTotalesYValidez(t *testing.T) {
	uc := newQuoteUseCase(memstore.New())
	res := createSample(t, uc, "u1")

	lines := []dto.LineItemRequest{paintLine("100", "12")}
	validity := 45
	updated, err := uc.Update(context.Background(), "u1", res.ID, dto.UpdateQuoteRequest{
		Lines:        &lines,
		TaxRate:      decPtr("10"),
		ValidityDays: &validity,
	})
	require.NoError(t, err)

	assert.Equal(t, "1200.00", updated.TotalHT.StringFixed(2))
	assert.Equal(t, "120.00", updated.TotalTVA.StringFixed(2))
	assert.Equal(t, "1320.00", updated.TotalTTC.StringFixed(2))
	assert.Equal(t, res.CreatedAt.AddDate(0, 0, 45), updated.ValidUntil)
	assert.Equal(t, res.Number, updated.Number)
}

func TestPatchQuote_CambiaEstado(t *testing.T) {
	uc := newQuoteUseCase(memstore.New())
	res := createSample(t, uc, "u1")
	ctx := context.Background()

	sent := "sent"
	patched, err := uc.Patch(ctx, "u1", res.ID, dto.PatchQuoteRequest{Status: &sent})
	require.NoError(t, err)
	assert.Equal(t, "sent", patched.Status)
	assert.Equal(t, "900.00", patched.TotalTTC.StringFixed(2))

	invoiced := "invoiced"
	_, err = uc.Patch(ctx, "u1", res.ID, dto.PatchQuoteRequest{Status: &invoiced})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	unknown := "archived"
	_, err = uc.Patch(ctx, "u1", res.ID, dto.PatchQuoteRequest{Status: &unknown})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQuoteFacturado_NoEditableNiBorrable(t *testing.T) {
	store := memstore.New()
	uc := newQuoteUseCase(store)
	res := createSample(t, uc, "u1")
	ctx := context.Background()
	require.NoError(t, store.Quotes().UpdateStatus(ctx, "u1", res.ID, entity.QuoteInvoiced))

	notes := "x"
	_, err := uc.Update(ctx, "u1", res.ID, dto.UpdateQuoteRequest{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Patch(ctx, "u1", res.ID, dto.PatchQuoteRequest{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = uc.Delete(ctx, "u1", res.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestListQuotes_FiltraPorEstado(t *testing.T) {
	uc := newQuoteUseCase(memstore.New())
	createSample(t, uc, "u1")
	createSample(t, uc, "u2")
	ctx := context.Background()

	all, err := uc.List(ctx, "u1", "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Claire Martin", all[0].ClientName)

	none, err := uc.List(ctx, "u1", "accepted")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = uc.List(ctx, "u1", "bogus")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListQuotes_MasRecientesPrimero(t *testing.T) {
	store := memstore.New()
	uc := billing.NewQuoteUseCase(store.Quotes(), defaultProfiles(), billing.QuoteDefaults{ValidityDays: 30}, nil).
		WithClock(steppingClock(time.Hour))
	first := createSample(t, uc, "u1")
	second := createSample(t, uc, "u1")
	third := createSample(t, uc, "u1")

	list, err := uc.List(context.Background(), "u1", "")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{third.ID, second.ID, first.ID}, []string{list[0].ID, list[1].ID, list[2].ID})
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt))
	assert.NotEqual(t, first.Number, third.Number)
}
