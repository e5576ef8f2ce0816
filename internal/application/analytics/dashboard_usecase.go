// Package analytics contiene el caso de uso del tablero de actividad (devis y facturación).
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/devis-renovation-api/internal/application/dto"
	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
	"github.com/jhoicas/devis-renovation-api/internal/domain/repository"
)

const dashboardRecentQuotes = 3 // devis recientes en el widget del dashboard

// DashboardUseCase genera el resumen de actividad del usuario.
//
// Fuente de datos: AnalyticsRepository (agregados read-only) y QuoteRepository (listado reciente).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	quoteRepo     repository.QuoteRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, quoteRepo repository.QuoteRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, quoteRepo: quoteRepo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO del usuario.
//
// Cuatro llamadas en paralelo:
//  1. CountQuotesByStatus        → QuotesByStatus + QuotesTotal
//  2. SumInvoices(pending)       → PendingTTC
//  3. SumInvoices(paid, mes)     → PaidThisMonthTTC
//  4. List devis (3 primeros)    → RecentQuotes
func (uc *DashboardUseCase) GetSummary(ctx context.Context, userID string) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	// ── Goroutines para paralelizar las consultas ─────────────────────────────
	type countResult struct {
		counts map[entity.QuoteStatus]int
		err    error
	}
	type sumResult struct {
		total decimal.Decimal
		err   error
	}
	type recentResult struct {
		quotes []entity.QuoteSummary
		err    error
	}

	countCh := make(chan countResult, 1)
	pendingCh := make(chan sumResult, 1)
	paidCh := make(chan sumResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		counts, err := uc.analyticsRepo.CountQuotesByStatus(ctx, userID)
		countCh <- countResult{counts, err}
	}()
	go func() {
		total, err := uc.analyticsRepo.SumInvoices(ctx, userID, entity.InvoicePending, time.Time{})
		pendingCh <- sumResult{total, err}
	}()
	go func() {
		total, err := uc.analyticsRepo.SumInvoices(ctx, userID, entity.InvoicePaid, monthStart)
		paidCh <- sumResult{total, err}
	}()
	go func() {
		quotes, err := uc.quoteRepo.List(ctx, userID, "")
		recentCh <- recentResult{quotes, err}
	}()

	counts := <-countCh
	pending := <-pendingCh
	paid := <-paidCh
	recent := <-recentCh

	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: devis por estado: %w", counts.err)
	}
	if pending.err != nil {
		return nil, fmt.Errorf("dashboard: facturas pendientes: %w", pending.err)
	}
	if paid.err != nil {
		return nil, fmt.Errorf("dashboard: facturas pagadas: %w", paid.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: devis recientes: %w", recent.err)
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	byStatus := make(map[string]int, len(counts.counts))
	total := 0
	for status, n := range counts.counts {
		byStatus[string(status)] = n
		total += n
	}
	quotes := recent.quotes
	if len(quotes) > dashboardRecentQuotes {
		quotes = quotes[:dashboardRecentQuotes]
	}

	return &dto.DashboardSummaryDTO{
		QuotesByStatus:   byStatus,
		QuotesTotal:      total,
		PendingTTC:       pending.total.Round(2),
		PaidThisMonthTTC: paid.total.Round(2),
		RecentQuotes:     dto.FromQuoteSummaries(quotes),
		DateLabel:        monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Octobre 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
		"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
