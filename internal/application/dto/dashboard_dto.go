package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	// Número de devis por estado (draft, sent, accepted...).
	QuotesByStatus map[string]int `json:"quotes_by_status"`
	QuotesTotal    int            `json:"quotes_total"`

	// Importes TTC de facturas: pendientes de cobro y cobradas en el mes en curso.
	PendingTTC       decimal.Decimal `json:"pending_ttc"`
	PaidThisMonthTTC decimal.Decimal `json:"paid_this_month_ttc"`

	RecentQuotes []QuoteSummaryResponse `json:"recent_quotes"`

	DateLabel string `json:"date_label"` // ej: "Octobre 2026"
}
