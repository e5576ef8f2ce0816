package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
)

// AnalyticsRepository consultas de solo lectura para el dashboard.
type AnalyticsRepository interface {
	// CountQuotesByStatus devuelve el número de devis del usuario por estado.
	CountQuotesByStatus(ctx context.Context, userID string) (map[entity.QuoteStatus]int, error)
	// SumInvoices suma el TTC de las facturas en el estado dado; si from no es cero,
	// solo cuenta las pagadas desde esa fecha (paid_at >= from).
	SumInvoices(ctx context.Context, userID string, status entity.InvoiceStatus, from time.Time) (decimal.Decimal, error)
}
