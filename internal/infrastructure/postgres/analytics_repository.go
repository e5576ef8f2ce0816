package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
	"github.com/jhoicas/devis-renovation-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// CountQuotesByStatus agrupa los devis del usuario por estado.
func (r *AnalyticsRepo) CountQuotesByStatus(ctx context.Context, userID string) (map[entity.QuoteStatus]int, error) {
	out := make(map[entity.QuoteStatus]int)
	if !validID(userID) {
		return out, nil
	}
	const query = `
	SELECT status, COUNT(*)
	FROM quotes
	WHERE user_id = $1
	GROUP BY status`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("analytics.CountQuotesByStatus: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("analytics.CountQuotesByStatus scan: %w", err)
		}
		out[entity.QuoteStatus(status)] = n
	}
	return out, rows.Err()
}

// SumInvoices total TTC de las facturas en el estado dado; from no nulo filtra por paid_at >= from.
func (r *AnalyticsRepo) SumInvoices(ctx context.Context, userID string, status entity.InvoiceStatus, from time.Time) (decimal.Decimal, error) {
	if !validID(userID) {
		return decimal.Zero, nil
	}
	const query = `
	SELECT COALESCE(SUM(total_ttc), 0)
	FROM invoices
	WHERE user_id = $1
	  AND status  = $2
	  AND ($3::timestamptz IS NULL OR paid_at >= $3)`
	var fromArg *time.Time
	if !from.IsZero() {
		fromArg = &from
	}
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, userID, string(status), fromArg).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.SumInvoices: %w", err)
	}
	return total, nil
}
