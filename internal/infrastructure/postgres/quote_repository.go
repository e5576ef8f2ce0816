package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/devis-renovation-api/internal/domain"
	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
	"github.com/jhoicas/devis-renovation-api/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo implementación de QuoteRepository (usable con pool o tx).
// Cliente, líneas y condiciones de pago se guardan como JSONB.
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

const quoteColumns = `id, user_id, number, client, created_at, validity_days, valid_until, tax_rate,
		       total_ht, total_tva, total_ttc, status, payment_terms, notes, lines, updated_at`

// Create persiste un devis nuevo.
func (r *QuoteRepo) Create(ctx context.Context, quote *entity.Quote) error {
	client, lines, terms, err := encodeDocument(quote.Client, quote.Lines, quote.PaymentTerms)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err = r.q.Exec(ctx, query,
		quote.ID, quote.UserID, quote.Number, client, quote.CreatedAt, quote.ValidityDays, quote.ValidUntil,
		quote.TaxRate, quote.TotalHT, quote.TotalTVA, quote.TotalTTC, string(quote.Status),
		terms, quote.Notes, lines, quote.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// GetByID obtiene el devis del usuario; (nil, nil) si no existe o es de otro usuario.
// Los registros antiguos se completan con Quote.WithDefaults.
func (r *QuoteRepo) GetByID(ctx context.Context, userID, id string) (*entity.Quote, error) {
	if !validID(id) || !validID(userID) {
		return nil, nil
	}
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1 AND user_id = $2`
	q, err := scanQuote(r.q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return q.WithDefaults(entity.DefaultPaymentTerms()), nil
}

// Update reemplaza el documento completo del devis.
func (r *QuoteRepo) Update(ctx context.Context, quote *entity.Quote) error {
	if !validID(quote.ID) || !validID(quote.UserID) {
		return domain.ErrNotFound
	}
	client, lines, terms, err := encodeDocument(quote.Client, quote.Lines, quote.PaymentTerms)
	if err != nil {
		return err
	}
	query := `
		UPDATE quotes
		SET client        = $3,
		    validity_days = $4,
		    valid_until   = $5,
		    tax_rate      = $6,
		    total_ht      = $7,
		    total_tva     = $8,
		    total_ttc     = $9,
		    status        = $10,
		    payment_terms = $11,
		    notes         = $12,
		    lines         = $13,
		    updated_at    = $14
		WHERE id = $1 AND user_id = $2`
	tag, err := r.q.Exec(ctx, query,
		quote.ID, quote.UserID, client, quote.ValidityDays, quote.ValidUntil, quote.TaxRate,
		quote.TotalHT, quote.TotalTVA, quote.TotalTTC, string(quote.Status), terms, quote.Notes,
		lines, quote.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia solo el estado.
func (r *QuoteRepo) UpdateStatus(ctx context.Context, userID, id string, status entity.QuoteStatus) error {
	if !validID(id) || !validID(userID) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE quotes SET status = $3, updated_at = $4 WHERE id = $1 AND user_id = $2`,
		id, userID, string(status), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("update quote status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el devis del usuario.
func (r *QuoteRepo) Delete(ctx context.Context, userID, id string) error {
	if !validID(id) || !validID(userID) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM quotes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devis del usuario, más recientes primero; status vacío = todos.
func (r *QuoteRepo) List(ctx context.Context, userID string, status entity.QuoteStatus) ([]entity.QuoteSummary, error) {
	list := make([]entity.QuoteSummary, 0)
	if !validID(userID) {
		return list, nil
	}
	query := `
		SELECT id, number, client, created_at, total_ttc, status
		FROM quotes
		WHERE user_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, userID, string(status))
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s entity.QuoteSummary
		var client []byte
		var st string
		if err := rows.Scan(&s.ID, &s.Number, &client, &s.CreatedAt, &s.TotalTTC, &st); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		var c entity.Client
		if err := fromJSONB(client, &c); err != nil {
			return nil, err
		}
		s.ClientName = c.FullName()
		s.Status = entity.QuoteStatus(st)
		list = append(list, s)
	}
	return list, rows.Err()
}

// scanQuote lee una fila con quoteColumns. Las columnas añadidas después de la
// primera versión (valid_until, total_tva, payment_terms, notes) pueden ser NULL.
func scanQuote(row pgx.Row) (*entity.Quote, error) {
	var q entity.Quote
	var client, terms, lines []byte
	var validityDays *int
	var validUntil, updatedAt *time.Time
	var totalTVA decimal.NullDecimal
	var notes *string
	var status string
	if err := row.Scan(
		&q.ID, &q.UserID, &q.Number, &client, &q.CreatedAt, &validityDays, &validUntil, &q.TaxRate,
		&q.TotalHT, &totalTVA, &q.TotalTTC, &status, &terms, &notes, &lines, &updatedAt,
	); err != nil {
		return nil, err
	}
	if err := fromJSONB(client, &q.Client); err != nil {
		return nil, err
	}
	if err := fromJSONB(terms, &q.PaymentTerms); err != nil {
		return nil, err
	}
	if err := fromJSONB(lines, &q.Lines); err != nil {
		return nil, err
	}
	if validityDays != nil {
		q.ValidityDays = *validityDays
	}
	if validUntil != nil {
		q.ValidUntil = *validUntil
	}
	if updatedAt != nil {
		q.UpdatedAt = *updatedAt
	}
	if totalTVA.Valid {
		q.TotalTVA = totalTVA.Decimal
	}
	q.Notes = derefStr(notes)
	q.Status = entity.QuoteStatus(status)
	if q.Lines == nil {
		q.Lines = []entity.LineItem{}
	}
	return &q, nil
}

func encodeDocument(client entity.Client, lines []entity.LineItem, terms entity.PaymentTerms) ([]byte, []byte, []byte, error) {
	if lines == nil {
		lines = []entity.LineItem{}
	}
	c, err := toJSONB(client)
	if err != nil {
		return nil, nil, nil, err
	}
	l, err := toJSONB(lines)
	if err != nil {
		return nil, nil, nil, err
	}
	t, err := toJSONB(terms)
	if err != nil {
		return nil, nil, nil, err
	}
	return c, l, t, nil
}
