package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/devis-renovation-api/internal/domain"
	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
	"github.com/jhoicas/devis-renovation-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, user_id, quote_id, quote_number, number, client, created_at, paid_at, tax_rate,
		       total_ht, total_tva, total_ttc, status, payment_terms, notes, lines, updated_at`

// Create persiste la factura. El índice único sobre quote_id convierte un segundo intento en ErrInvoiceExists.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	client, lines, terms, err := encodeDocument(inv.Client, inv.Lines, inv.PaymentTerms)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err = r.q.Exec(ctx, query,
		inv.ID, inv.UserID, inv.QuoteID, inv.QuoteNumber, inv.Number, client, inv.CreatedAt, inv.PaidAt,
		inv.TaxRate, inv.TotalHT, inv.TotalTVA, inv.TotalTTC, string(inv.Status), terms, inv.Notes,
		lines, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvoiceExists
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura completa del usuario.
func (r *InvoiceRepo) GetByID(ctx context.Context, userID, id string) (*entity.Invoice, error) {
	if !validID(id) || !validID(userID) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 AND user_id = $2`, id, userID)
}

// GetByQuoteID obtiene la factura de un devis, si existe.
func (r *InvoiceRepo) GetByQuoteID(ctx context.Context, userID, quoteID string) (*entity.Invoice, error) {
	if !validID(quoteID) || !validID(userID) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE quote_id = $1 AND user_id = $2`, quoteID, userID)
}

func (r *InvoiceRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// MarkPaid pasa la factura a pagada y registra la fecha de pago.
func (r *InvoiceRepo) MarkPaid(ctx context.Context, userID, id string, paidAt time.Time) error {
	if !validID(id) || !validID(userID) {
		return domain.ErrNotFound
	}
	query := `
		UPDATE invoices
		SET status = $3, paid_at = $4, updated_at = $4
		WHERE id = $1 AND user_id = $2`
	tag, err := r.q.Exec(ctx, query, id, userID, string(entity.InvoicePaid), paidAt)
	if err != nil {
		return fmt.Errorf("mark invoice paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la factura del usuario.
func (r *InvoiceRepo) Delete(ctx context.Context, userID, id string) error {
	if !validID(id) || !validID(userID) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List facturas del usuario, más recientes primero.
func (r *InvoiceRepo) List(ctx context.Context, userID string) ([]entity.InvoiceSummary, error) {
	list := make([]entity.InvoiceSummary, 0)
	if !validID(userID) {
		return list, nil
	}
	query := `
		SELECT id, number, quote_id, quote_number, client, created_at, paid_at, total_ttc, status
		FROM invoices
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s entity.InvoiceSummary
		var client []byte
		var status string
		if err := rows.Scan(&s.ID, &s.Number, &s.QuoteID, &s.QuoteNumber, &client, &s.CreatedAt, &s.PaidAt, &s.TotalTTC, &status); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		var c entity.Client
		if err := fromJSONB(client, &c); err != nil {
			return nil, err
		}
		s.ClientName = c.FullName()
		s.Status = entity.InvoiceStatus(status)
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var client, terms, lines []byte
	var status string
	if err := row.Scan(
		&inv.ID, &inv.UserID, &inv.QuoteID, &inv.QuoteNumber, &inv.Number, &client, &inv.CreatedAt,
		&inv.PaidAt, &inv.TaxRate, &inv.TotalHT, &inv.TotalTVA, &inv.TotalTTC, &status, &terms,
		&inv.Notes, &lines, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := fromJSONB(client, &inv.Client); err != nil {
		return nil, err
	}
	if err := fromJSONB(terms, &inv.PaymentTerms); err != nil {
		return nil, err
	}
	if err := fromJSONB(lines, &inv.Lines); err != nil {
		return nil, err
	}
	if inv.PaymentTerms.IsZero() {
		inv.PaymentTerms = entity.DefaultPaymentTerms()
	}
	if inv.Lines == nil {
		inv.Lines = []entity.LineItem{}
	}
	inv.Status = entity.InvoiceStatus(status)
	return &inv, nil
}
