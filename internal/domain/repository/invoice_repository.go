package repository

import (
	"context"
	"time"

	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
)

// InvoiceRepository persistencia de facturas, acotada al propietario.
type InvoiceRepository interface {
	// Create devuelve domain.ErrInvoiceExists si el devis ya tiene factura (índice único).
	Create(ctx context.Context, invoice *entity.Invoice) error
	// GetByID devuelve (nil, nil) si no existe o no pertenece a userID.
	GetByID(ctx context.Context, userID, id string) (*entity.Invoice, error)
	// GetByQuoteID devuelve (nil, nil) si el devis no tiene factura.
	GetByQuoteID(ctx context.Context, userID, quoteID string) (*entity.Invoice, error)
	// MarkPaid devuelve domain.ErrNotFound si no existe.
	MarkPaid(ctx context.Context, userID, id string, paidAt time.Time) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string) ([]entity.InvoiceSummary, error)
}
