package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/devis-renovation-api/internal/application/dto"
	"github.com/jhoicas/devis-renovation-api/internal/domain"
	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
	"github.com/jhoicas/devis-renovation-api/internal/domain/repository"
	"github.com/jhoicas/devis-renovation-api/pkg/logger"
)

// InvoiceUseCase facturas derivadas de un devis (como máximo una por devis).
type InvoiceUseCase struct {
	invoices repository.InvoiceRepository
	txRunner InvoicingTxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(invoices repository.InvoiceRepository, txRunner InvoicingTxRunner, log *logger.Logger) *InvoiceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &InvoiceUseCase{invoices: invoices, txRunner: txRunner, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *InvoiceUseCase) WithClock(now func() time.Time) *InvoiceUseCase {
	uc.now = now
	return uc
}

// Create factura un devis aceptado: copia cliente, líneas, totales y condiciones, y pasa el devis a invoiced.
// Inserción y cambio de estado van en la misma transacción; el índice único sobre quote_id
// resuelve dos peticiones simultáneas con ErrInvoiceExists.
func (uc *InvoiceUseCase) Create(ctx context.Context, userID, quoteID string) (*dto.InvoiceResponse, error) {
	var inv *entity.Invoice
	err := uc.txRunner.RunInvoicing(ctx, func(quoteRepo repository.QuoteRepository, invoiceRepo repository.InvoiceRepository) error {
		q, err := quoteRepo.GetByID(ctx, userID, quoteID)
		if err != nil {
			return fmt.Errorf("invoice: obtener devis: %w", err)
		}
		if q == nil {
			return domain.ErrNotFound
		}
		existing, err := invoiceRepo.GetByQuoteID(ctx, userID, quoteID)
		if err != nil {
			return fmt.Errorf("invoice: buscar factura previa: %w", err)
		}
		if existing != nil {
			return domain.ErrInvoiceExists
		}
		if q.Status != entity.QuoteAccepted {
			return fmt.Errorf("%w: solo se factura un devis aceptado (estado actual %s)", domain.ErrConflict, q.Status)
		}

		now := uc.now().UTC()
		inv = snapshot(q, now)
		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return err
		}
		return quoteRepo.UpdateStatus(ctx, userID, q.ID, entity.QuoteInvoiced)
	})
	if err != nil {
		if domain.IsConflict(err) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("invoice: crear: %w", err)
	}
	uc.log.Info().Str("user_id", userID).Str("invoice_id", inv.ID).Str("number", inv.Number).
		Str("quote_number", inv.QuoteNumber).Msg("factura creada")
	return dto.FromInvoice(inv), nil
}

// Get devuelve la factura del usuario.
func (uc *InvoiceUseCase) Get(ctx context.Context, userID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return dto.FromInvoice(inv), nil
}

// List facturas del usuario, más recientes primero.
func (uc *InvoiceUseCase) List(ctx context.Context, userID string) ([]dto.InvoiceSummaryResponse, error) {
	list, err := uc.invoices.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("invoice: listar: %w", err)
	}
	return dto.FromInvoiceSummaries(list), nil
}

// UpdateStatus solo admite pending → paid (registra paid_at). Repetir el estado actual no cambia nada;
// volver de paid a pending es un conflicto.
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, userID, id, status string) (*dto.InvoiceResponse, error) {
	target := entity.InvoiceStatus(status)
	if !target.Valid() {
		return nil, fmt.Errorf("%w: estado de factura desconocido %q", domain.ErrInvalidInput, status)
	}
	inv, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if inv.Status == target {
		return dto.FromInvoice(inv), nil
	}
	if target == entity.InvoicePending {
		return nil, fmt.Errorf("%w: la factura %s ya está pagada", domain.ErrConflict, inv.Number)
	}

	paidAt := uc.now().UTC()
	if err := uc.invoices.MarkPaid(ctx, userID, id, paidAt); err != nil {
		return nil, fmt.Errorf("invoice: marcar pagada: %w", err)
	}
	inv.Status = entity.InvoicePaid
	inv.PaidAt = &paidAt
	inv.UpdatedAt = paidAt
	uc.log.Info().Str("user_id", userID).Str("invoice_id", id).Msg("factura pagada")
	return dto.FromInvoice(inv), nil
}

// Delete borra la factura y devuelve el devis de origen al estado accepted, en una transacción.
func (uc *InvoiceUseCase) Delete(ctx context.Context, userID, id string) error {
	err := uc.txRunner.RunInvoicing(ctx, func(quoteRepo repository.QuoteRepository, invoiceRepo repository.InvoiceRepository) error {
		inv, err := invoiceRepo.GetByID(ctx, userID, id)
		if err != nil {
			return fmt.Errorf("invoice: obtener: %w", err)
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if err := invoiceRepo.Delete(ctx, userID, id); err != nil {
			return err
		}
		return quoteRepo.UpdateStatus(ctx, userID, inv.QuoteID, entity.QuoteAccepted)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("invoice: borrar: %w", err)
	}
	return nil
}

func (uc *InvoiceUseCase) load(ctx context.Context, userID, id string) (*entity.Invoice, error) {
	inv, err := uc.invoices.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("invoice: obtener: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// snapshot copia el devis en una factura nueva; cambios posteriores del devis no la afectan.
func snapshot(q *entity.Quote, now time.Time) *entity.Invoice {
	lines := make([]entity.LineItem, len(q.Lines))
	copy(lines, q.Lines)
	return &entity.Invoice{
		ID:           uuid.New().String(),
		UserID:       q.UserID,
		QuoteID:      q.ID,
		QuoteNumber:  q.Number,
		Number:       "FAC-" + now.Format(numberLayout),
		Client:       q.Client,
		CreatedAt:    now,
		TaxRate:      q.TaxRate,
		TotalHT:      q.TotalHT,
		TotalTVA:     q.TotalTVA,
		TotalTTC:     q.TotalTTC,
		Status:       entity.InvoicePending,
		PaymentTerms: q.PaymentTerms,
		Notes:        q.Notes,
		Lines:        lines,
		UpdatedAt:    now,
	}
}
