package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/devis-renovation-api/internal/domain"
	"github.com/jhoicas/devis-renovation-api/internal/domain/repository"
)

// PDFUseCase genera el PDF de un devis o de una factura del usuario.
type PDFUseCase struct {
	quotes    repository.QuoteRepository
	invoices  repository.InvoiceRepository
	profiles  CompanyProfileProvider
	generator DocumentPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	quotes repository.QuoteRepository,
	invoices repository.InvoiceRepository,
	profiles CompanyProfileProvider,
	generator DocumentPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{quotes: quotes, invoices: invoices, profiles: profiles, generator: generator}
}

// QuotePDF devuelve (pdfBytes, filename). domain.ErrNotFound si el devis no existe o es de otro usuario.
func (uc *PDFUseCase) QuotePDF(ctx context.Context, userID, quoteID string) ([]byte, string, error) {
	// ── 1. Cargar devis ───────────────────────────────────────────────────────
	q, err := uc.quotes.GetByID(ctx, userID, quoteID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener devis: %w", err)
	}
	if q == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 2. Empresa + modelo de vista ──────────────────────────────────────────
	company, err := uc.profiles.Profile(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	doc := BuildPrintable(DocumentQuote, SourceFromQuote(q), company)

	// ── 3. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err := uc.generator.GenerateDocumentPDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("Devis_%s.pdf", q.Number), nil
}

// InvoicePDF devuelve (pdfBytes, filename). domain.ErrNotFound si la factura no existe o es de otro usuario.
func (uc *PDFUseCase) InvoicePDF(ctx context.Context, userID, invoiceID string) ([]byte, string, error) {
	inv, err := uc.invoices.GetByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	company, err := uc.profiles.Profile(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	doc := BuildPrintable(DocumentInvoice, SourceFromInvoice(inv), company)

	pdfBytes, err := uc.generator.GenerateDocumentPDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("Facture_%s.pdf", inv.Number), nil
}
