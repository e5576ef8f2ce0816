package billing

import (
	"context"

	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
	"github.com/jhoicas/devis-renovation-api/internal/domain/repository"
)

// InvoicingTxRunner ejecuta una función dentro de una transacción que incluye repos de devis y facturas.
type InvoicingTxRunner interface {
	RunInvoicing(ctx context.Context, fn func(
		quoteRepo repository.QuoteRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// CompanyProfileProvider devuelve el perfil de empresa del usuario (creado con valores por defecto si falta).
type CompanyProfileProvider interface {
	Profile(ctx context.Context, userID string) (*entity.CompanyProfile, error)
}

// DocumentPDFGenerator renderiza un documento imprimible (devis o factura) a PDF.
type DocumentPDFGenerator interface {
	GenerateDocumentPDF(ctx context.Context, doc *PrintableDocument) ([]byte, error)
}
