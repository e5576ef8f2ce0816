package billing_test

import (
	"context"
	"time"

	"github.com/jhoicas/devis-renovation-api/internal/application/billing"
	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
	"github.com/jhoicas/devis-renovation-api/internal/testutil/memstore"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

type staticProfiles struct {
	profile *entity.CompanyProfile
}

func (s staticProfiles) Profile(_ context.Context, userID string) (*entity.CompanyProfile, error) {
	p := *s.profile
	p.UserID = userID
	return &p, nil
}

func defaultProfiles() staticProfiles {
	return staticProfiles{profile: entity.NewCompanyProfile(&entity.User{Name: "Rénov Pro", Email: "contact@renov.fr"}, time.Now())}
}

type capturePDF struct {
	last *billing.PrintableDocument
}

func (c *capturePDF) GenerateDocumentPDF(_ context.Context, doc *billing.PrintableDocument) ([]byte, error) {
	c.last = doc
	return []byte("%PDF-1.4 fake"), nil
}

var (
	_ billing.InvoicingTxRunner      = (*memstore.TxRunner)(nil)
	_ billing.CompanyProfileProvider = staticProfiles{}
	_ billing.DocumentPDFGenerator   = (*capturePDF)(nil)
)

func fixedClock() time.Time { return time.Date(2024, 5, 14, 9, 30, 0, 0, time.UTC) }

// steppingClock avanza step en cada llamada a partir de fixedClock.
func steppingClock(step time.Duration) func() time.Time {
	next := fixedClock()
	return func() time.Time {
		now := next
		next = next.Add(step)
		return now
	}
}
