// Package memstore implementa los puertos de repositorio en memoria para tests de casos de uso y handlers.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/devis-renovation-api/internal/domain"
	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
	"github.com/jhoicas/devis-renovation-api/internal/domain/repository"
)

// Store agrupa todas las tablas; cada repositorio comparte el mismo mutex.
type Store struct {
	mu         sync.Mutex
	users      map[string]*entity.User
	profiles   map[string]*entity.CompanyProfile
	quotes     map[string]*entity.Quote
	invoices   map[string]*entity.Invoice
	references map[entity.ReferenceCatalog][]entity.ReferenceItem
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		users:      map[string]*entity.User{},
		profiles:   map[string]*entity.CompanyProfile{},
		quotes:     map[string]*entity.Quote{},
		invoices:   map[string]*entity.Invoice{},
		references: map[entity.ReferenceCatalog][]entity.ReferenceItem{},
	}
}

// Repositorios sobre el store.
func (s *Store) Users() *Users           { return &Users{s} }
func (s *Store) Profiles() *Profiles     { return &Profiles{s} }
func (s *Store) Quotes() *Quotes         { return &Quotes{s} }
func (s *Store) Invoices() *Invoices     { return &Invoices{s} }
func (s *Store) References() *References { return &References{s} }
func (s *Store) Analytics() *Analytics   { return &Analytics{s} }
func (s *Store) TxRunner() *TxRunner     { return &TxRunner{s} }

var (
	_ repository.UserRepository           = (*Users)(nil)
	_ repository.CompanyProfileRepository = (*Profiles)(nil)
	_ repository.QuoteRepository          = (*Quotes)(nil)
	_ repository.InvoiceRepository        = (*Invoices)(nil)
	_ repository.ReferenceRepository      = (*References)(nil)
	_ repository.AnalyticsRepository      = (*Analytics)(nil)
)

// ── Users ─────────────────────────────────────────────────────────────────────

// Users implementa repository.UserRepository.
type Users struct{ s *Store }

func (r *Users) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, cur := range r.s.users {
		if strings.EqualFold(cur.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *Users) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// ── Company profiles ──────────────────────────────────────────────────────────

// Profiles implementa repository.CompanyProfileRepository.
type Profiles struct{ s *Store }

func (r *Profiles) GetByUserID(_ context.Context, userID string) (*entity.CompanyProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *Profiles) Upsert(_ context.Context, p *entity.CompanyProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.profiles[p.UserID] = &cp
	return nil
}

// ── Quotes ────────────────────────────────────────────────────────────────────

// Quotes implementa repository.QuoteRepository.
type Quotes struct{ s *Store }

func cloneQuote(q *entity.Quote) *entity.Quote {
	cp := *q
	cp.Lines = append([]entity.LineItem(nil), q.Lines...)
	return &cp
}

func (r *Quotes) Create(_ context.Context, q *entity.Quote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.quotes[q.ID] = cloneQuote(q)
	return nil
}

func (r *Quotes) GetByID(_ context.Context, userID, id string) (*entity.Quote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.quotes[id]
	if !ok || q.UserID != userID {
		return nil, nil
	}
	return cloneQuote(q).WithDefaults(entity.DefaultPaymentTerms()), nil
}

func (r *Quotes) Update(_ context.Context, q *entity.Quote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.quotes[q.ID]
	if !ok || cur.UserID != q.UserID {
		return domain.ErrNotFound
	}
	r.s.quotes[q.ID] = cloneQuote(q)
	return nil
}

func (r *Quotes) UpdateStatus(_ context.Context, userID, id string, status entity.QuoteStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.quotes[id]
	if !ok || q.UserID != userID {
		return domain.ErrNotFound
	}
	q.Status = status
	return nil
}

func (r *Quotes) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.quotes[id]
	if !ok || q.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.s.quotes, id)
	return nil
}

func (r *Quotes) List(_ context.Context, userID string, status entity.QuoteStatus) ([]entity.QuoteSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.QuoteSummary
	for _, q := range r.s.quotes {
		if q.UserID != userID || (status != "" && q.Status != status) {
			continue
		}
		out = append(out, entity.QuoteSummary{
			ID: q.ID, Number: q.Number, ClientName: q.Client.FullName(),
			CreatedAt: q.CreatedAt, TotalTTC: q.TotalTTC, Status: q.Status,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ── Invoices ──────────────────────────────────────────────────────────────────

// Invoices implementa repository.InvoiceRepository; quote_id es único como en la base.
type Invoices struct{ s *Store }

func (r *Invoices) Create(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, cur := range r.s.invoices {
		if cur.QuoteID == inv.QuoteID {
			return domain.ErrInvoiceExists
		}
	}
	cp := *inv
	r.s.invoices[inv.ID] = &cp
	return nil
}

func (r *Invoices) GetByID(_ context.Context, userID, id string) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok || inv.UserID != userID {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *Invoices) GetByQuoteID(_ context.Context, userID, quoteID string) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, inv := range r.s.invoices {
		if inv.UserID == userID && inv.QuoteID == quoteID {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *Invoices) MarkPaid(_ context.Context, userID, id string, paidAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok || inv.UserID != userID {
		return domain.ErrNotFound
	}
	inv.Status = entity.InvoicePaid
	inv.PaidAt = &paidAt
	inv.UpdatedAt = paidAt
	return nil
}

func (r *Invoices) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok || inv.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.s.invoices, id)
	return nil
}

func (r *Invoices) List(_ context.Context, userID string) ([]entity.InvoiceSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.InvoiceSummary
	for _, inv := range r.s.invoices {
		if inv.UserID != userID {
			continue
		}
		out = append(out, entity.InvoiceSummary{
			ID: inv.ID, Number: inv.Number, QuoteID: inv.QuoteID, QuoteNumber: inv.QuoteNumber,
			ClientName: inv.Client.FullName(), CreatedAt: inv.CreatedAt, PaidAt: inv.PaidAt,
			TotalTTC: inv.TotalTTC, Status: inv.Status,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ── References ────────────────────────────────────────────────────────────────

// References implementa repository.ReferenceRepository.
type References struct{ s *Store }

func (r *References) Count(_ context.Context, kind entity.ReferenceCatalog) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.references[kind]), nil
}

func (r *References) InsertMany(_ context.Context, kind entity.ReferenceCatalog, items []entity.ReferenceItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.references[kind] = append(r.s.references[kind], items...)
	return nil
}

func (r *References) List(_ context.Context, kind entity.ReferenceCatalog, category string) ([]entity.ReferenceItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.ReferenceItem
	for _, it := range r.s.references[kind] {
		if category == "" || it.Category == category {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

// ── Analytics ─────────────────────────────────────────────────────────────────

// Analytics implementa repository.AnalyticsRepository sobre los mapas del store.
type Analytics struct{ s *Store }

func (r *Analytics) CountQuotesByStatus(_ context.Context, userID string) (map[entity.QuoteStatus]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[entity.QuoteStatus]int{}
	for _, q := range r.s.quotes {
		if q.UserID == userID {
			out[q.Status]++
		}
	}
	return out, nil
}

func (r *Analytics) SumInvoices(_ context.Context, userID string, status entity.InvoiceStatus, from time.Time) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	for _, inv := range r.s.invoices {
		if inv.UserID != userID || inv.Status != status {
			continue
		}
		if !from.IsZero() && (inv.PaidAt == nil || inv.PaidAt.Before(from)) {
			continue
		}
		total = total.Add(inv.TotalTTC)
	}
	return total, nil
}

// ── Tx ────────────────────────────────────────────────────────────────────────

// TxRunner ejecuta la función con los repositorios del store y restaura
// devis y facturas si devuelve error.
type TxRunner struct{ s *Store }

// RunInvoicing implementa billing.InvoicingTxRunner.
func (t *TxRunner) RunInvoicing(_ context.Context, fn func(repository.QuoteRepository, repository.InvoiceRepository) error) error {
	quotes, invoices := t.snapshot()
	if err := fn(t.s.Quotes(), t.s.Invoices()); err != nil {
		t.s.mu.Lock()
		t.s.quotes, t.s.invoices = quotes, invoices
		t.s.mu.Unlock()
		return err
	}
	return nil
}

func (t *TxRunner) snapshot() (map[string]*entity.Quote, map[string]*entity.Invoice) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	quotes := make(map[string]*entity.Quote, len(t.s.quotes))
	for id, q := range t.s.quotes {
		quotes[id] = cloneQuote(q)
	}
	invoices := make(map[string]*entity.Invoice, len(t.s.invoices))
	for id, inv := range t.s.invoices {
		cp := *inv
		invoices[id] = &cp
	}
	return quotes, invoices
}
