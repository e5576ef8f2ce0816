package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
	"github.com/jhoicas/devis-renovation-api/internal/domain/repository"
)

// Asegura que CompanyProfileRepo implementa repository.CompanyProfileRepository.
var _ repository.CompanyProfileRepository = (*CompanyProfileRepo)(nil)

// CompanyProfileRepo perfil de empresa por usuario sobre PostgreSQL.
type CompanyProfileRepo struct {
	q Querier
}

// NewCompanyProfileRepository construye el adaptador de persistencia para perfiles de empresa.
func NewCompanyProfileRepository(q Querier) *CompanyProfileRepo {
	return &CompanyProfileRepo{q: q}
}

// GetByUserID obtiene el perfil del usuario; (nil, nil) si aún no existe.
func (r *CompanyProfileRepo) GetByUserID(ctx context.Context, userID string) (*entity.CompanyProfile, error) {
	if !validID(userID) {
		return nil, nil
	}
	query := `
		SELECT user_id, company_name, address, postal_code, city, phone, email, siret, vat_number,
		       insurance, default_payment_terms, default_tax_rate, legal_mentions, warranty_text,
		       created_at, updated_at
		FROM company_profiles WHERE user_id = $1`
	var p entity.CompanyProfile
	var terms []byte
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.CompanyName, &p.Address, &p.PostalCode, &p.City, &p.Phone, &p.Email,
		&p.SIRET, &p.VATNumber, &p.Insurance, &terms, &p.DefaultTaxRate,
		&p.LegalMentions, &p.WarrantyText, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company profile: %w", err)
	}
	if err := fromJSONB(terms, &p.DefaultPaymentTerms); err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert crea o reemplaza el perfil del usuario.
func (r *CompanyProfileRepo) Upsert(ctx context.Context, p *entity.CompanyProfile) error {
	terms, err := toJSONB(p.DefaultPaymentTerms)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO company_profiles (user_id, company_name, address, postal_code, city, phone, email,
		       siret, vat_number, insurance, default_payment_terms, default_tax_rate,
		       legal_mentions, warranty_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (user_id) DO UPDATE SET
		       company_name          = EXCLUDED.company_name,
		       address               = EXCLUDED.address,
		       postal_code           = EXCLUDED.postal_code,
		       city                  = EXCLUDED.city,
		       phone                 = EXCLUDED.phone,
		       email                 = EXCLUDED.email,
		       siret                 = EXCLUDED.siret,
		       vat_number            = EXCLUDED.vat_number,
		       insurance             = EXCLUDED.insurance,
		       default_payment_terms = EXCLUDED.default_payment_terms,
		       default_tax_rate      = EXCLUDED.default_tax_rate,
		       legal_mentions        = EXCLUDED.legal_mentions,
		       warranty_text         = EXCLUDED.warranty_text,
		       updated_at            = EXCLUDED.updated_at`
	_, err = r.q.Exec(ctx, query,
		p.UserID, p.CompanyName, p.Address, p.PostalCode, p.City, p.Phone, p.Email,
		p.SIRET, p.VATNumber, p.Insurance, terms, p.DefaultTaxRate,
		p.LegalMentions, p.WarrantyText, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert company profile: %w", err)
	}
	return nil
}
