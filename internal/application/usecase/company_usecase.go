package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/devis-renovation-api/internal/application/dto"
	"github.com/jhoicas/devis-renovation-api/internal/domain"
	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
	"github.com/jhoicas/devis-renovation-api/internal/domain/repository"
)

// CompanyUseCase perfil de empresa del usuario (uno por usuario, creado al primer acceso).
type CompanyUseCase struct {
	repo     repository.CompanyProfileRepository
	userRepo repository.UserRepository
	taxRate  *decimal.Decimal
	now      func() time.Time
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
func NewCompanyUseCase(repo repository.CompanyProfileRepository, userRepo repository.UserRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, userRepo: userRepo, now: time.Now}
}

// WithDefaultTaxRate fija la TVA de los perfiles nuevos (QUOTE_DEFAULT_TAX_RATE).
func (uc *CompanyUseCase) WithDefaultTaxRate(rate decimal.Decimal) *CompanyUseCase {
	uc.taxRate = &rate
	return uc
}

// Profile devuelve el perfil del usuario, creándolo con valores por defecto si aún no existe.
func (uc *CompanyUseCase) Profile(ctx context.Context, userID string) (*entity.CompanyProfile, error) {
	profile, err := uc.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("company: obtener perfil: %w", err)
	}
	if profile != nil {
		return profile, nil
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("company: obtener usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	profile = entity.NewCompanyProfile(user, uc.now().UTC())
	if uc.taxRate != nil {
		profile.DefaultTaxRate = *uc.taxRate
	}
	if err := uc.repo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("company: crear perfil: %w", err)
	}
	return profile, nil
}

// Get devuelve el perfil como DTO.
func (uc *CompanyUseCase) Get(ctx context.Context, userID string) (*dto.CompanyProfileResponse, error) {
	profile, err := uc.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.FromCompanyProfile(profile), nil
}

// Update aplica una actualización parcial: solo cambian los campos presentes en la petición.
func (uc *CompanyUseCase) Update(ctx context.Context, userID string, in dto.UpdateCompanyProfileRequest) (*dto.CompanyProfileResponse, error) {
	profile, err := uc.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	setString(&profile.CompanyName, in.CompanyName)
	setString(&profile.Address, in.Address)
	setString(&profile.PostalCode, in.PostalCode)
	setString(&profile.City, in.City)
	setString(&profile.Phone, in.Phone)
	setString(&profile.Email, in.Email)
	setString(&profile.SIRET, in.SIRET)
	setString(&profile.VATNumber, in.VATNumber)
	setString(&profile.Insurance, in.Insurance)
	setString(&profile.LegalMentions, in.LegalMentions)
	setString(&profile.WarrantyText, in.WarrantyText)

	if in.DefaultPaymentTerms != nil {
		terms := dto.ToPaymentTerms(*in.DefaultPaymentTerms)
		if err := terms.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
		}
		profile.DefaultPaymentTerms = terms
	}
	if in.DefaultTaxRate != nil {
		if !entity.ValidTaxRate(*in.DefaultTaxRate) {
			return nil, fmt.Errorf("%w: default_tax_rate debe estar entre 0 y 100 con dos decimales como máximo", domain.ErrInvalidInput)
		}
		profile.DefaultTaxRate = *in.DefaultTaxRate
	}

	profile.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("company: guardar perfil: %w", err)
	}
	return dto.FromCompanyProfile(profile), nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
