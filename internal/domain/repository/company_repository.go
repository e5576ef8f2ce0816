package repository

import (
	"context"

	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
)

// CompanyProfileRepository persistencia del perfil de empresa (uno por usuario).
type CompanyProfileRepository interface {
	// GetByUserID devuelve (nil, nil) si el usuario aún no tiene perfil.
	GetByUserID(ctx context.Context, userID string) (*entity.CompanyProfile, error)
	// Upsert crea o reemplaza el perfil del usuario.
	Upsert(ctx context.Context, profile *entity.CompanyProfile) error
}
