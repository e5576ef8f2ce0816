package repository

import (
	"context"

	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
)

// ReferenceRepository acceso a los catálogos de precios (una tabla por catálogo).
type ReferenceRepository interface {
	Count(ctx context.Context, catalog entity.ReferenceCatalog) (int, error)
	InsertMany(ctx context.Context, catalog entity.ReferenceCatalog, items []entity.ReferenceItem) error
	// List devuelve los ítems ordenados por posición; category filtra extras (vacío = todos).
	List(ctx context.Context, catalog entity.ReferenceCatalog, category string) ([]entity.ReferenceItem, error)
}
