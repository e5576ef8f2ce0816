package repository

import (
	"context"

	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
)

// QuoteRepository persistencia de devis. Todas las operaciones están acotadas al propietario:
// un devis de otro usuario se comporta como inexistente.
type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	// GetByID devuelve (nil, nil) si no existe o no pertenece a userID.
	GetByID(ctx context.Context, userID, id string) (*entity.Quote, error)
	// Update reemplaza el documento completo; devuelve domain.ErrNotFound si no existe.
	Update(ctx context.Context, quote *entity.Quote) error
	// UpdateStatus cambia solo el estado; devuelve domain.ErrNotFound si no existe.
	UpdateStatus(ctx context.Context, userID, id string, status entity.QuoteStatus) error
	// Delete devuelve domain.ErrNotFound si no existe.
	Delete(ctx context.Context, userID, id string) error
	// List ordena por fecha de creación descendente; status vacío = todos.
	List(ctx context.Context, userID string, status entity.QuoteStatus) ([]entity.QuoteSummary, error)
}
