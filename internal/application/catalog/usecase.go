package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/devis-renovation-api/internal/application/dto"
	"github.com/jhoicas/devis-renovation-api/internal/domain"
	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
	"github.com/jhoicas/devis-renovation-api/internal/domain/repository"
	"github.com/jhoicas/devis-renovation-api/pkg/logger"
)

// UseCase lectura de los catálogos de referencia (público, sin usuario).
type UseCase struct {
	repo     repository.ReferenceRepository
	cache    Cache
	services entity.ServiceRates
	log      *logger.Logger
}

// NewUseCase construye el caso de uso. cache puede ser nil.
func NewUseCase(repo repository.ReferenceRepository, cache Cache, services entity.ServiceRates) *UseCase {
	return &UseCase{repo: repo, cache: cache, services: services, log: logger.Nop()}
}

// WithLogger registra los fallos de la caché.
func (uc *UseCase) WithLogger(log *logger.Logger) *UseCase {
	if log != nil {
		uc.log = log
	}
	return uc
}

// List ítems del catálogo en orden de posición; category solo filtra extras.
func (uc *UseCase) List(ctx context.Context, kind entity.ReferenceCatalog, category string) ([]dto.ReferenceItemResponse, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: catálogo desconocido %q", domain.ErrInvalidInput, kind)
	}
	if kind != entity.CatalogExtras {
		category = ""
	}
	// loadErr distingue un fallo del repositorio de uno de Redis.
	var loadErr error
	loader := func(ctx context.Context) (any, error) {
		items, err := uc.repo.List(ctx, kind, category)
		if err != nil {
			loadErr = err
			return nil, err
		}
		return dto.FromReferenceItems(items), nil
	}
	direct := func() ([]dto.ReferenceItemResponse, error) {
		v, err := loader(ctx)
		if err != nil {
			return nil, fmt.Errorf("catalog: listar %s: %w", kind, err)
		}
		return v.([]dto.ReferenceItemResponse), nil
	}

	if uc.cache == nil {
		return direct()
	}

	// Redis caído se trata como fallo de caché: se lee directo del repositorio.
	key, err := uc.cache.BuildKey(ctx, "catalog", string(kind), category)
	if err != nil {
		uc.log.Warn().Err(err).Str("catalog", string(kind)).Msg("caché no disponible; lectura directa")
		return direct()
	}
	var out []dto.ReferenceItemResponse
	if err := uc.cache.FetchJSON(ctx, key, &out, loader); err != nil {
		if loadErr != nil {
			return nil, fmt.Errorf("catalog: listar %s: %w", kind, loadErr)
		}
		uc.log.Warn().Err(err).Str("catalog", string(kind)).Msg("caché no disponible; lectura directa")
		return direct()
	}
	if out == nil {
		out = []dto.ReferenceItemResponse{}
	}
	return out, nil
}

// Services tarifas de desplazamiento, entrega y evacuación.
func (uc *UseCase) Services() dto.ServiceRatesResponse {
	return dto.ServiceRatesResponse{
		DeliveryPerKm:  uc.services.DeliveryPerKm,
		TravelPerKm:    uc.services.TravelPerKm,
		DisposalPerCbm: uc.services.DisposalPerCbm,
	}
}
