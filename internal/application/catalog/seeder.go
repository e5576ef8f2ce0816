package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
	"github.com/jhoicas/devis-renovation-api/internal/domain/repository"
	"github.com/jhoicas/devis-renovation-api/pkg/logger"
)

// SeedResult ítems insertados por catálogo; los catálogos ya poblados no aparecen.
type SeedResult map[entity.ReferenceCatalog]int

// Total suma de ítems insertados.
func (r SeedResult) Total() int {
	n := 0
	for _, c := range r {
		n += c
	}
	return n
}

// Seeder inserta las tarifas en los catálogos vacíos.
type Seeder struct {
	repo    repository.ReferenceRepository
	tariffs *entity.Tariffs
	cache   Cache
	log     *logger.Logger
}

// NewSeeder construye el seeder. cache puede ser nil.
func NewSeeder(repo repository.ReferenceRepository, tariffs *entity.Tariffs, cache Cache, log *logger.Logger) *Seeder {
	if log == nil {
		log = logger.Nop()
	}
	return &Seeder{repo: repo, tariffs: tariffs, cache: cache, log: log}
}

// SeedIfEmpty recorre los catálogos en orden y solo inserta en los que están vacíos.
// Si se insertó algo, invalida la caché.
func (s *Seeder) SeedIfEmpty(ctx context.Context) (SeedResult, error) {
	res := SeedResult{}
	for _, kind := range entity.AllCatalogs {
		items := s.tariffs.Items[kind]
		if len(items) == 0 {
			continue
		}
		n, err := s.repo.Count(ctx, kind)
		if err != nil {
			return res, fmt.Errorf("seed %s: contar: %w", kind, err)
		}
		if n > 0 {
			s.log.Debug().Str("catalog", string(kind)).Int("existing", n).Msg("catálogo ya poblado")
			continue
		}
		if err := s.repo.InsertMany(ctx, kind, items); err != nil {
			return res, fmt.Errorf("seed %s: insertar: %w", kind, err)
		}
		res[kind] = len(items)
		s.log.Info().Str("catalog", string(kind)).Int("inserted", len(items)).Msg("catálogo sembrado")
	}

	if res.Total() > 0 && s.cache != nil {
		if err := s.cache.Bump(ctx); err != nil {
			s.log.Warn().Err(err).Msg("no se pudo invalidar la caché del catálogo")
		}
	}
	return res, nil
}
