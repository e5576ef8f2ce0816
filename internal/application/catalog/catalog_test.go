package catalog_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/devis-renovation-api/internal/application/catalog"
	"github.com/jhoicas/devis-renovation-api/internal/domain"
	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
	"github.com/jhoicas/devis-renovation-api/internal/infrastructure/cache"
	infracatalog "github.com/jhoicas/devis-renovation-api/internal/infrastructure/catalog"
)

const tariffsJSON = `{
  "kitchen_types": [
    {"name": "Cuisine équipée", "unit": "ml", "bands": [{"code": "supply_install", "min": 800, "max": 2500}]}
  ],
  "paints": [
    {"name": "Peinture murs", "type": "support", "bands": [{"code": "supply_install", "min": 20, "max": 40}]},
    {"name": "Peinture plafond", "type": "support", "bands": [{"code": "supply_install", "min": 25, "max": 45}]}
  ],
  "extras": {
    "paint": [{"name": "Enduit de lissage", "bands": [{"code": "price", "min": 8, "max": 15}]}],
    "kitchen": [{"name": "Crédence", "unit": "ml", "bands": [{"code": "price", "min": 60, "max": 150}]}]
  },
  "services": {"delivery_per_km": 0.55, "travel_per_km": 0.55, "disposal_per_m3": {"depot": 30}}
}`

// ── Fake ReferenceRepository ──────────────────────────────────────────────────

type memReferences struct {
	mu    sync.Mutex
	items map[entity.ReferenceCatalog][]entity.ReferenceItem
	lists int
}

func newMemReferences() *memReferences {
	return &memReferences{items: map[entity.ReferenceCatalog][]entity.ReferenceItem{}}
}

func (m *memReferences) Count(_ context.Context, kind entity.ReferenceCatalog) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items[kind]), nil
}

func (m *memReferences) InsertMany(_ context.Context, kind entity.ReferenceCatalog, items []entity.ReferenceItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[kind] = append(m.items[kind], items...)
	return nil
}

func (m *memReferences) List(_ context.Context, kind entity.ReferenceCatalog, category string) ([]entity.ReferenceItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	var out []entity.ReferenceItem
	for _, it := range m.items[kind] {
		if category == "" || it.Category == category {
			out = append(out, it)
		}
	}
	return out, nil
}

func loadTariffs(t *testing.T) *entity.Tariffs {
	t.Helper()
	tariffs, err := infracatalog.Parse(strings.NewReader(tariffsJSON))
	require.NoError(t, err)
	return tariffs
}

func newRedisCache(t *testing.T) *cache.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.New(client, time.Minute)
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestSeedIfEmpty_SoloCatalogosVacios(t *testing.T) {
	repo := newMemReferences()
	repo.items[entity.CatalogPaints] = []entity.ReferenceItem{{Name: "Existente"}}
	seeder := catalog.NewSeeder(repo, loadTariffs(t), nil, nil)
	ctx := context.Background()

	res, err := seeder.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res[entity.CatalogKitchenTypes])
	assert.Equal(t, 2, res[entity.CatalogExtras])
	_, seededPaints := res[entity.CatalogPaints]
	assert.False(t, seededPaints)
	assert.Len(t, repo.items[entity.CatalogPaints], 1)

	again, err := seeder.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Zero(t, again.Total())
}

func TestList_ExtrasFiltradosPorCategoria(t *testing.T) {
	repo := newMemReferences()
	tariffs := loadTariffs(t)
	_, err := catalog.NewSeeder(repo, tariffs, nil, nil).SeedIfEmpty(context.Background())
	require.NoError(t, err)
	uc := catalog.NewUseCase(repo, nil, tariffs.Services)

	all, err := uc.List(context.Background(), entity.CatalogExtras, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Crédence", all[0].Name, "kitchen va antes que paint")

	paint, err := uc.List(context.Background(), entity.CatalogExtras, "paint")
	require.NoError(t, err)
	require.Len(t, paint, 1)
	assert.Equal(t, "Enduit de lissage", paint[0].Name)

	_, err = uc.List(context.Background(), "bathrooms", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_ConCache_SegundaLecturaNoConsultaElRepositorio(t *testing.T) {
	repo := newMemReferences()
	tariffs := loadTariffs(t)
	c := newRedisCache(t)
	ctx := context.Background()
	_, err := catalog.NewSeeder(repo, tariffs, c, nil).SeedIfEmpty(ctx)
	require.NoError(t, err)
	uc := catalog.NewUseCase(repo, c, tariffs.Services)

	first, err := uc.List(ctx, entity.CatalogPaints, "")
	require.NoError(t, err)
	second, err := uc.List(ctx, entity.CatalogPaints, "")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.lists)
	require.Len(t, second, 2)
	assert.True(t, second[0].Bands[0].Min.Equal(decimal.NewFromInt(20)))
}

func TestList_RedisCaido_LeeDelRepositorio(t *testing.T) {
	repo := newMemReferences()
	tariffs := loadTariffs(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	c := cache.New(client, time.Minute)
	ctx := context.Background()

	_, err := catalog.NewSeeder(repo, tariffs, c, nil).SeedIfEmpty(ctx)
	require.NoError(t, err)
	uc := catalog.NewUseCase(repo, c, tariffs.Services)
	_, err = uc.List(ctx, entity.CatalogPaints, "")
	require.NoError(t, err)

	mr.Close()

	items, err := uc.List(ctx, entity.CatalogPaints, "")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Peinture murs", items[0].Name)
	assert.Equal(t, 2, repo.lists)
}

func TestSeedIfEmpty_InvalidaLaCache(t *testing.T) {
	repo := newMemReferences()
	c := newRedisCache(t)
	ctx := context.Background()
	uc := catalog.NewUseCase(repo, c, entity.ServiceRates{})

	empty, err := uc.List(ctx, entity.CatalogKitchenTypes, "")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = catalog.NewSeeder(repo, loadTariffs(t), c, nil).SeedIfEmpty(ctx)
	require.NoError(t, err)

	seeded, err := uc.List(ctx, entity.CatalogKitchenTypes, "")
	require.NoError(t, err)
	assert.Len(t, seeded, 1)
}

func TestServices(t *testing.T) {
	tariffs := loadTariffs(t)
	uc := catalog.NewUseCase(newMemReferences(), nil, tariffs.Services)

	rates := uc.Services()
	assert.Equal(t, "0.55", rates.TravelPerKm.String())
	assert.True(t, rates.DisposalPerCbm["depot"].Equal(decimal.NewFromInt(30)))
}
