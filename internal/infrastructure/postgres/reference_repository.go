package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
	"github.com/jhoicas/devis-renovation-api/internal/domain/repository"
)

var _ repository.ReferenceRepository = (*ReferenceRepo)(nil)

// referenceTables lista blanca catálogo → tabla; nunca se interpola texto del usuario.
var referenceTables = map[entity.ReferenceCatalog]string{
	entity.CatalogKitchenTypes:     "ref_kitchen_types",
	entity.CatalogWorktops:         "ref_worktops",
	entity.CatalogPartitions:       "ref_partitions",
	entity.CatalogPartitionOptions: "ref_partition_options",
	entity.CatalogPaints:           "ref_paints",
	entity.CatalogFloorings:        "ref_floorings",
	entity.CatalogFlooringInstalls: "ref_flooring_installs",
	entity.CatalogExtras:           "ref_extras",
}

// ReferenceRepo catálogos de precios de referencia.
type ReferenceRepo struct {
	pool *pgxpool.Pool
}

// NewReferenceRepository construye el adaptador de catálogos.
func NewReferenceRepository(pool *pgxpool.Pool) *ReferenceRepo {
	return &ReferenceRepo{pool: pool}
}

func tableFor(catalog entity.ReferenceCatalog) (string, error) {
	t, ok := referenceTables[catalog]
	if !ok {
		return "", fmt.Errorf("catálogo desconocido: %q", catalog)
	}
	return t, nil
}

// Count número de ítems del catálogo.
func (r *ReferenceRepo) Count(ctx context.Context, catalog entity.ReferenceCatalog) (int, error) {
	table, err := tableFor(catalog)
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// InsertMany inserta los ítems en un único batch.
func (r *ReferenceRepo) InsertMany(ctx context.Context, catalog entity.ReferenceCatalog, items []entity.ReferenceItem) error {
	table, err := tableFor(catalog)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	query := `
		INSERT INTO ` + table + ` (id, name, type, category, description, unit, ac_class, bands, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	batch := &pgx.Batch{}
	for i := range items {
		it := &items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		bands, err := toJSONB(it.Bands)
		if err != nil {
			return err
		}
		batch.Queue(query, it.ID, it.Name, it.Type, it.Category, it.Description, it.Unit, it.ACClass, bands, it.Position)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
	}
	return nil
}

// List ítems del catálogo ordenados por posición; category filtra (vacío = todos).
func (r *ReferenceRepo) List(ctx context.Context, catalog entity.ReferenceCatalog, category string) ([]entity.ReferenceItem, error) {
	table, err := tableFor(catalog)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT id, name, type, category, description, unit, ac_class, bands, position
		FROM ` + table + `
		WHERE ($1 = '' OR category = $1)
		ORDER BY position, name`
	rows, err := r.pool.Query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	list := make([]entity.ReferenceItem, 0)
	for rows.Next() {
		var it entity.ReferenceItem
		var bands []byte
		if err := rows.Scan(&it.ID, &it.Name, &it.Type, &it.Category, &it.Description, &it.Unit, &it.ACClass, &bands, &it.Position); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		if err := fromJSONB(bands, &it.Bands); err != nil {
			return nil, err
		}
		it.Catalog = catalog
		list = append(list, it)
	}
	return list, rows.Err()
}
