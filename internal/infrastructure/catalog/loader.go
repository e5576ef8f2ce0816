// Package catalog lee el archivo de tarifas (JSON) que alimenta los catálogos de referencia.
package catalog

import (
	"fmt"
	"io"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
)

type rawBand struct {
	Code string  `mapstructure:"code"`
	Min  float64 `mapstructure:"min"`
	Max  float64 `mapstructure:"max"`
}

type rawItem struct {
	Name        string    `mapstructure:"name"`
	Type        string    `mapstructure:"type"`
	Description string    `mapstructure:"description"`
	Unit        string    `mapstructure:"unit"`
	ACClass     string    `mapstructure:"ac_class"`
	Bands       []rawBand `mapstructure:"bands"`
}

type rawServices struct {
	DeliveryPerKm  float64            `mapstructure:"delivery_per_km"`
	TravelPerKm    float64            `mapstructure:"travel_per_km"`
	DisposalPerCbm map[string]float64 `mapstructure:"disposal_per_m3"`
}

// Categorías de extras en orden de listado; las desconocidas van al final en orden alfabético.
var extraCategoryOrder = []string{"kitchen", "partition", "paint", "flooring"}

// Loader lee el archivo de tarifas con una instancia propia de viper.
type Loader struct {
	path string
}

// NewLoader construye el loader para el archivo indicado (CATALOG_FILE).
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load lee y convierte el archivo. Cada ítem recibe un id nuevo.
func (l *Loader) Load() (*entity.Tariffs, error) {
	v := viper.New()
	v.SetConfigFile(l.path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("leer tarifas %s: %w", l.path, err)
	}
	return decode(v)
}

// Parse lee las tarifas desde r (JSON).
func Parse(r io.Reader) (*entity.Tariffs, error) {
	v := viper.New()
	v.SetConfigType("json")
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("leer tarifas: %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*entity.Tariffs, error) {
	t := &entity.Tariffs{Items: make(map[entity.ReferenceCatalog][]entity.ReferenceItem)}

	for _, catalog := range entity.AllCatalogs {
		if catalog == entity.CatalogExtras {
			continue
		}
		var raw []rawItem
		if err := v.UnmarshalKey(string(catalog), &raw); err != nil {
			return nil, fmt.Errorf("tarifas %s: %w", catalog, err)
		}
		items, err := convert(catalog, "", raw, 0)
		if err != nil {
			return nil, err
		}
		t.Items[catalog] = items
	}

	var extras map[string][]rawItem
	if err := v.UnmarshalKey(string(entity.CatalogExtras), &extras); err != nil {
		return nil, fmt.Errorf("tarifas extras: %w", err)
	}
	var all []entity.ReferenceItem
	for _, category := range orderedCategories(extras) {
		items, err := convert(entity.CatalogExtras, category, extras[category], len(all))
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
	}
	t.Items[entity.CatalogExtras] = all

	var services rawServices
	if err := v.UnmarshalKey("services", &services); err != nil {
		return nil, fmt.Errorf("tarifas services: %w", err)
	}
	t.Services = entity.ServiceRates{
		DeliveryPerKm:  decimal.NewFromFloat(services.DeliveryPerKm),
		TravelPerKm:    decimal.NewFromFloat(services.TravelPerKm),
		DisposalPerCbm: make(map[string]decimal.Decimal, len(services.DisposalPerCbm)),
	}
	for k, rate := range services.DisposalPerCbm {
		t.Services.DisposalPerCbm[k] = decimal.NewFromFloat(rate)
	}
	return t, nil
}

func convert(catalog entity.ReferenceCatalog, category string, raw []rawItem, offset int) ([]entity.ReferenceItem, error) {
	items := make([]entity.ReferenceItem, 0, len(raw))
	for i, r := range raw {
		if r.Name == "" {
			return nil, fmt.Errorf("tarifas %s[%d]: name requerido", catalog, i)
		}
		if len(r.Bands) == 0 {
			return nil, fmt.Errorf("tarifas %s %q: al menos una banda de precio", catalog, r.Name)
		}
		bands := make([]entity.PriceBand, 0, len(r.Bands))
		for _, b := range r.Bands {
			band := entity.PriceBand{Code: b.Code, Min: decimal.NewFromFloat(b.Min), Max: decimal.NewFromFloat(b.Max)}
			if band.Code == "" || band.Min.GreaterThan(band.Max) {
				return nil, fmt.Errorf("tarifas %s %q: banda %q inválida", catalog, r.Name, b.Code)
			}
			bands = append(bands, band)
		}
		unit := r.Unit
		if unit == "" {
			unit = "m²"
		}
		items = append(items, entity.ReferenceItem{
			ID:          uuid.New().String(),
			Catalog:     catalog,
			Name:        r.Name,
			Type:        r.Type,
			Category:    category,
			Description: r.Description,
			Unit:        unit,
			ACClass:     r.ACClass,
			Bands:       bands,
			Position:    offset + i,
		})
	}
	return items, nil
}

func orderedCategories(extras map[string][]rawItem) []string {
	out := make([]string, 0, len(extras))
	seen := make(map[string]bool, len(extras))
	for _, c := range extraCategoryOrder {
		if _, ok := extras[c]; ok {
			out = append(out, c)
			seen[c] = true
		}
	}
	var rest []string
	for c := range extras {
		if !seen[c] {
			rest = append(rest, c)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}
