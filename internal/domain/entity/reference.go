package entity

import "github.com/shopspring/decimal"

// ReferenceCatalog identifica un catálogo de precios (una tabla por catálogo).
type ReferenceCatalog string

// Catálogos de referencia.
const (
	CatalogKitchenTypes     ReferenceCatalog = "kitchen_types"
	CatalogWorktops         ReferenceCatalog = "worktops"
	CatalogPartitions       ReferenceCatalog = "partitions"
	CatalogPartitionOptions ReferenceCatalog = "partition_options"
	CatalogPaints           ReferenceCatalog = "paints"
	CatalogFloorings        ReferenceCatalog = "floorings"
	CatalogFlooringInstalls ReferenceCatalog = "flooring_installs"
	CatalogExtras           ReferenceCatalog = "extras"
)

// AllCatalogs orden de siembra y de listado.
var AllCatalogs = []ReferenceCatalog{
	CatalogKitchenTypes,
	CatalogWorktops,
	CatalogPartitions,
	CatalogPartitionOptions,
	CatalogPaints,
	CatalogFloorings,
	CatalogFlooringInstalls,
	CatalogExtras,
}

// Valid indica si el catálogo es conocido.
func (c ReferenceCatalog) Valid() bool {
	for _, k := range AllCatalogs {
		if k == c {
			return true
		}
	}
	return false
}

// Códigos de banda de precio.
const (
	BandSupply        = "supply"         // fourniture
	BandInstall       = "install"        // pose
	BandSupplyInstall = "supply_install" // fourniture + pose
	BandInstallOnly   = "install_only"   // pose seule
	BandSupplement    = "supplement"
	BandPrice         = "price"
)

// PriceBand rango [Min, Max] permitido para el precio unitario.
type PriceBand struct {
	Code string          `json:"code"`
	Min  decimal.Decimal `json:"min"`
	Max  decimal.Decimal `json:"max"`
}

// Contains indica si el precio cae dentro de la banda (extremos incluidos).
func (b PriceBand) Contains(p decimal.Decimal) bool {
	return p.GreaterThanOrEqual(b.Min) && p.LessThanOrEqual(b.Max)
}

// ReferenceItem entrada del catálogo. Inmutable una vez sembrada.
type ReferenceItem struct {
	ID          string
	Catalog     ReferenceCatalog
	Name        string
	Type        string // ej. "support" (pintura), "stratifie" (parquet)
	Category    string // solo extras: kitchen, partition, paint, flooring
	Description string
	Unit        string
	ACClass     string // clase AC1-AC5 para laminados
	Bands       []PriceBand
	Position    int
}

// PrimaryBand devuelve la primera banda del ítem.
func (r *ReferenceItem) PrimaryBand() (PriceBand, bool) {
	if len(r.Bands) == 0 {
		return PriceBand{}, false
	}
	return r.Bands[0], true
}

// ServiceRates tarifas de servicios (desplazamiento, entrega, evacuación de escombros).
type ServiceRates struct {
	DeliveryPerKm  decimal.Decimal            `json:"delivery_per_km"`
	TravelPerKm    decimal.Decimal            `json:"travel_per_km"`
	DisposalPerCbm map[string]decimal.Decimal `json:"disposal_per_m3"`
}

// Tariffs contenido del archivo de tarifas ya convertido a entidades.
type Tariffs struct {
	Items    map[ReferenceCatalog][]ReferenceItem
	Services ServiceRates
}

// Count total de ítems en todos los catálogos.
func (t *Tariffs) Count() int {
	n := 0
	for _, items := range t.Items {
		n += len(items)
	}
	return n
}
