package catalog_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
	"github.com/jhoicas/devis-renovation-api/internal/infrastructure/catalog"
)

func TestLoad_ArchivoDeTarifas(t *testing.T) {
	tariffs, err := catalog.NewLoader("../../../config/tarifs.json").Load()
	require.NoError(t, err)

	for _, c := range entity.AllCatalogs {
		assert.NotEmpty(t, tariffs.Items[c], "catálogo %s vacío", c)
	}

	kitchens := tariffs.Items[entity.CatalogKitchenTypes]
	require.Len(t, kitchens, 3)
	assert.Equal(t, "Kit Semi-équipée", kitchens[0].Name)
	band, ok := kitchens[0].PrimaryBand()
	require.True(t, ok)
	assert.Equal(t, entity.BandSupply, band.Code)
	assert.Equal(t, "5000", band.Min.String())
	assert.Equal(t, "14000", band.Max.String())

	extras := tariffs.Items[entity.CatalogExtras]
	assert.Equal(t, "kitchen", extras[0].Category)
	for i, e := range extras {
		assert.Equal(t, i, e.Position)
		assert.NotEmpty(t, e.Category)
	}

	assert.Equal(t, "0.55", tariffs.Services.TravelPerKm.String())
	assert.Equal(t, "75", tariffs.Services.DisposalPerCbm["rubble"].String())
}

func TestLoad_IDsUnicos(t *testing.T) {
	tariffs, err := catalog.NewLoader("../../../config/tarifs.json").Load()
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, items := range tariffs.Items {
		for _, it := range items {
			assert.False(t, seen[it.ID])
			seen[it.ID] = true
		}
	}
	assert.Equal(t, tariffs.Count(), len(seen))
}

func TestParse_BandaInvalida(t *testing.T) {
	src := `{"paints":[{"name":"Peinture mur","bands":[{"code":"price","min":30,"max":20}]}]}`
	_, err := catalog.Parse(strings.NewReader(src))
	assert.Error(t, err)
}

func TestParse_SinBandas(t *testing.T) {
	src := `{"worktops":[{"name":"Bois"}]}`
	_, err := catalog.Parse(strings.NewReader(src))
	assert.Error(t, err)
}

func TestLoad_ArchivoInexistente(t *testing.T) {
	_, err := catalog.NewLoader("no-existe.json").Load()
	assert.Error(t, err)
}
