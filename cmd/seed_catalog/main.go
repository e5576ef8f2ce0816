// seed_catalog siembra los catálogos de referencia a partir del archivo de tarifas
// sin arrancar el servidor HTTP. Solo inserta en los catálogos vacíos.
//
// Uso: go run ./cmd/seed_catalog [-file config/tarifs.json] [-encoding iso-8859-1] [-dry-run]
// Con -dry-run solo muestra cuántos ítems contiene el archivo.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/devis-renovation-api/internal/application/catalog"
	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
	"github.com/jhoicas/devis-renovation-api/internal/infrastructure/cache"
	infracatalog "github.com/jhoicas/devis-renovation-api/internal/infrastructure/catalog"
	"github.com/jhoicas/devis-renovation-api/internal/infrastructure/postgres"
	"github.com/jhoicas/devis-renovation-api/pkg/config"
	"github.com/jhoicas/devis-renovation-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	file := flag.String("file", cfg.Catalog.File, "archivo de tarifas (JSON)")
	encoding := flag.String("encoding", "utf-8", "codificación del archivo: utf-8 o iso-8859-1")
	dryRun := flag.Bool("dry-run", false, "no escribe en la base de datos")
	flag.Parse()

	tariffs, err := readTariffs(*file, *encoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer tarifas: %v\n", err)
		os.Exit(1)
	}

	if *dryRun {
		printCounts(tariffs)
		return
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed_catalog"})
	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	var refCache catalog.Cache
	if cfg.Redis.URL != "" {
		rc, err := cache.Connect(ctx, cfg.Redis.URL, cfg.Redis.TTL)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible; no se invalidará la caché")
		} else {
			defer rc.Close()
			refCache = rc
		}
	}

	res, err := catalog.NewSeeder(postgres.NewReferenceRepository(pool), tariffs, refCache, log).SeedIfEmpty(ctx)
	if err != nil {
		log.Error().Err(err).Msg("sembrar catálogos")
		return
	}
	fmt.Printf("Insertados %d ítems en %d catálogos\n", res.Total(), len(res))
}

func readTariffs(path, encoding string) (*entity.Tariffs, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
	case "iso-8859-1", "iso8859-1", "latin1":
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	default:
		return nil, fmt.Errorf("codificación no soportada: %s", encoding)
	}
	return infracatalog.Parse(r)
}

func printCounts(t *entity.Tariffs) {
	for _, kind := range entity.AllCatalogs {
		fmt.Printf("%-22s %d\n", kind, len(t.Items[kind]))
	}
	fmt.Printf("%-22s %d\n", "total", t.Count())
}
