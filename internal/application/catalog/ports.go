// Package catalog siembra y expone los catálogos de precios de referencia.
package catalog

import "context"

// Cache caché de lecturas del catálogo con claves versionadas.
// *cache.Cache (Redis) la implementa; un valor nil desactiva la caché.
type Cache interface {
	BuildKey(ctx context.Context, parts ...string) (string, error)
	FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error
	Bump(ctx context.Context) error
}
