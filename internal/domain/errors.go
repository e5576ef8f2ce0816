package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso envuelven errores de infraestructura con %w; la capa HTTP
// los clasifica con errors.Is.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvoiceExists      = errors.New("el devis ya tiene una factura")
)

// IsConflict agrupa los errores que se reportan como conflicto (409).
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrEmailAlreadyExists) ||
		errors.Is(err, ErrInvoiceExists)
}
