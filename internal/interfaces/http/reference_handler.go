package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/devis-renovation-api/internal/application/catalog"
	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
)

// ReferenceHandler catálogos de precios (público).
type ReferenceHandler struct {
	uc     *catalog.UseCase
	errors errorMapper
}

// NewReferenceHandler construye el handler.
func NewReferenceHandler(uc *catalog.UseCase, errs errorMapper) *ReferenceHandler {
	return &ReferenceHandler{uc: uc, errors: errs}
}

// List devuelve un handler que lista el catálogo indicado. En extras admite ?category=.
//
// @Summary      Catálogo de referencia
// @Tags         references
// @Produce      json
// @Param        category  query  string  false  "solo extras: kitchen, partition, paint, flooring"
// @Success      200  {array}  dto.ReferenceItemResponse
// @Router       /api/references/{catalog} [get]
func (h *ReferenceHandler) List(kind entity.ReferenceCatalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := h.uc.List(c.Context(), kind, c.Query("category"))
		if err != nil {
			return h.errors.respond(c, err)
		}
		return c.JSON(items)
	}
}

// Services godoc
// @Summary      Tarifas de desplazamiento, entrega y evacuación
// @Tags         references
// @Produce      json
// @Success      200  {object}  dto.ServiceRatesResponse
// @Router       /api/references/services [get]
func (h *ReferenceHandler) Services(c *fiber.Ctx) error {
	return c.JSON(h.uc.Services())
}
