package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/devis-renovation-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc     *appanalytics.DashboardUseCase
	errors errorMapper
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, errs errorMapper) *DashboardHandler {
	return &DashboardHandler{uc: uc, errors: errs}
}

// GetSummary devuelve el resumen de actividad del usuario.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (quotes_by_status, quotes_total, pending_ttc,
// paid_this_month_ttc, recent_quotes[3], date_label).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	summary, err := h.uc.GetSummary(c.Context(), userID)
	if err != nil {
		return h.errors.respond(c, err)
	}
	return c.JSON(summary)
}
