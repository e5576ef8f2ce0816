package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/devis-renovation-api/internal/application/dto"
	"github.com/jhoicas/devis-renovation-api/internal/application/usecase"
)

// CompanyHandler perfil de empresa del usuario autenticado.
type CompanyHandler struct {
	uc     *usecase.CompanyUseCase
	errors errorMapper
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *usecase.CompanyUseCase, errs errorMapper) *CompanyHandler {
	return &CompanyHandler{uc: uc, errors: errs}
}

// Get godoc
// @Summary      Perfil de empresa (se crea con valores por defecto en el primer acceso)
// @Tags         company
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CompanyProfileResponse
// @Router       /api/company [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Get(c.Context(), userID)
	if err != nil {
		return h.errors.respond(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualización parcial del perfil de empresa
// @Tags         company
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateCompanyProfileRequest  true  "campos a modificar"
// @Success      200  {object}  dto.CompanyProfileResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/company [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateCompanyProfileRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), userID, in)
	if err != nil {
		return h.errors.respond(c, err)
	}
	return c.JSON(out)
}
