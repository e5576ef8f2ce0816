package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/devis-renovation-api/internal/application/billing"
	"github.com/jhoicas/devis-renovation-api/internal/application/dto"
)

// QuoteHandler CRUD de devis y su PDF (protegido).
type QuoteHandler struct {
	uc     *billing.QuoteUseCase
	pdf    *billing.PDFUseCase
	errors errorMapper
}

// NewQuoteHandler construye el handler.
func NewQuoteHandler(uc *billing.QuoteUseCase, pdf *billing.PDFUseCase, errs errorMapper) *QuoteHandler {
	return &QuoteHandler{uc: uc, pdf: pdf, errors: errs}
}

// Create godoc
// @Summary      Crear devis (estado draft; totales calculados en servidor)
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateQuoteRequest  true  "cliente, líneas, TVA, validez, condiciones"
// @Success      201  {object}  dto.QuoteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/quotes [post]
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateQuoteRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return h.errors.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar devis (más recientes primero)
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "draft, validated, sent, accepted, refused, invoiced"
// @Success      200  {object}  dto.ListResponse[dto.QuoteSummaryResponse]
// @Router       /api/quotes [get]
func (h *QuoteHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	list, err := h.uc.List(c.Context(), userID, c.Query("status"))
	if err != nil {
		return h.errors.respond(c, err)
	}
	return c.JSON(dto.NewListResponse(list))
}

// GetByID godoc
// @Summary      Detalle de un devis
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id del devis"
// @Success      200  {object}  dto.QuoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id} [get]
func (h *QuoteHandler) GetByID(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Get(c.Context(), userID, c.Params("id"))
	if err != nil {
		return h.errors.respond(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Modificar un devis (solo los campos presentes)
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "id del devis"
// @Param        body  body  dto.UpdateQuoteRequest  true  "campos a reemplazar"
// @Success      200  {object}  dto.QuoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id} [put]
func (h *QuoteHandler) Update(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateQuoteRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), userID, c.Params("id"), in)
	if err != nil {
		return h.errors.respond(c, err)
	}
	return c.JSON(out)
}

// Patch godoc
// @Summary      Cambiar estado, cliente o notas de un devis
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "id del devis"
// @Param        body  body  dto.PatchQuoteRequest  true  "status, client, notes"
// @Success      200  {object}  dto.QuoteResponse
// @Router       /api/quotes/{id} [patch]
func (h *QuoteHandler) Patch(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.PatchQuoteRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Patch(c.Context(), userID, c.Params("id"), in)
	if err != nil {
		return h.errors.respond(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar un devis
// @Tags         quotes
// @Security     Bearer
// @Param        id  path  string  true  "id del devis"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id} [delete]
func (h *QuoteHandler) Delete(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.Context(), userID, c.Params("id")); err != nil {
		return h.errors.respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF godoc
// @Summary      Descargar el devis en PDF
// @Tags         quotes
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "id del devis"
// @Success      200  {file}  binary
// @Router       /api/quotes/{id}/pdf [get]
func (h *QuoteHandler) PDF(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	data, filename, err := h.pdf.QuotePDF(c.Context(), userID, c.Params("id"))
	if err != nil {
		return h.errors.respond(c, err)
	}
	return sendPDF(c, data, filename)
}

// sendPDF escribe los bytes como adjunto.
func sendPDF(c *fiber.Ctx, data []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
