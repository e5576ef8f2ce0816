package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/devis-renovation-api/internal/application/billing"
	"github.com/jhoicas/devis-renovation-api/internal/application/dto"
)

// InvoiceHandler maneja las peticiones HTTP de facturación (protegido).
type InvoiceHandler struct {
	uc     *billing.InvoiceUseCase
	pdf    *billing.PDFUseCase
	errors errorMapper
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdf *billing.PDFUseCase, errs errorMapper) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdf: pdf, errors: errs}
}

// Create godoc
// @Summary      Facturar un devis (como máximo una factura por devis)
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "quote_id"
// @Success      201  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateInvoiceRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), userID, in.QuoteID)
	if err != nil {
		return h.errors.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar facturas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.InvoiceSummaryResponse]
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	list, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return h.errors.respond(c, err)
	}
	return c.JSON(dto.NewListResponse(list))
}

// GetByID godoc
// @Summary      Detalle de una factura
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
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

// UpdateStatus godoc
// @Summary      Marcar la factura como pagada
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "id de la factura"
// @Param        body  body  dto.UpdateInvoiceStatusRequest  true  "status"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/status [put]
func (h *InvoiceHandler) UpdateStatus(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateInvoiceStatusRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateStatus(c.Context(), userID, c.Params("id"), in.Status)
	if err != nil {
		return h.errors.respond(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar una factura (el devis vuelve a accepted)
// @Tags         invoices
// @Security     Bearer
// @Param        id  path  string  true  "id de la factura"
// @Success      204
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
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
// @Summary      Descargar la factura en PDF
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "id de la factura"
// @Success      200  {file}  binary
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	data, filename, err := h.pdf.InvoicePDF(c.Context(), userID, c.Params("id"))
	if err != nil {
		return h.errors.respond(c, err)
	}
	return sendPDF(c, data, filename)
}
