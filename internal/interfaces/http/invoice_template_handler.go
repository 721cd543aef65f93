package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/freelance-forge-api/internal/application/dto"
	"github.com/jhoicas/freelance-forge-api/internal/application/usecase"
)

// InvoiceTemplateHandler CRUD de plantillas HTML de factura.
type InvoiceTemplateHandler struct {
	uc *usecase.InvoiceTemplateUseCase
}

// NewInvoiceTemplateHandler construye el handler.
func NewInvoiceTemplateHandler(uc *usecase.InvoiceTemplateUseCase) *InvoiceTemplateHandler {
	return &InvoiceTemplateHandler{uc: uc}
}

// Create godoc
// @Summary      Crear plantilla de factura
// @Tags         invoice-templates
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InvoiceTemplateRequest  true  "name y html con marcadores {{ nombre }}"
// @Success      201   {object}  dto.InvoiceTemplateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoice-templates [post]
func (h *InvoiceTemplateHandler) Create(c *fiber.Ctx) error {
	var in dto.InvoiceTemplateRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar plantillas del usuario
// @Tags         invoice-templates
// @Security     Session
// @Produce      json
// @Success      200  {object}  dto.InvoiceTemplateListResponse
// @Router       /api/invoice-templates [get]
func (h *InvoiceTemplateHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener plantilla
// @Tags         invoice-templates
// @Security     Session
// @Produce      json
// @Param        id   path  string  true  "ID de la plantilla"
// @Success      200  {object}  dto.InvoiceTemplateResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoice-templates/{id} [get]
func (h *InvoiceTemplateHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar plantilla
// @Tags         invoice-templates
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la plantilla"
// @Param        body  body  dto.InvoiceTemplateRequest  true  "name y html"
// @Success      200   {object}  dto.InvoiceTemplateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoice-templates/{id} [put]
func (h *InvoiceTemplateHandler) Update(c *fiber.Ctx) error {
	var in dto.InvoiceTemplateRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar plantilla
// @Description  Las facturas que la usaban quedan sin plantilla (se usará la por defecto).
// @Tags         invoice-templates
// @Security     Session
// @Param        id   path  string  true  "ID de la plantilla"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoice-templates/{id} [delete]
func (h *InvoiceTemplateHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
