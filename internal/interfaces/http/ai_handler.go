package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/freelance-forge-api/internal/application/dto"
	"github.com/jhoicas/freelance-forge-api/internal/application/usecase"
)

// AIHandler maneja los endpoints de redacción de líneas asistida por IA.
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// ImproveLineItem godoc
// @Summary      Mejorar la descripción de una línea con IA
// @Description  Reescribe la descripción usando la última línea facturada como referencia de estilo.
//
//	Timeout interno de 10 s. 503 si no hay proveedor configurado.
//
// @Tags         ai
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImproveLineItemRequest  true  "description"
// @Success      200   {object}  dto.ImproveLineItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Failure      504   {object}  dto.ErrorResponse
// @Router       /api/ai/line-item-improve [post]
func (h *AIHandler) ImproveLineItem(c *fiber.Ctx) error {
	var in dto.ImproveLineItemRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.ImproveLineItem(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LastLineItem godoc
// @Summary      Última línea facturada
// @Tags         ai
// @Security     Session
// @Produce      json
// @Success      200  {object}  dto.LastLineItemResponse
// @Router       /api/ai/line-item-last [get]
func (h *AIHandler) LastLineItem(c *fiber.Ctx) error {
	out, err := h.uc.LastLineItem(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
