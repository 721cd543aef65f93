package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/freelance-forge-api/internal/application/analytics"
	"github.com/jhoicas/freelance-forge-api/internal/application/dto"
	"github.com/jhoicas/freelance-forge-api/internal/domain"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc  *appanalytics.DashboardUseCase
	now func() time.Time
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, now: time.Now}
}

// GetSummary godoc
// @Summary      Resumen financiero
// @Description  Facturado, gastado y neto por moneda en el mes y el año de la fecha de referencia, más el top 5 de clientes del año.
// @Tags         dashboard
// @Security     Session
// @Produce      json
// @Param        date  query  string  false  "fecha de referencia YYYY-MM-DD (por defecto hoy)"
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	at := h.now().UTC()
	if raw := c.Query("date"); raw != "" {
		d, err := time.Parse(dto.DateLayout, raw)
		if err != nil {
			return writeError(c, fmt.Errorf("%w: date %q inválida, formato YYYY-MM-DD", domain.ErrInvalidInput, raw))
		}
		at = d
	}

	summary, err := h.uc.GetSummary(c.UserContext(), GetUserID(c), at)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
