package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Suscripciones-api/internal/application/dto"
	"github.com/jhoicas/Suscripciones-api/internal/application/usecase"
)

// StatsHandler maneja los agregados financieros y reportes (protegido).
type StatsHandler struct {
	uc *usecase.StatsUseCase
}

// NewStatsHandler construye el handler.
func NewStatsHandler(uc *usecase.StatsUseCase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

// Aggregate godoc
// @Summary      Agregados globales: gasto, ingreso, utilidad y margen
// @Tags         stats
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatsResponse
// @Router       /api/stats [get]
func (h *StatsHandler) Aggregate(c *fiber.Ctx) error {
	out, err := h.uc.Aggregate()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Monthly godoc
// @Summary      Resumen mensual de ingresos/gastos del año
// @Tags         stats
// @Security     Bearer
// @Produce      json
// @Param        year  query  int  false  "Año (por defecto el actual)"
// @Success      200   {array}  dto.MonthlySummaryResponse
// @Router       /api/stats/monthly [get]
func (h *StatsHandler) Monthly(c *fiber.Ctx) error {
	year := c.QueryInt("year", time.Now().Year())
	out, err := h.uc.MonthlyRevenue(c.Context(), year)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// LedgerReport godoc
// @Summary      Vista unida del libro para exportadores externos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LedgerRowResponse
// @Router       /api/reports/ledger [get]
func (h *StatsHandler) LedgerReport(c *fiber.Ctx) error {
	out, err := h.uc.LedgerReport(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
