package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/limpcred/limpcred-api/internal/application/analytics"
)

// DashboardHandler resumo do painel.
type DashboardHandler struct {
	uc   *analytics.DashboardUseCase
	errs *ErrorWriter
}

// NewDashboardHandler constrói o handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase, errs *ErrorWriter) *DashboardHandler {
	return &DashboardHandler{uc: uc, errs: errs}
}

// GetResumo godoc
// @Summary      Resumo do painel
// @Description  Totais do mês corrente, faturas em aberto e série dos últimos meses. Datas calculadas no servidor.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResumo
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/dashboard/resumo [get]
func (h *DashboardHandler) GetResumo(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.GetResumo(c.UserContext(), sess)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}
