package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/usecase"
)

// NotificacaoHandler notificações do usuário e tokens de push.
type NotificacaoHandler struct {
	uc   *usecase.NotificacaoUseCase
	errs *ErrorWriter
}

// NewNotificacaoHandler constrói o handler.
func NewNotificacaoHandler(uc *usecase.NotificacaoUseCase, errs *ErrorWriter) *NotificacaoHandler {
	return &NotificacaoHandler{uc: uc, errs: errs}
}

// List godoc
// @Summary      Notificações do usuário
// @Tags         notificacoes
// @Security     Bearer
// @Produce      json
// @Param        nao_lidas  query  bool  false  "Apenas não lidas"
// @Param        limit      query  int   false  "Limite"  default(20)
// @Param        offset     query  int   false  "Offset"  default(0)
// @Success      200        {array}  dto.NotificacaoResponse
// @Router       /api/notificacoes [get]
func (h *NotificacaoHandler) List(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	page, err := pageFromQuery(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.List(c.UserContext(), sess, c.QueryBool("nao_lidas", false), page)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marcar notificação como lida
// @Tags         notificacoes
// @Security     Bearer
// @Param        id   path  string  true  "ID da notificação"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notificacoes/{id}/lida [patch]
func (h *NotificacaoHandler) MarkRead(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	if err := h.uc.MarkRead(c.UserContext(), sess, c.Params("id")); err != nil {
		return h.errs.Write(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterToken godoc
// @Summary      Registrar token de push
// @Tags         notificacoes
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.RegisterTokenRequest  true  "token, plataforma"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/notificacoes/tokens [post]
func (h *NotificacaoHandler) RegisterToken(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.RegisterTokenRequest
	if err := bindBody(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	if err := h.uc.RegisterToken(c.UserContext(), sess, in); err != nil {
		return h.errs.Write(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
