package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/usecase"
)

// SuporteHandler chamados de suporte.
type SuporteHandler struct {
	uc   *usecase.SuporteUseCase
	errs *ErrorWriter
}

// NewSuporteHandler constrói o handler.
func NewSuporteHandler(uc *usecase.SuporteUseCase, errs *ErrorWriter) *SuporteHandler {
	return &SuporteHandler{uc: uc, errs: errs}
}

// Create godoc
// @Summary      Abrir chamado
// @Tags         suporte
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSuporteRequest  true  "assunto, mensagem"
// @Success      201   {object}  dto.SuporteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/suporte [post]
func (h *SuporteHandler) Create(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.CreateSuporteRequest
	if err := bindBody(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), sess, in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar chamados
// @Description  Quem responde suporte vê todos os chamados da empresa; os demais, apenas os próprios.
// @Tags         suporte
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "aberta, respondida, fechada"
// @Param        limit   query  int     false  "Limite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.SuporteResponse
// @Router       /api/suporte [get]
func (h *SuporteHandler) List(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	page, err := pageFromQuery(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.List(c.UserContext(), sess, c.Query("status"), page)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Responder ou fechar chamado
// @Tags         suporte
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do chamado"
// @Param        body  body  dto.UpdateSuporteRequest  true  "resposta, status"
// @Success      200   {object}  dto.SuporteResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/suporte/{id} [patch]
func (h *SuporteHandler) Update(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.UpdateSuporteRequest
	if err := bindBody(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), sess, c.Params("id"), in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}
