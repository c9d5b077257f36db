package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/usecase"
)

// ContaHandler contas bancárias e cartões de crédito da empresa.
type ContaHandler struct {
	uc   *usecase.ContaUseCase
	errs *ErrorWriter
}

// NewContaHandler constrói o handler.
func NewContaHandler(uc *usecase.ContaUseCase, errs *ErrorWriter) *ContaHandler {
	return &ContaHandler{uc: uc, errs: errs}
}

// CreateConta godoc
// @Summary      Criar conta bancária
// @Tags         contas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContaBancariaRequest  true  "Dados da conta"
// @Success      201   {object}  dto.ContaBancariaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/contas-bancarias [post]
func (h *ContaHandler) CreateConta(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.ContaBancariaRequest
	if err := bindBody(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.CreateConta(c.UserContext(), sess, in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListContas godoc
// @Summary      Listar contas bancárias
// @Tags         contas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ContaBancariaResponse
// @Router       /api/contas-bancarias [get]
func (h *ContaHandler) ListContas(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.ListContas(c.UserContext(), sess)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// UpdateConta godoc
// @Summary      Atualizar conta bancária
// @Tags         contas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da conta"
// @Param        body  body  dto.ContaBancariaRequest  true  "Dados da conta"
// @Success      200   {object}  dto.ContaBancariaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/contas-bancarias/{id} [put]
func (h *ContaHandler) UpdateConta(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.ContaBancariaRequest
	if err := bindBody(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.UpdateConta(c.UserContext(), sess, c.Params("id"), in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// DeleteConta godoc
// @Summary      Excluir conta bancária
// @Tags         contas
// @Security     Bearer
// @Param        id   path  string  true  "ID da conta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contas-bancarias/{id} [delete]
func (h *ContaHandler) DeleteConta(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	if err := h.uc.DeleteConta(c.UserContext(), sess, c.Params("id")); err != nil {
		return h.errs.Write(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateCartao godoc
// @Summary      Criar cartão de crédito
// @Tags         contas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CartaoCreditoRequest  true  "Dados do cartão"
// @Success      201   {object}  dto.CartaoCreditoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cartoes-credito [post]
func (h *ContaHandler) CreateCartao(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.CartaoCreditoRequest
	if err := bindBody(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.CreateCartao(c.UserContext(), sess, in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCartoes godoc
// @Summary      Listar cartões de crédito
// @Tags         contas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CartaoCreditoResponse
// @Router       /api/cartoes-credito [get]
func (h *ContaHandler) ListCartoes(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.ListCartoes(c.UserContext(), sess)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// UpdateCartao godoc
// @Summary      Atualizar cartão de crédito
// @Tags         contas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do cartão"
// @Param        body  body  dto.CartaoCreditoRequest  true  "Dados do cartão"
// @Success      200   {object}  dto.CartaoCreditoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cartoes-credito/{id} [put]
func (h *ContaHandler) UpdateCartao(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.CartaoCreditoRequest
	if err := bindBody(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.UpdateCartao(c.UserContext(), sess, c.Params("id"), in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// DeleteCartao godoc
// @Summary      Excluir cartão de crédito
// @Tags         contas
// @Security     Bearer
// @Param        id   path  string  true  "ID do cartão"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cartoes-credito/{id} [delete]
func (h *ContaHandler) DeleteCartao(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	if err := h.uc.DeleteCartao(c.UserContext(), sess, c.Params("id")); err != nil {
		return h.errs.Write(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
