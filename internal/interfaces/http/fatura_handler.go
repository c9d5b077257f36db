package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/limpcred/limpcred-api/internal/application/billing"
	"github.com/limpcred/limpcred-api/internal/application/dto"
)

// FaturaHandler faturas (parcelas) dos processos.
type FaturaHandler struct {
	uc   *billing.FaturaUseCase
	errs *ErrorWriter
}

// NewFaturaHandler constrói o handler.
func NewFaturaHandler(uc *billing.FaturaUseCase, errs *ErrorWriter) *FaturaHandler {
	return &FaturaHandler{uc: uc, errs: errs}
}

// List godoc
// @Summary      Listar faturas
// @Tags         faturas
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pendente, paga, atrasada, cancelada"
// @Param        limit   query  int     false  "Limite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.FaturaResponse
// @Router       /api/faturas [get]
func (h *FaturaHandler) List(c *fiber.Ctx) error {
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

// Get godoc
// @Summary      Obter fatura
// @Tags         faturas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da fatura"
// @Success      200  {object}  dto.FaturaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/faturas/{id} [get]
func (h *FaturaHandler) Get(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), sess, c.Params("id"))
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Alterar status da fatura
// @Description  Pagar registra a receita no centro de custo do processo; repetir o pagamento não duplica a receita.
// @Tags         faturas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "Chave de idempotência"
// @Param        id    path  string  true  "ID da fatura"
// @Param        body  body  dto.UpdateFaturaStatusRequest  true  "status, data_pagamento"
// @Success      200   {object}  dto.FaturaStatusResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/faturas/{id}/status [patch]
func (h *FaturaHandler) UpdateStatus(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.UpdateFaturaStatusRequest
	if err := bindBody(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), sess, c.Params("id"), in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// MarkOverdue godoc
// @Summary      Marcar faturas vencidas como atrasadas
// @Tags         faturas
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MarkOverdueResponse
// @Router       /api/faturas/atrasadas [post]
func (h *FaturaHandler) MarkOverdue(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.MarkOverdue(c.UserContext(), sess)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}
