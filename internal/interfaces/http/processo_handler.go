package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/limpcred/limpcred-api/internal/application/billing"
	"github.com/limpcred/limpcred-api/internal/application/dto"
)

// ProcessoHandler processos de crédito e carnês.
type ProcessoHandler struct {
	create *billing.CreateProcessoUseCase
	uc     *billing.ProcessoUseCase
	carne  *billing.CarneUseCase
	errs   *ErrorWriter
}

// NewProcessoHandler constrói o handler.
func NewProcessoHandler(create *billing.CreateProcessoUseCase, uc *billing.ProcessoUseCase, carne *billing.CarneUseCase, errs *ErrorWriter) *ProcessoHandler {
	return &ProcessoHandler{create: create, uc: uc, carne: carne, errs: errs}
}

// Create godoc
// @Summary      Criar processo
// @Description  Numera o processo, provisiona o centro de custo, gera as faturas e a receita de entrada numa única transação.
// @Tags         processos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "Chave de idempotência"
// @Param        body  body  dto.CreateProcessoRequest  true  "Dados do processo"
// @Success      201   {object}  dto.CreateProcessoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/processos [post]
func (h *ProcessoHandler) Create(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.CreateProcessoRequest
	if err := bindBody(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.create.Execute(c.UserContext(), sess, in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar processos
// @Tags         processos
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Status"
// @Param        search  query  string  false  "Número ou nome do cliente"
// @Param        limit   query  int     false  "Limite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.ProcessoResponse
// @Router       /api/processos [get]
func (h *ProcessoHandler) List(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	page, err := pageFromQuery(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.List(c.UserContext(), sess, c.Query("status"), c.Query("search"), page)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obter processo com faturas
// @Tags         processos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do processo"
// @Success      200  {object}  dto.ProcessoDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/processos/{id} [get]
func (h *ProcessoHandler) Get(c *fiber.Ctx) error {
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
// @Summary      Alterar status do processo
// @Tags         processos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do processo"
// @Param        body  body  dto.UpdateProcessoStatusRequest  true  "status"
// @Success      200   {object}  dto.ProcessoResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/processos/{id}/status [patch]
func (h *ProcessoHandler) UpdateStatus(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.UpdateProcessoStatusRequest
	if err := bindBody(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), sess, c.Params("id"), in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// UpdateArquivos godoc
// @Summary      Vincular arquivos (contrato, comprovante) ao processo
// @Tags         processos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do processo"
// @Param        body  body  dto.UpdateArquivosRequest  true  "Chaves dos objetos"
// @Success      200   {object}  dto.ProcessoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/processos/{id}/arquivos [put]
func (h *ProcessoHandler) UpdateArquivos(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.UpdateArquivosRequest
	if err := bindBody(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.UpdateArquivos(c.UserContext(), sess, c.Params("id"), in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// Carne godoc
// @Summary      Carnê em PDF do processo
// @Tags         processos
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID do processo"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/processos/{id}/carne.pdf [get]
func (h *ProcessoHandler) Carne(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	pdf, filename, err := h.carne.Generate(c.UserContext(), sess, c.Params("id"))
	if err != nil {
		return h.errs.Write(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdf)
}
