package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/usecase"
)

// ClienteHandler clientes da empresa ativa.
type ClienteHandler struct {
	uc   *usecase.ClienteUseCase
	errs *ErrorWriter
}

// NewClienteHandler constrói o handler.
func NewClienteHandler(uc *usecase.ClienteUseCase, errs *ErrorWriter) *ClienteHandler {
	return &ClienteHandler{uc: uc, errs: errs}
}

// Create godoc
// @Summary      Criar cliente
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClienteRequest  true  "Dados do cliente"
// @Success      201   {object}  dto.ClienteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clientes [post]
func (h *ClienteHandler) Create(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.CreateClienteRequest
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
// @Summary      Listar clientes
// @Description  Vendedor sem clientes:ver_todos vê apenas os próprios.
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Nome, CPF/CNPJ ou email"
// @Param        limit   query  int     false  "Limite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.ClienteResponse
// @Router       /api/clientes [get]
func (h *ClienteHandler) List(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	page, err := pageFromQuery(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.List(c.UserContext(), sess, c.Query("search"), page)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter cliente
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do cliente"
// @Success      200  {object}  dto.ClienteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [get]
func (h *ClienteHandler) GetByID(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), sess, c.Params("id"))
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar cliente
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do cliente"
// @Param        body  body  dto.UpdateClienteRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.ClienteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [put]
func (h *ClienteHandler) Update(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.UpdateClienteRequest
	if err := bindBody(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), sess, c.Params("id"), in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}
