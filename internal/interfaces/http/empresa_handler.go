package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/usecase"
)

// EmpresaHandler cadastro de empresas (admin).
type EmpresaHandler struct {
	uc   *usecase.EmpresaUseCase
	errs *ErrorWriter
}

// NewEmpresaHandler constrói o handler.
func NewEmpresaHandler(uc *usecase.EmpresaUseCase, errs *ErrorWriter) *EmpresaHandler {
	return &EmpresaHandler{uc: uc, errs: errs}
}

// Create godoc
// @Summary      Criar empresa
// @Description  O admin que cria passa a administrar a nova empresa.
// @Tags         empresas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmpresaRequest  true  "Dados da empresa"
// @Success      201   {object}  dto.EmpresaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/empresas [post]
func (h *EmpresaHandler) Create(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.CreateEmpresaRequest
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
// @Summary      Empresas administradas pelo usuário
// @Tags         empresas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.EmpresaResponse
// @Router       /api/empresas [get]
func (h *EmpresaHandler) List(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.List(c.UserContext(), sess)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter empresa
// @Tags         empresas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da empresa"
// @Success      200  {object}  dto.EmpresaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/empresas/{id} [get]
func (h *EmpresaHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Atualizar empresa
// @Tags         empresas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da empresa"
// @Param        body  body  dto.UpdateEmpresaRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.EmpresaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/empresas/{id} [put]
func (h *EmpresaHandler) Update(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.UpdateEmpresaRequest
	if err := bindBody(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), sess, c.Params("id"), in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// AddAdmin godoc
// @Summary      Adicionar administrador à empresa
// @Tags         empresas
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID da empresa"
// @Param        body  body  dto.AddAdminRequest  true  "admin_id"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/empresas/{id}/admins [post]
func (h *EmpresaHandler) AddAdmin(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.AddAdminRequest
	if err := bindBody(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	if err := h.uc.AddAdmin(c.UserContext(), sess, c.Params("id"), in); err != nil {
		return h.errs.Write(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
