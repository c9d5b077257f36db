package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/usecase"
)

// FinanceiroHandler centros de custo, receitas e despesas.
type FinanceiroHandler struct {
	uc   *usecase.FinanceiroUseCase
	errs *ErrorWriter
}

// NewFinanceiroHandler constrói o handler.
func NewFinanceiroHandler(uc *usecase.FinanceiroUseCase, errs *ErrorWriter) *FinanceiroHandler {
	return &FinanceiroHandler{uc: uc, errs: errs}
}

// CreateCentro godoc
// @Summary      Criar centro de custo
// @Tags         financeiro
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCentroCustoRequest  true  "Dados do centro"
// @Success      201   {object}  dto.CentroCustoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/centros-custo [post]
func (h *FinanceiroHandler) CreateCentro(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.CreateCentroCustoRequest
	if err := bindBody(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.CreateCentro(c.UserContext(), sess, in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCentros godoc
// @Summary      Listar centros de custo
// @Tags         financeiro
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CentroCustoResponse
// @Router       /api/centros-custo [get]
func (h *FinanceiroHandler) ListCentros(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.ListCentros(c.UserContext(), sess)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// UpdateCentro godoc
// @Summary      Atualizar centro de custo
// @Tags         financeiro
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do centro"
// @Param        body  body  dto.UpdateCentroCustoRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.CentroCustoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/centros-custo/{id} [put]
func (h *FinanceiroHandler) UpdateCentro(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.UpdateCentroCustoRequest
	if err := bindBody(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.UpdateCentro(c.UserContext(), sess, c.Params("id"), in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// CreateReceita godoc
// @Summary      Lançar receita manual
// @Tags         financeiro
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLancamentoRequest  true  "Dados da receita"
// @Success      201   {object}  dto.ReceitaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/receitas [post]
func (h *FinanceiroHandler) CreateReceita(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.CreateLancamentoRequest
	if err := bindBody(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.CreateReceita(c.UserContext(), sess, in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListReceitas godoc
// @Summary      Listar receitas
// @Tags         financeiro
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Status"
// @Param        search  query  string  false  "Descrição"
// @Param        de      query  string  false  "Data inicial (AAAA-MM-DD)"
// @Param        ate     query  string  false  "Data final inclusiva (AAAA-MM-DD)"
// @Param        limit   query  int     false  "Limite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.ReceitaResponse
// @Router       /api/receitas [get]
func (h *FinanceiroHandler) ListReceitas(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	f, err := lancamentoFilter(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.ListReceitas(c.UserContext(), sess, f)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// CreateDespesa godoc
// @Summary      Lançar despesa
// @Tags         financeiro
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLancamentoRequest  true  "Dados da despesa"
// @Success      201   {object}  dto.DespesaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/despesas [post]
func (h *FinanceiroHandler) CreateDespesa(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.CreateLancamentoRequest
	if err := bindBody(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.CreateDespesa(c.UserContext(), sess, in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListDespesas godoc
// @Summary      Listar despesas
// @Tags         financeiro
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Status"
// @Param        search  query  string  false  "Descrição"
// @Param        de      query  string  false  "Data inicial (AAAA-MM-DD)"
// @Param        ate     query  string  false  "Data final inclusiva (AAAA-MM-DD)"
// @Param        limit   query  int     false  "Limite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.DespesaResponse
// @Router       /api/despesas [get]
func (h *FinanceiroHandler) ListDespesas(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	f, err := lancamentoFilter(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.ListDespesas(c.UserContext(), sess, f)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// DeleteDespesa godoc
// @Summary      Excluir despesa
// @Tags         financeiro
// @Security     Bearer
// @Param        id   path  string  true  "ID da despesa"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/despesas/{id} [delete]
func (h *FinanceiroHandler) DeleteDespesa(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	if err := h.uc.DeleteDespesa(c.UserContext(), sess, c.Params("id")); err != nil {
		return h.errs.Write(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// lancamentoFilter monta o filtro a partir da query; "ate" é inclusiva na API e exclusiva no repositório.
func lancamentoFilter(c *fiber.Ctx) (dto.LancamentoFilter, error) {
	page, err := pageFromQuery(c)
	if err != nil {
		return dto.LancamentoFilter{}, err
	}
	de, err := dateQuery(c, "de")
	if err != nil {
		return dto.LancamentoFilter{}, err
	}
	ate, err := dateQuery(c, "ate")
	if err != nil {
		return dto.LancamentoFilter{}, err
	}
	if ate != nil {
		next := ate.AddDate(0, 0, 1)
		ate = &next
	}
	if de != nil && ate != nil && !de.Before(*ate) {
		return dto.LancamentoFilter{}, invalid("de deve ser anterior ou igual a ate")
	}
	return dto.LancamentoFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		De:     de,
		Ate:    ate,
		Page:   page,
	}, nil
}
