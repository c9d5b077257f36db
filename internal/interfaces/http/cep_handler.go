package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/limpcred/limpcred-api/internal/application/usecase"
)

// CEPHandler consulta de endereço por CEP.
type CEPHandler struct {
	uc   *usecase.CEPUseCase
	errs *ErrorWriter
}

// NewCEPHandler constrói o handler.
func NewCEPHandler(uc *usecase.CEPUseCase, errs *ErrorWriter) *CEPHandler {
	return &CEPHandler{uc: uc, errs: errs}
}

// Lookup godoc
// @Summary      Endereço por CEP
// @Tags         cep
// @Security     Bearer
// @Produce      json
// @Param        cep  path  string  true  "CEP (8 dígitos)"
// @Success      200  {object}  dto.EnderecoCEPResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/cep/{cep} [get]
func (h *CEPHandler) Lookup(c *fiber.Ctx) error {
	out, err := h.uc.Lookup(c.UserContext(), c.Params("cep"))
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}
