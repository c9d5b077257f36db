package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/usecase"
)

// DocumentoHandler documentos dos clientes no object storage.
type DocumentoHandler struct {
	uc   *usecase.DocumentoUseCase
	errs *ErrorWriter
}

// NewDocumentoHandler constrói o handler.
func NewDocumentoHandler(uc *usecase.DocumentoUseCase, errs *ErrorWriter) *DocumentoHandler {
	return &DocumentoHandler{uc: uc, errs: errs}
}

// UploadURL godoc
// @Summary      URL pré-assinada para envio de documento
// @Tags         documentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do cliente"
// @Param        body  body  dto.UploadURLRequest  true  "tipo, nome_arquivo, content_type"
// @Success      200   {object}  dto.UploadURLResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/clientes/{id}/documentos/upload-url [post]
func (h *DocumentoHandler) UploadURL(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.UploadURLRequest
	if err := bindBody(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.UploadURL(c.UserContext(), sess, c.Params("id"), in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// Upload godoc
// @Summary      Envio direto de documento (multipart)
// @Tags         documentos
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        id       path      string  true  "ID do cliente"
// @Param        tipo     formData  string  true  "contrato, comprovante, rg_cnh, comprovante_endereco"
// @Param        arquivo  formData  file    true  "Arquivo (até 10 MB)"
// @Success      201      {object}  dto.DocumentoUploadResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      503      {object}  dto.ErrorResponse
// @Router       /api/clientes/{id}/documentos [post]
func (h *DocumentoHandler) Upload(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	fh, err := c.FormFile("arquivo")
	if err != nil {
		return h.errs.Write(c, invalid("campo arquivo obrigatório"))
	}
	if fh.Size > usecase.MaxUploadSize {
		return h.errs.Write(c, invalid("arquivo excede 10 MB"))
	}
	f, err := fh.Open()
	if err != nil {
		return h.errs.Write(c, err)
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	out, err := h.uc.Upload(c.UserContext(), sess, c.Params("id"),
		strings.TrimSpace(c.FormValue("tipo")), fh.Filename, contentType, f, fh.Size)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DownloadURL godoc
// @Summary      URL pré-assinada para download de documento
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        key  query  string  true  "Chave do objeto"
// @Success      200  {object}  dto.DownloadURLResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/documentos/download-url [get]
func (h *DocumentoHandler) DownloadURL(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	key := strings.TrimSpace(c.Query("key"))
	if key == "" {
		return h.errs.Write(c, invalid("key obrigatório"))
	}
	out, err := h.uc.DownloadURL(c.UserContext(), sess, key)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}
