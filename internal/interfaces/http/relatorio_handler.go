package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/limpcred/limpcred-api/internal/application/analytics"
	"github.com/limpcred/limpcred-api/internal/application/session"
)

// RelatorioHandler exportação de relatórios em texto e XML.
type RelatorioHandler struct {
	uc   *analytics.ReportUseCase
	loc  *time.Location
	now  func() time.Time
	errs *ErrorWriter
}

// NewRelatorioHandler constrói o handler. loc define o fuso dos períodos.
func NewRelatorioHandler(uc *analytics.ReportUseCase, loc *time.Location, errs *ErrorWriter) *RelatorioHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &RelatorioHandler{uc: uc, loc: loc, now: time.Now, errs: errs}
}

type textReport func(ctx context.Context, sess session.Session, p analytics.Periodo, charset string) ([]byte, error)

// Processos godoc
// @Summary      Relatório de processos (texto)
// @Tags         relatorios
// @Security     Bearer
// @Produce      plain
// @Param        de       query  string  false  "Data inicial (AAAA-MM-DD); padrão início do mês"
// @Param        ate      query  string  false  "Data final inclusiva (AAAA-MM-DD); padrão hoje"
// @Param        charset  query  string  false  "utf-8 ou windows-1252"  default(utf-8)
// @Success      200      {string}  string
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      403      {object}  dto.ErrorResponse
// @Router       /api/relatorios/processos.txt [get]
func (h *RelatorioHandler) Processos(c *fiber.Ctx) error {
	return h.sendText(c, "processos", h.uc.ProcessosTXT)
}

// Faturas godoc
// @Summary      Relatório de faturas (texto)
// @Tags         relatorios
// @Security     Bearer
// @Produce      plain
// @Param        de       query  string  false  "Data inicial (AAAA-MM-DD)"
// @Param        ate      query  string  false  "Data final inclusiva (AAAA-MM-DD)"
// @Param        charset  query  string  false  "utf-8 ou windows-1252"  default(utf-8)
// @Success      200      {string}  string
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/relatorios/faturas.txt [get]
func (h *RelatorioHandler) Faturas(c *fiber.Ctx) error {
	return h.sendText(c, "faturas", h.uc.FaturasTXT)
}

// Financeiro godoc
// @Summary      Relatório financeiro (texto)
// @Tags         relatorios
// @Security     Bearer
// @Produce      plain
// @Param        de       query  string  false  "Data inicial (AAAA-MM-DD)"
// @Param        ate      query  string  false  "Data final inclusiva (AAAA-MM-DD)"
// @Param        charset  query  string  false  "utf-8 ou windows-1252"  default(utf-8)
// @Success      200      {string}  string
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/relatorios/financeiro.txt [get]
func (h *RelatorioHandler) Financeiro(c *fiber.Ctx) error {
	return h.sendText(c, "financeiro", h.uc.FinanceiroTXT)
}

// FinanceiroXML godoc
// @Summary      Relatório financeiro (XML)
// @Tags         relatorios
// @Security     Bearer
// @Produce      xml
// @Param        de   query  string  false  "Data inicial (AAAA-MM-DD)"
// @Param        ate  query  string  false  "Data final inclusiva (AAAA-MM-DD)"
// @Success      200  {string}  string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/relatorios/financeiro.xml [get]
func (h *RelatorioHandler) FinanceiroXML(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	p, err := analytics.ParsePeriodo(c.Query("de"), c.Query("ate"), h.now(), h.loc)
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.FinanceiroXML(c.UserContext(), sess, p)
	if err != nil {
		return h.errs.Write(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, attachment("financeiro", p, "xml"))
	return c.Send(out)
}

func (h *RelatorioHandler) sendText(c *fiber.Ctx, name string, gen textReport) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	p, err := analytics.ParsePeriodo(c.Query("de"), c.Query("ate"), h.now(), h.loc)
	if err != nil {
		return h.errs.Write(c, err)
	}
	charset := c.Query("charset", analytics.CharsetUTF8)
	out, err := gen(c.UserContext(), sess, p, charset)
	if err != nil {
		return h.errs.Write(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/plain; charset="+charset)
	c.Set(fiber.HeaderContentDisposition, attachment(name, p, "txt"))
	return c.Send(out)
}

func attachment(name string, p analytics.Periodo, ext string) string {
	last := p.Ate.AddDate(0, 0, -1)
	return fmt.Sprintf("attachment; filename=\"%s_%s_%s.%s\"",
		name, p.De.Format("20060102"), last.Format("20060102"), ext)
}
