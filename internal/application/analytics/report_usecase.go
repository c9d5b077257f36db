package analytics

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/transform"

	"github.com/limpcred/limpcred-api/internal/application/session"
	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/internal/domain/repository"
)

const (
	reportPageSize = 500
	reportMaxRows  = 20000
)

// Charsets aceitos nos relatórios texto.
const (
	CharsetUTF8        = "utf-8"
	CharsetWindows1252 = "windows-1252"
)

// ReportUseCase exporta relatórios texto e XML da empresa da sessão.
type ReportUseCase struct {
	processos repository.ProcessoRepository
	faturas   repository.FaturaRepository
	receitas  repository.ReceitaRepository
	despesas  repository.DespesaRepository
	now       func() time.Time
	loc       *time.Location
	printer   *message.Printer
}

// NewReportUseCase constrói o caso de uso. loc nil usa UTC.
func NewReportUseCase(
	processos repository.ProcessoRepository,
	faturas repository.FaturaRepository,
	receitas repository.ReceitaRepository,
	despesas repository.DespesaRepository,
	loc *time.Location,
	opts ...Option,
) *ReportUseCase {
	if loc == nil {
		loc = time.UTC
	}
	o := buildOptions(opts)
	return &ReportUseCase{
		processos: processos,
		faturas:   faturas,
		receitas:  receitas,
		despesas:  despesas,
		now:       o.now,
		loc:       loc,
		printer:   message.NewPrinter(language.BrazilianPortuguese),
	}
}

// ProcessosTXT lista os processos criados no período.
func (uc *ReportUseCase) ProcessosTXT(ctx context.Context, sess session.Session, p Periodo, charset string) ([]byte, error) {
	if err := sess.Require(entity.CapRelatoriosExportar); err != nil {
		return nil, err
	}
	list, err := collect(func(limit, offset int) ([]*entity.Processo, error) {
		return uc.processos.List(ctx, repository.ListFilter{EmpresaID: sess.EmpresaID, From: &p.De, To: &p.Ate, Limit: limit, Offset: offset})
	})
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	uc.header(&sb, "RELATÓRIO DE PROCESSOS", p)
	total := decimal.Zero
	for _, pr := range list {
		sb.WriteString(fmt.Sprintf("%s | %s | %s | %s | %s | entrada %s | %dx\n",
			pr.Numero, pr.ClienteNome, pr.ClienteDoc, pr.Status, uc.brl(pr.ValorTotal), uc.brl(pr.ValorEntrada), pr.Parcelas))
		if pr.Status != entity.ProcessoCancelado {
			total = total.Add(pr.ValorTotal)
		}
	}
	sb.WriteString(fmt.Sprintf("\nTotal: %d processos | vendido %s\n", len(list), uc.brl(total)))
	return encode(sb.String(), charset)
}

// FaturasTXT lista as faturas com vencimento no período, somando por status.
func (uc *ReportUseCase) FaturasTXT(ctx context.Context, sess session.Session, p Periodo, charset string) ([]byte, error) {
	if err := sess.Require(entity.CapRelatoriosExportar); err != nil {
		return nil, err
	}
	list, err := collect(func(limit, offset int) ([]*entity.Fatura, error) {
		return uc.faturas.List(ctx, repository.ListFilter{EmpresaID: sess.EmpresaID, From: &p.De, To: &p.Ate, Limit: limit, Offset: offset})
	})
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	uc.header(&sb, "RELATÓRIO DE FATURAS", p)
	porStatus := map[entity.FaturaStatus]decimal.Decimal{}
	for _, f := range list {
		pago := "-"
		if f.DataPagamento != nil {
			pago = f.DataPagamento.In(uc.loc).Format("02/01/2006")
		}
		sb.WriteString(fmt.Sprintf("%s | %s | parcela %d/%d | vence %s | %s | %s | pago em %s\n",
			f.ClienteNome, f.ProcessoID, f.Parcela, f.TotalParcelas, f.Vencimento.In(uc.loc).Format("02/01/2006"),
			uc.brl(f.Valor), f.Status, pago))
		porStatus[f.Status] = porStatus[f.Status].Add(f.Valor)
	}
	sb.WriteString("\n")
	for _, st := range []entity.FaturaStatus{entity.FaturaPendente, entity.FaturaPaga, entity.FaturaAtrasada, entity.FaturaCancelada} {
		sb.WriteString(fmt.Sprintf("Total %s: %s\n", st, uc.brl(porStatus[st])))
	}
	return encode(sb.String(), charset)
}

type financeiro struct {
	receitas      []*entity.Receita
	despesas      []*entity.Despesa
	totalReceitas decimal.Decimal
	totalDespesas decimal.Decimal
}

func (uc *ReportUseCase) loadFinanceiro(ctx context.Context, sess session.Session, p Periodo) (*financeiro, error) {
	if err := sess.Require(entity.CapRelatoriosExportar); err != nil {
		return nil, err
	}
	f := repository.ListFilter{EmpresaID: sess.EmpresaID, Status: entity.LancamentoConfirmado, From: &p.De, To: &p.Ate}
	receitas, err := collect(func(limit, offset int) ([]*entity.Receita, error) {
		f.Limit, f.Offset = limit, offset
		return uc.receitas.List(ctx, f)
	})
	if err != nil {
		return nil, err
	}
	despesas, err := collect(func(limit, offset int) ([]*entity.Despesa, error) {
		f.Limit, f.Offset = limit, offset
		return uc.despesas.List(ctx, f)
	})
	if err != nil {
		return nil, err
	}
	out := &financeiro{receitas: receitas, despesas: despesas, totalReceitas: decimal.Zero, totalDespesas: decimal.Zero}
	for _, r := range receitas {
		out.totalReceitas = out.totalReceitas.Add(r.Valor)
	}
	for _, d := range despesas {
		out.totalDespesas = out.totalDespesas.Add(d.Valor)
	}
	return out, nil
}

// FinanceiroTXT receitas e despesas confirmadas no período e o saldo.
func (uc *ReportUseCase) FinanceiroTXT(ctx context.Context, sess session.Session, p Periodo, charset string) ([]byte, error) {
	fin, err := uc.loadFinanceiro(ctx, sess, p)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	uc.header(&sb, "RELATÓRIO FINANCEIRO", p)
	sb.WriteString("RECEITAS\n")
	for _, r := range fin.receitas {
		sb.WriteString(fmt.Sprintf("%s | %s | %s\n", r.Data.In(uc.loc).Format("02/01/2006"), r.Descricao, uc.brl(r.Valor)))
	}
	sb.WriteString(fmt.Sprintf("Total de receitas: %s\n\nDESPESAS\n", uc.brl(fin.totalReceitas)))
	for _, d := range fin.despesas {
		sb.WriteString(fmt.Sprintf("%s | %s | %s\n", d.Data.In(uc.loc).Format("02/01/2006"), d.Descricao, uc.brl(d.Valor)))
	}
	sb.WriteString(fmt.Sprintf("Total de despesas: %s\n\nSaldo: %s\n",
		uc.brl(fin.totalDespesas), uc.brl(fin.totalReceitas.Sub(fin.totalDespesas))))
	return encode(sb.String(), charset)
}

// FinanceiroXML mesmo conteúdo do relatório financeiro em XML (valores com ponto decimal).
func (uc *ReportUseCase) FinanceiroXML(ctx context.Context, sess session.Session, p Periodo) ([]byte, error) {
	fin, err := uc.loadFinanceiro(ctx, sess, p)
	if err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("financeiro")
	root.CreateAttr("empresa_id", sess.EmpresaID)
	root.CreateAttr("de", p.De.Format("2006-01-02"))
	root.CreateAttr("ate", p.Ate.AddDate(0, 0, -1).Format("2006-01-02"))
	root.CreateAttr("gerado_em", uc.now().In(uc.loc).Format(time.RFC3339))

	rec := root.CreateElement("receitas")
	rec.CreateAttr("total", fin.totalReceitas.StringFixed(2))
	for _, r := range fin.receitas {
		el := rec.CreateElement("receita")
		el.CreateAttr("id", r.ID)
		el.CreateAttr("data", r.Data.In(uc.loc).Format("2006-01-02"))
		el.CreateAttr("valor", r.Valor.StringFixed(2))
		el.CreateAttr("centro_custo_id", r.CentroCustoID)
		if r.FaturaID != nil {
			el.CreateAttr("fatura_id", *r.FaturaID)
		}
		el.SetText(r.Descricao)
	}
	desp := root.CreateElement("despesas")
	desp.CreateAttr("total", fin.totalDespesas.StringFixed(2))
	for _, d := range fin.despesas {
		el := desp.CreateElement("despesa")
		el.CreateAttr("id", d.ID)
		el.CreateAttr("data", d.Data.In(uc.loc).Format("2006-01-02"))
		el.CreateAttr("valor", d.Valor.StringFixed(2))
		el.CreateAttr("centro_custo_id", d.CentroCustoID)
		el.SetText(d.Descricao)
	}
	root.CreateElement("saldo").SetText(fin.totalReceitas.Sub(fin.totalDespesas).StringFixed(2))

	doc.Indent(2)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("relatório xml: %w", err)
	}
	return out.Bytes(), nil
}

func (uc *ReportUseCase) header(sb *strings.Builder, title string, p Periodo) {
	sb.WriteString(title + "\n")
	sb.WriteString("Período: " + p.Label() + "\n")
	sb.WriteString("Gerado em: " + uc.now().In(uc.loc).Format("02/01/2006 15:04") + "\n\n")
}

// brl formata em reais no padrão brasileiro (R$ 1.234,56).
func (uc *ReportUseCase) brl(v decimal.Decimal) string {
	return uc.printer.Sprintf("R$ %.2f", v.Round(2).InexactFloat64())
}

// collect percorre as páginas até esgotar ou atingir reportMaxRows.
func collect[T any](fetch func(limit, offset int) ([]T, error)) ([]T, error) {
	var out []T
	for offset := 0; offset < reportMaxRows; offset += reportPageSize {
		page, err := fetch(reportPageSize, offset)
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		if len(page) < reportPageSize {
			break
		}
	}
	return out, nil
}

// encode converte o texto para o charset pedido. Caracteres sem representação viram "?".
func encode(s, charset string) ([]byte, error) {
	switch strings.ToLower(charset) {
	case "", CharsetUTF8:
		return []byte(s), nil
	case CharsetWindows1252, "latin1", "iso-8859-1":
		out, _, err := transform.String(encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()), s)
		if err != nil {
			return nil, fmt.Errorf("relatório: charset: %w", err)
		}
		return []byte(out), nil
	}
	return nil, fmt.Errorf("%w: charset desconhecido", domain.ErrInvalidInput)
}
