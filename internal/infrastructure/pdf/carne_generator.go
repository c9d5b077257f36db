// Package pdf gera o carnê de pagamento de um processo.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  CABEÇALHO: Empresa + CNPJ   │  N° Processo + emissão       │
//	│  CLIENTE: nome + documento                                  │
//	│  RESUMO: total / entrada / financiado / parcelas            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  LÂMINA por parcela: parcela | vencimento | valor | status  │
//	│          + QR com a referência da parcela                   │
//	│  - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/linestyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/limpcred/limpcred-api/internal/application/billing"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
)

var _ billing.CarneGenerator = (*MarotoCarneGenerator)(nil)

// ── Paleta ────────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 102, Blue: 68}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// MarotoCarneGenerator implementa billing.CarneGenerator com Maroto v2.
type MarotoCarneGenerator struct {
	loc *time.Location
	now func() time.Time
}

// NewMarotoCarneGenerator loc define o fuso das datas impressas (nil usa UTC).
func NewMarotoCarneGenerator(loc *time.Location) *MarotoCarneGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &MarotoCarneGenerator{loc: loc, now: time.Now}
}

// GenerateCarne gera o PDF e devolve seus bytes.
func (g *MarotoCarneGenerator) GenerateCarne(
	_ context.Context,
	empresa *entity.Empresa,
	processo *entity.Processo,
	faturas []*entity.Fatura,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Carnê "+processo.Numero, true).
		WithAuthor(empresa.RazaoSocial, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(empresa, processo))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(processo))
	m.AddRows(resumoRow(processo))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(faturas) == 0 {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("Processo pago à vista: não há parcelas.", props.Text{Size: 10, Align: align.Center, Top: 3}),
		)))
	}
	for _, f := range faturas {
		m.AddRows(g.laminaRows(processo, f)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

func (g *MarotoCarneGenerator) headerRow(empresa *entity.Empresa, processo *entity.Processo) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(empresa.NomeFantasia, empresa.RazaoSocial), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CNPJ: "+FormatCNPJ(empresa.CNPJ), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("CARNÊ DE PAGAMENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(processo.Numero, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Emissão: "+g.now().In(g.loc).Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func clienteRow(processo *entity.Processo) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(processo.ClienteNome, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New("CPF/CNPJ: "+processo.ClienteDoc, props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func resumoRow(processo *entity.Processo) core.Row {
	item := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
		)
	}
	financiado := processo.ValorTotal.Sub(processo.ValorEntrada)
	return row.New(12).Add(
		item("Valor total", FormatBRL(processo.ValorTotal)),
		item("Entrada", FormatBRL(processo.ValorEntrada)),
		item("Financiado", FormatBRL(financiado)),
		item("Parcelas", fmt.Sprintf("%dx", processo.Parcelas)),
	)
}

// laminaRows uma lâmina destacável por parcela.
func (g *MarotoCarneGenerator) laminaRows(processo *entity.Processo, f *entity.Fatura) []core.Row {
	status, statusColor := strings.ToUpper(string(f.Status)), colorGray
	switch f.Status {
	case entity.FaturaPaga:
		if f.DataPagamento != nil {
			status += " em " + f.DataPagamento.In(g.loc).Format("02/01/2006")
		}
		statusColor = colorPrimary
	case entity.FaturaAtrasada:
		statusColor = colorRed
	}

	field := func(label, value string, size int) core.Col {
		return col.New(size).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 2}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 10, Top: 7}),
		)
	}

	return []core.Row{
		row.New(4),
		row.New(28).Add(
			col.New(3).Add(code.NewQr(QRPayload(processo, f), props.Rect{Percent: 90, Center: true})),
			col.New(9).Add(
				text.New(fmt.Sprintf("%s · Parcela %d/%d", processo.Numero, f.Parcela, f.TotalParcelas), props.Text{
					Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1,
				}),
				text.New(processo.ClienteNome, props.Text{Size: 8, Top: 6, Color: colorGray}),
				text.New(status, props.Text{Style: fontstyle.Bold, Size: 8, Top: 22, Color: statusColor}),
			),
		),
		row.New(14).Add(
			col.New(3),
			field("Vencimento", f.Vencimento.In(g.loc).Format("02/01/2006"), 3),
			field("Valor", FormatBRL(f.Valor), 3),
			field("Forma de pagamento", nonEmpty(f.FormaPagamento, "-"), 3),
		),
		line.NewRow(4, props.Line{Color: colorGray, Thickness: 0.2, Style: linestyle.Dashed}),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

// QRPayload referência lida no caixa para localizar a parcela.
func QRPayload(processo *entity.Processo, f *entity.Fatura) string {
	return fmt.Sprintf("LIMPCRED|%s|%d/%d|%s|%s", processo.Numero, f.Parcela, f.TotalParcelas, f.Valor.StringFixed(2), f.ID)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// FormatBRL "R$ 1.234,56".
func FormatBRL(v decimal.Decimal) string {
	s := v.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	out := "R$ " + groupThousands(intPart) + "," + frac
	if v.IsNegative() {
		return "-" + out
	}
	return out
}

// groupThousands insere pontos de milhar: "1000000" → "1.000.000".
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

// FormatCNPJ 12345678000199 → 12.345.678/0001-99. Outros tamanhos voltam sem máscara.
func FormatCNPJ(cnpj string) string {
	if len(cnpj) != 14 {
		return cnpj
	}
	return cnpj[:2] + "." + cnpj[2:5] + "." + cnpj[5:8] + "/" + cnpj[8:12] + "-" + cnpj[12:]
}
