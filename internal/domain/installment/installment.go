// Package installment divide o saldo de um processo em parcelas mensais (serviço de domínio, sem I/O).
package installment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidPlan plano de parcelamento inconsistente (entrada maior que o total, n < 1, parcela zerada).
var ErrInvalidPlan = errors.New("plano de parcelamento inválido")

// Split divide (total - entrada) em n parcelas em centavos inteiros.
// As n-1 primeiras recebem floor(saldo/n); a última recebe o restante, de forma que a soma é exata.
// Toda parcela vale pelo menos R$ 0,01: saldo em centavos menor que n é plano inválido.
func Split(total, entrada decimal.Decimal, n int) ([]decimal.Decimal, error) {
	if n < 1 || total.IsNegative() || entrada.IsNegative() {
		return nil, ErrInvalidPlan
	}
	saldo := total.Round(2).Sub(entrada.Round(2))
	if saldo.IsNegative() {
		return nil, ErrInvalidPlan
	}
	cents := saldo.Shift(2).IntPart()
	if cents < int64(n) {
		return nil, ErrInvalidPlan
	}
	base := cents / int64(n)
	resto := cents - base*int64(n)

	out := make([]decimal.Decimal, n)
	for i := 0; i < n; i++ {
		out[i] = decimal.New(base, -2)
	}
	out[n-1] = decimal.New(base+resto, -2)
	return out, nil
}

// AddMonths soma meses preservando o dia quando possível; em meses curtos usa o último dia
// (31/01 + 1 mês = 28 ou 29/02).
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DueDates devolve n vencimentos mensais a partir de first (inclusive).
// Cada data é calculada a partir de first, sem acumular o ajuste de fim de mês.
func DueDates(first time.Time, n int) []time.Time {
	out := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, AddMonths(first, i))
	}
	return out
}

// FirstDueDate vencimento padrão da primeira parcela: um mês após a criação.
func FirstDueDate(createdAt time.Time) time.Time {
	return AddMonths(createdAt, 1)
}
