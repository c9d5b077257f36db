package installment_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limpcred/limpcred-api/internal/domain/installment"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sum(vs []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range vs {
		total = total.Add(v)
	}
	return total
}

func TestSplit_ValoresExatos(t *testing.T) {
	parts, err := installment.Split(d("1200.00"), d("200.00"), 5)
	require.NoError(t, err)
	require.Len(t, parts, 5)
	for _, p := range parts {
		assert.True(t, p.Equal(d("200.00")), "parcela %s", p)
	}
}

func TestSplit_RestoNaUltimaParcela(t *testing.T) {
	parts, err := installment.Split(d("100.00"), decimal.Zero, 3)
	require.NoError(t, err)
	assert.True(t, parts[0].Equal(d("33.33")))
	assert.True(t, parts[1].Equal(d("33.33")))
	assert.True(t, parts[2].Equal(d("33.34")))
}

func TestSplit_SomaSempreIgualAoSaldo(t *testing.T) {
	totals := []string{"0.01", "1.00", "99.99", "100.00", "1234.57", "10000.00", "7.77"}
	entradas := []string{"0", "0.01", "0.50", "1.00"}
	for _, ts := range totals {
		for _, es := range entradas {
			total, entrada := d(ts), d(es)
			if entrada.GreaterThan(total) {
				continue
			}
			cents := total.Sub(entrada).Shift(2).IntPart()
			for n := 1; n <= 24 && int64(n) <= cents; n++ {
				parts, err := installment.Split(total, entrada, n)
				require.NoError(t, err)
				require.Len(t, parts, n)
				assert.True(t, sum(parts).Equal(total.Sub(entrada)),
					"total=%s entrada=%s n=%d soma=%s", total, entrada, n, sum(parts))
				for _, p := range parts {
					assert.True(t, p.IsPositive(), "parcela zerada: total=%s entrada=%s n=%d", total, entrada, n)
					assert.Equal(t, int32(-2), p.Exponent())
				}
			}
		}
	}
}

func TestSplit_PlanoInvalido(t *testing.T) {
	_, err := installment.Split(d("100"), d("150"), 2)
	assert.ErrorIs(t, err, installment.ErrInvalidPlan)

	_, err = installment.Split(d("100"), decimal.Zero, 0)
	assert.ErrorIs(t, err, installment.ErrInvalidPlan)
}

func TestSplit_SaldoMenorQueParcelas(t *testing.T) {
	_, err := installment.Split(d("0.02"), decimal.Zero, 5)
	assert.ErrorIs(t, err, installment.ErrInvalidPlan)

	_, err = installment.Split(d("10.00"), d("10.00"), 1)
	assert.ErrorIs(t, err, installment.ErrInvalidPlan)

	parts, err := installment.Split(d("0.05"), decimal.Zero, 5)
	require.NoError(t, err)
	for _, p := range parts {
		assert.True(t, p.Equal(d("0.01")))
	}
}

func TestDueDates_Mensais(t *testing.T) {
	first := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	dates := installment.DueDates(first, 3)
	assert.Equal(t, []time.Time{
		time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC),
	}, dates)
}

func TestDueDates_FimDeMes(t *testing.T) {
	first := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	dates := installment.DueDates(first, 4)
	assert.Equal(t, 31, dates[0].Day())
	assert.Equal(t, time.February, dates[1].Month())
	assert.Equal(t, 29, dates[1].Day()) // 2024 é bissexto
	assert.Equal(t, 31, dates[2].Day())
	assert.Equal(t, 30, dates[3].Day())
}

func TestFirstDueDate_MesSeguinte(t *testing.T) {
	created := time.Date(2024, time.December, 10, 14, 0, 0, 0, time.UTC)
	first := installment.FirstDueDate(created)
	assert.Equal(t, 2025, first.Year())
	assert.Equal(t, time.January, first.Month())
	assert.Equal(t, 10, first.Day())
}
