// Package sequence formata e interpreta o número legível dos processos (PROC-{ano}-{seq}).
package sequence

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const prefix = "PROC"

// Format monta o número com sequência de no mínimo 4 dígitos.
func Format(year, seq int) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, seq)
}

// Parse extrai a sequência (último segmento numérico) de um número existente.
func Parse(numero string) (int, error) {
	idx := strings.LastIndex(numero, "-")
	if idx < 0 || idx == len(numero)-1 {
		return 0, fmt.Errorf("número de processo inválido: %q", numero)
	}
	seq, err := strconv.Atoi(numero[idx+1:])
	if err != nil || seq < 0 {
		return 0, fmt.Errorf("número de processo inválido: %q", numero)
	}
	return seq, nil
}

// Next calcula a próxima sequência a partir do número mais recente do ano ("" se não houver nenhum).
func Next(latest string) (int, error) {
	if latest == "" {
		return 1, nil
	}
	seq, err := Parse(latest)
	if err != nil {
		return 0, err
	}
	return seq + 1, nil
}

// YearRange devolve [1º de janeiro do ano, 1º de janeiro do ano seguinte) no fuso informado.
func YearRange(year int, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(1, 0, 0)
}
