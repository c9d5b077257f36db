package analytics

import (
	"fmt"
	"time"

	"github.com/limpcred/limpcred-api/internal/domain"
)

// Periodo intervalo [De, Ate) usado nos relatórios.
type Periodo struct {
	De  time.Time
	Ate time.Time
}

// ParsePeriodo converte datas YYYY-MM-DD; aplica padrões se vierem vazias.
// Sem início: primeiro dia do mês de now. Sem fim: até o fim do dia de now. O fim informado é inclusivo.
func ParsePeriodo(deStr, ateStr string, now time.Time, loc *time.Location) (Periodo, error) {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)
	var p Periodo

	if ateStr == "" {
		p.Ate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	} else {
		ate, err := time.ParseInLocation("2006-01-02", ateStr, loc)
		if err != nil {
			return Periodo{}, fmt.Errorf("%w: data final inválida", domain.ErrInvalidInput)
		}
		p.Ate = ate.AddDate(0, 0, 1)
	}

	if deStr == "" {
		p.De = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	} else {
		de, err := time.ParseInLocation("2006-01-02", deStr, loc)
		if err != nil {
			return Periodo{}, fmt.Errorf("%w: data inicial inválida", domain.ErrInvalidInput)
		}
		p.De = de
	}

	if !p.De.Before(p.Ate) {
		return Periodo{}, fmt.Errorf("%w: data inicial posterior à final", domain.ErrInvalidInput)
	}
	return p, nil
}

// Label "01/03/2026 a 31/03/2026" (fim inclusivo).
func (p Periodo) Label() string {
	return p.De.Format("02/01/2006") + " a " + p.Ate.AddDate(0, 0, -1).Format("02/01/2006")
}
