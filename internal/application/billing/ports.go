package billing

import (
	"context"
	"time"

	"github.com/limpcred/limpcred-api/internal/application/ports"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/internal/domain/repository"
	"github.com/limpcred/limpcred-api/pkg/logger"
)

// Repos repositórios atados à mesma transação.
type Repos struct {
	Clientes     repository.ClienteRepository
	Processos    repository.ProcessoRepository
	Faturas      repository.FaturaRepository
	CentrosCusto repository.CentroCustoRepository
	Receitas     repository.ReceitaRepository
}

// TxRunner executa fn dentro de uma transação: commit se fn retornar nil, rollback caso contrário.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(r Repos) error) error
}

// CarneGenerator gera o carnê (PDF) de um processo.
type CarneGenerator interface {
	GenerateCarne(ctx context.Context, empresa *entity.Empresa, processo *entity.Processo, faturas []*entity.Fatura) ([]byte, error)
}

type options struct {
	now       func() time.Time
	loc       *time.Location
	publisher ports.EventPublisher
	log       *logger.Logger
}

// Option configura os casos de uso de faturamento.
type Option func(*options)

// WithClock substitui o relógio (testes).
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLocation fuso usado para numeração anual e vencimentos.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}

// WithPublisher publica eventos de domínio após o commit.
func WithPublisher(p ports.EventPublisher) Option {
	return func(o *options) {
		if p != nil {
			o.publisher = p
		}
	}
}

// WithLogger define o logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		now:       time.Now,
		loc:       time.UTC,
		publisher: ports.NopPublisher{},
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) today() time.Time {
	return o.now().In(o.loc)
}
