package billing_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/limpcred/limpcred-api/internal/application/billing"
	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/session"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
)

var fixedNow = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

func clock() func() time.Time { return func() time.Time { return fixedNow } }

type fixture struct {
	db        *memDB
	tx        *memTx
	empresaID string
	vendedor  session.Session
	admin     session.Session
	cliente   entity.Cliente
}

func newFixture() *fixture {
	db := newMemDB()
	empresaID := uuid.New().String()
	vendedorID := uuid.New().String()
	cliente := entity.Cliente{
		ID:         uuid.New().String(),
		EmpresaID:  empresaID,
		VendedorID: vendedorID,
		Nome:       "Maria Souza",
		Documento:  "12345678900",
		Status:     entity.StatusAtivo,
		CreatedAt:  fixedNow,
	}
	db.clientes[cliente.ID] = cliente
	db.empresas[empresaID] = entity.Empresa{ID: empresaID, RazaoSocial: "Limp Cred LTDA", Status: entity.StatusAtivo}
	return &fixture{
		db:        db,
		tx:        &memTx{db: db},
		empresaID: empresaID,
		vendedor:  session.New(vendedorID, empresaID, entity.RoleVendedor, nil),
		admin:     session.New(uuid.New().String(), empresaID, entity.RoleAdmin, nil),
		cliente:   cliente,
	}
}

func (fx *fixture) createUC() *billing.CreateProcessoUseCase {
	return billing.NewCreateProcessoUseCase(fx.tx, billing.WithClock(clock()))
}

func (fx *fixture) faturaUC() *billing.FaturaUseCase {
	return billing.NewFaturaUseCase(fx.tx, &memFaturas{fx.db}, billing.WithClock(clock()))
}

func (fx *fixture) request(total, entrada string, parcelas int) dto.CreateProcessoRequest {
	return dto.CreateProcessoRequest{
		Tipo:         "Limpeza de nome",
		ClienteID:    fx.cliente.ID,
		ValorTotal:   decimal.RequireFromString(total),
		ValorEntrada: decimal.RequireFromString(entrada),
		Parcelas:     parcelas,
	}
}
