package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/internal/domain/repository"
)

// ProvisionCentroCliente garante a hierarquia "Receita Clientes" → "Cliente - {nome}" do dono
// e soma valor ao orçamento do centro do cliente. Devolve o centro filho.
//
// O lock por dono impede que duas transações criem o mesmo centro; o incremento é atômico no banco.
func ProvisionCentroCliente(
	ctx context.Context,
	repo repository.CentroCustoRepository,
	ownerID, empresaID, clienteNome string,
	valor decimal.Decimal,
	now time.Time,
) (*entity.CentroCusto, error) {
	if err := repo.LockOwner(ctx, empresaID, ownerID); err != nil {
		return nil, fmt.Errorf("centro de custo: lock: %w", err)
	}
	centros, err := repo.ListByUsuario(ctx, empresaID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("centro de custo: listar: %w", err)
	}

	parent := findCentro(centros, entity.CentroReceitaClientes, nil)
	if parent == nil {
		parent = newCentro(ownerID, empresaID, entity.CentroReceitaClientes, nil, decimal.Zero, now)
		if err := repo.Create(ctx, parent); err != nil {
			return nil, fmt.Errorf("centro de custo: criar pai: %w", err)
		}
	}

	childName := entity.NomeCentroCliente(clienteNome)
	child := findCentro(centros, childName, &parent.ID)
	if child == nil {
		child = newCentro(ownerID, empresaID, childName, &parent.ID, valor, now)
		if err := repo.Create(ctx, child); err != nil {
			return nil, fmt.Errorf("centro de custo: criar cliente: %w", err)
		}
		return child, nil
	}

	if valor.IsPositive() {
		if err := repo.IncrementOrcamento(ctx, child.ID, valor); err != nil {
			return nil, fmt.Errorf("centro de custo: orçamento: %w", err)
		}
		child.Orcamento = child.Orcamento.Add(valor)
	}
	return child, nil
}

// findCentro busca por nome e tipo receita; com parentID também exige o vínculo ao pai.
func findCentro(centros []*entity.CentroCusto, nome string, parentID *string) *entity.CentroCusto {
	for _, c := range centros {
		if c.Nome != nome || c.Tipo != entity.TipoReceita {
			continue
		}
		if parentID != nil && !c.IsChildOf(*parentID) {
			continue
		}
		return c
	}
	return nil
}

func newCentro(ownerID, empresaID, nome string, parentID *string, orcamento decimal.Decimal, now time.Time) *entity.CentroCusto {
	return &entity.CentroCusto{
		ID:        uuid.New().String(),
		EmpresaID: empresaID,
		UsuarioID: ownerID,
		Nome:      nome,
		Tipo:      entity.TipoReceita,
		ParentID:  parentID,
		Orcamento: orcamento.Round(2),
		Status:    entity.StatusAtivo,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
