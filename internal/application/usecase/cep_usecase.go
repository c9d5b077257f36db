package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/ports"
	"github.com/limpcred/limpcred-api/internal/domain"
)

const cepTimeout = 10 * time.Second

// CEPUseCase preenchimento de endereço a partir do CEP.
type CEPUseCase struct {
	svc ports.CEPService
}

// NewCEPUseCase constrói o caso de uso.
func NewCEPUseCase(svc ports.CEPService) *CEPUseCase {
	return &CEPUseCase{svc: svc}
}

// Lookup valida o CEP (8 dígitos, com ou sem hífen) e consulta o serviço.
func (uc *CEPUseCase) Lookup(ctx context.Context, cep string) (*dto.EnderecoCEPResponse, error) {
	cep = onlyDigits(cep)
	if len(cep) != 8 {
		return nil, domain.ErrInvalidInput
	}
	// as tentativas do cliente ficam dentro deste prazo
	ctx, cancel := context.WithTimeout(ctx, cepTimeout)
	defer cancel()
	e, err := uc.svc.Lookup(ctx, cep)
	if err != nil {
		if errors.Is(err, ports.ErrCEPNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &dto.EnderecoCEPResponse{CEP: e.CEP, Logradouro: e.Logradouro, Bairro: e.Bairro, Cidade: e.Cidade, UF: e.UF}, nil
}
