package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContaBancaria registro de conta com saldo informado manualmente.
type ContaBancaria struct {
	ID        string
	EmpresaID string
	UsuarioID string
	Banco     string
	Agencia   string
	Conta     string
	Tipo      string // corrente, poupanca
	Saldo     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartaoCredito registro de cartão com limite informado manualmente.
type CartaoCredito struct {
	ID               string
	EmpresaID        string
	UsuarioID        string
	Nome             string
	Bandeira         string
	Final            string // últimos 4 dígitos
	Limite           decimal.Decimal
	LimiteDisponivel decimal.Decimal
	DiaVencimento    int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
