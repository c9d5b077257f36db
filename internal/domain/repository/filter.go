package repository

import "time"

// ListFilter filtros comuns de listagem. Campos vazios não filtram.
type ListFilter struct {
	EmpresaID  string
	VendedorID string // restringe a registros do vendedor (clientes, processos)
	UsuarioID  string
	Status     string
	Search     string // nome/documento/número, parcial e sem diferenciar maiúsculas
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}
