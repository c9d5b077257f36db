package dto

import "github.com/limpcred/limpcred-api/internal/domain/entity"

// FromEndereco converte o endereço de domínio.
func FromEndereco(e entity.Endereco) EnderecoDTO {
	return EnderecoDTO(e)
}

// ToEndereco converte o endereço recebido.
func (e EnderecoDTO) ToEndereco() entity.Endereco {
	return entity.Endereco(e)
}

// FromEmpresa monta a resposta de empresa.
func FromEmpresa(e *entity.Empresa) EmpresaResponse {
	return EmpresaResponse{
		ID:           e.ID,
		RazaoSocial:  e.RazaoSocial,
		NomeFantasia: e.NomeFantasia,
		CNPJ:         e.CNPJ,
		Email:        e.Email,
		Telefone:     e.Telefone,
		Endereco:     FromEndereco(e.Endereco),
		Status:       e.Status,
		CreatedAt:    e.CreatedAt,
	}
}

// FromUsuario monta a resposta de usuário.
func FromUsuario(u *entity.Usuario) UsuarioResponse {
	perms := u.Permissoes
	if perms == nil {
		perms = []string{}
	}
	return UsuarioResponse{
		ID:         u.ID,
		EmpresaID:  u.EmpresaID,
		Nome:       u.Nome,
		Email:      u.Email,
		Telefone:   u.Telefone,
		Tipo:       string(u.Tipo),
		Status:     u.Status,
		Permissoes: perms,
		Endereco:   FromEndereco(u.Endereco),
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// FromCliente monta a resposta de cliente.
func FromCliente(c *entity.Cliente) ClienteResponse {
	return ClienteResponse{
		ID:         c.ID,
		EmpresaID:  c.EmpresaID,
		VendedorID: c.VendedorID,
		Nome:       c.Nome,
		Email:      c.Email,
		Telefone:   c.Telefone,
		Documento:  c.Documento,
		Endereco:   FromEndereco(c.Endereco),
		Status:     c.Status,
		CreatedAt:  c.CreatedAt,
	}
}

// FromProcesso monta a resposta de processo.
func FromProcesso(p *entity.Processo) ProcessoResponse {
	return ProcessoResponse{
		ID:             p.ID,
		EmpresaID:      p.EmpresaID,
		Numero:         p.Numero,
		Tipo:           p.Tipo,
		ClienteID:      p.ClienteID,
		ClienteNome:    p.ClienteNome,
		ClienteDoc:     p.ClienteDoc,
		VendedorID:     p.VendedorID,
		Status:         string(p.Status),
		ValorTotal:     p.ValorTotal,
		ValorEntrada:   p.ValorEntrada,
		Parcelas:       p.Parcelas,
		DataGarantia:   p.DataGarantia,
		ContratoKey:    p.ContratoKey,
		ComprovanteKey: p.ComprovanteKey,
		CreatedAt:      p.CreatedAt,
	}
}

// FromFatura monta a resposta de fatura.
func FromFatura(f *entity.Fatura) FaturaResponse {
	return FaturaResponse{
		ID:             f.ID,
		ProcessoID:     f.ProcessoID,
		ClienteID:      f.ClienteID,
		ClienteNome:    f.ClienteNome,
		Valor:          f.Valor,
		Parcela:        f.Parcela,
		TotalParcelas:  f.TotalParcelas,
		Vencimento:     f.Vencimento,
		DataPagamento:  f.DataPagamento,
		Status:         string(f.Status),
		FormaPagamento: f.FormaPagamento,
	}
}

// FromFaturas converte uma lista (nunca nil, para serializar como []).
func FromFaturas(list []*entity.Fatura) []FaturaResponse {
	out := make([]FaturaResponse, 0, len(list))
	for _, f := range list {
		out = append(out, FromFatura(f))
	}
	return out
}

// FromCentroCusto monta a resposta de centro de custo.
func FromCentroCusto(c *entity.CentroCusto) CentroCustoResponse {
	return CentroCustoResponse{
		ID:        c.ID,
		UsuarioID: c.UsuarioID,
		Nome:      c.Nome,
		Tipo:      string(c.Tipo),
		ParentID:  c.ParentID,
		Orcamento: c.Orcamento,
		Status:    c.Status,
	}
}

// FromReceita monta a resposta de receita.
func FromReceita(r *entity.Receita) ReceitaResponse {
	return ReceitaResponse{
		ID:            r.ID,
		UsuarioID:     r.UsuarioID,
		CentroCustoID: r.CentroCustoID,
		ProcessoID:    r.ProcessoID,
		FaturaID:      r.FaturaID,
		Descricao:     r.Descricao,
		Valor:         r.Valor,
		Data:          r.Data,
		Status:        r.Status,
	}
}

// FromDespesa monta a resposta de despesa.
func FromDespesa(d *entity.Despesa) DespesaResponse {
	return DespesaResponse{
		ID:            d.ID,
		UsuarioID:     d.UsuarioID,
		CentroCustoID: d.CentroCustoID,
		Descricao:     d.Descricao,
		Valor:         d.Valor,
		Data:          d.Data,
		Status:        d.Status,
	}
}

// FromContaBancaria monta a resposta de conta.
func FromContaBancaria(c *entity.ContaBancaria) ContaBancariaResponse {
	return ContaBancariaResponse{ID: c.ID, Banco: c.Banco, Agencia: c.Agencia, Conta: c.Conta, Tipo: c.Tipo, Saldo: c.Saldo}
}

// FromCartaoCredito monta a resposta de cartão.
func FromCartaoCredito(c *entity.CartaoCredito) CartaoCreditoResponse {
	return CartaoCreditoResponse{
		ID: c.ID, Nome: c.Nome, Bandeira: c.Bandeira, Final: c.Final,
		Limite: c.Limite, LimiteDisponivel: c.LimiteDisponivel, DiaVencimento: c.DiaVencimento,
	}
}

// FromNotificacao monta a resposta de notificação.
func FromNotificacao(n *entity.Notificacao) NotificacaoResponse {
	return NotificacaoResponse{ID: n.ID, Titulo: n.Titulo, Mensagem: n.Mensagem, Tipo: n.Tipo, Lida: n.Lida, CreatedAt: n.CreatedAt}
}

// FromSuporte monta a resposta de chamado.
func FromSuporte(m *entity.MensagemSuporte) SuporteResponse {
	return SuporteResponse{
		ID: m.ID, UsuarioID: m.UsuarioID, Assunto: m.Assunto, Mensagem: m.Mensagem,
		Status: m.Status, Resposta: m.Resposta, CreatedAt: m.CreatedAt,
	}
}
