package dto

import "time"

// UploadURLRequest pedido de URL pré-assinada para envio de documento do cliente.
type UploadURLRequest struct {
	Tipo        string `json:"tipo" validate:"required,oneof=contrato comprovante rg_cnh comprovante_endereco"`
	NomeArquivo string `json:"nome_arquivo" validate:"required,max=255"`
	ContentType string `json:"content_type" validate:"required"`
}

// UploadURLResponse URL pré-assinada (PUT) e chave onde o objeto ficará.
type UploadURLResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DownloadURLResponse URL pré-assinada (GET).
type DownloadURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DocumentoUploadResponse resultado do envio direto (multipart).
type DocumentoUploadResponse struct {
	Key  string `json:"key"`
	Size int64  `json:"size"`
}

// EnderecoCEPResponse endereço resolvido a partir do CEP.
type EnderecoCEPResponse struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Cidade     string `json:"cidade"`
	UF         string `json:"uf"`
}
