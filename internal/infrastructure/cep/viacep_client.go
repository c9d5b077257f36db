// Package cep consulta endereços pelo CEP na API pública do ViaCEP.
package cep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/limpcred/limpcred-api/internal/application/ports"
	"github.com/limpcred/limpcred-api/pkg/config"
	"github.com/limpcred/limpcred-api/pkg/logger"
)

var _ ports.CEPService = (*ViaCEPClient)(nil)

const (
	defaultBaseURL = "https://viacep.com.br/ws"
	retryInterval  = 500 * time.Millisecond
)

// ViaCEPClient adaptador HTTP do ViaCEP. Repete falhas de rede e 5xx; 4xx e "erro": true não são repetidos.
type ViaCEPClient struct {
	baseURL    string
	maxRetries uint64
	interval   time.Duration
	httpClient *http.Client
	log        *logger.Logger
}

// NewViaCEPClient constrói o cliente a partir da configuração.
func NewViaCEPClient(cfg config.CEPConfig, log *logger.Logger) *ViaCEPClient {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ViaCEPClient{
		baseURL:    base,
		maxRetries: cfg.MaxRetries,
		interval:   retryInterval,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.Named("viacep"),
	}
}

type viaCEPResponse struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	// ViaCEP responde 200 com {"erro": true} (às vezes "true" como string) para CEP inexistente.
	Erro any `json:"erro"`
}

func (r viaCEPResponse) notFound() bool {
	switch v := r.Erro.(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}

// Lookup consulta o CEP (8 dígitos, sem máscara).
func (c *ViaCEPClient) Lookup(ctx context.Context, cep string) (*ports.EnderecoCEP, error) {
	url := fmt.Sprintf("%s/%s/json/", c.baseURL, cep)

	var out *ports.EnderecoCEP
	attempt := 0
	op := func() error {
		attempt++
		res, err := c.fetch(ctx, url)
		if err != nil {
			c.log.Debug().Err(err).Int("attempt", attempt).Str("cep", cep).Msg("falha na consulta")
			return err
		}
		out = res
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(c.interval), c.maxRetries), ctx)
	if err := backoff.Retry(op, b); err != nil {
		if errors.Is(err, ports.ErrCEPNotFound) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("viacep: timeout ou cancelamento: %w", ctx.Err())
		}
		return nil, fmt.Errorf("viacep: %w", err)
	}
	return out, nil
}

func (c *ViaCEPClient) fetch(ctx context.Context, url string) (*ports.EnderecoCEP, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("criar request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chamada http: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16*1024))
	if err != nil {
		return nil, fmt.Errorf("ler resposta: %w", err)
	}

	switch {
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound:
		return nil, backoff.Permanent(ports.ErrCEPNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, backoff.Permanent(fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	var body viaCEPResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("resposta inválida: %w", err))
	}
	if body.notFound() {
		return nil, backoff.Permanent(ports.ErrCEPNotFound)
	}
	return &ports.EnderecoCEP{
		CEP:        strings.ReplaceAll(body.CEP, "-", ""),
		Logradouro: body.Logradouro,
		Bairro:     body.Bairro,
		Cidade:     body.Localidade,
		UF:         body.UF,
	}, nil
}
