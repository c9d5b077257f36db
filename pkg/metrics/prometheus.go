// Package metrics expõe os contadores Prometheus da aplicação (registrados no registry padrão).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProcessosCriados = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "limpcred_processos_criados_total",
			Help: "Processos criados por empresa",
		},
		[]string{"empresa_id"},
	)

	FaturasGeradas = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "limpcred_faturas_geradas_total",
			Help: "Faturas geradas no parcelamento",
		},
		[]string{"empresa_id"},
	)

	FaturasStatus = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "limpcred_faturas_status_total",
			Help: "Mudanças de status de faturas",
		},
		[]string{"empresa_id", "status"},
	)

	ReceitaRegistrada = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "limpcred_receita_registrada_reais_total",
			Help: "Valor de receitas registradas automaticamente, em reais",
		},
		[]string{"empresa_id", "origem"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "limpcred_http_requests_total",
			Help: "Requisições HTTP por rota e status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "limpcred_http_request_duration_seconds",
			Help:    "Latência das requisições HTTP",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	EventosDescartados = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "limpcred_eventos_descartados_total",
			Help: "Eventos de domínio descartados por fila cheia ou erro de publicação",
		},
	)
)
