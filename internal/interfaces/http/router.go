package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/limpcred/limpcred-api/internal/application/analytics"
	"github.com/limpcred/limpcred-api/internal/application/auth"
	"github.com/limpcred/limpcred-api/internal/application/billing"
	"github.com/limpcred/limpcred-api/internal/application/ports"
	"github.com/limpcred/limpcred-api/internal/application/usecase"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/pkg/logger"
)

// DefaultIdempotencyTTL janela em que uma Idempotency-Key repetida é recusada.
const DefaultIdempotencyTTL = 24 * time.Hour

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	EmpresaUC      *usecase.EmpresaUseCase
	UsuarioUC      *usecase.UsuarioUseCase
	ClienteUC      *usecase.ClienteUseCase
	DocumentoUC    *usecase.DocumentoUseCase
	CreateProcesso *billing.CreateProcessoUseCase
	ProcessoUC     *billing.ProcessoUseCase
	FaturaUC       *billing.FaturaUseCase
	CarneUC        *billing.CarneUseCase
	FinanceiroUC   *usecase.FinanceiroUseCase
	ContaUC        *usecase.ContaUseCase
	DashboardUC    *analytics.DashboardUseCase
	ReportUC       *analytics.ReportUseCase
	CEPUC          *usecase.CEPUseCase
	NotificacaoUC  *usecase.NotificacaoUseCase
	SuporteUC      *usecase.SuporteUseCase

	// Idempotency é opcional (Redis desligado).
	Idempotency    ports.IdempotencyStore
	IdempotencyTTL time.Duration

	Errors    *ErrorWriter
	Logger    *logger.Logger
	Location  *time.Location
	JWTSecret string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	errs := deps.Errors
	if errs == nil {
		errs = NewErrorWriter(deps.Logger)
	}
	ttl := deps.IdempotencyTTL
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, errs)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/google", authHandler.LoginGoogle)
	authGroup.Get("/google/url", authHandler.GoogleURL)

	// Rotas protegidas (Bearer, X-Empresa-ID opcional, Idempotency-Key opcional)
	protected := api.Group("/",
		AuthMiddleware(deps.JWTSecret, deps.AuthUC, errs),
		Idempotency(deps.Idempotency, ttl, deps.Logger),
	)

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/empresa", authHandler.SelectEmpresa)

	empresaHandler := NewEmpresaHandler(deps.EmpresaUC, errs)
	empresas := protected.Group("/empresas", RequireCapability(entity.CapEmpresasGerenciar))
	empresas.Post("/", empresaHandler.Create)
	empresas.Get("/", empresaHandler.List)
	empresas.Get("/:id", empresaHandler.GetByID)
	empresas.Put("/:id", empresaHandler.Update)
	empresas.Post("/:id/admins", empresaHandler.AddAdmin)

	usuarioHandler := NewUsuarioHandler(deps.UsuarioUC, errs)
	usuarios := protected.Group("/usuarios", RequireCapability(entity.CapUsuariosGerenciar))
	usuarios.Post("/", usuarioHandler.Create)
	usuarios.Get("/", usuarioHandler.List)
	usuarios.Get("/:id", usuarioHandler.GetByID)
	usuarios.Put("/:id", usuarioHandler.Update)

	clienteHandler := NewClienteHandler(deps.ClienteUC, errs)
	documentoHandler := NewDocumentoHandler(deps.DocumentoUC, errs)
	clientes := protected.Group("/clientes")
	clientes.Post("/", clienteHandler.Create)
	clientes.Get("/", clienteHandler.List)
	clientes.Get("/:id", clienteHandler.GetByID)
	clientes.Put("/:id", clienteHandler.Update)
	clientes.Post("/:id/documentos/upload-url", documentoHandler.UploadURL)
	clientes.Post("/:id/documentos", documentoHandler.Upload)
	protected.Get("/documentos/download-url", documentoHandler.DownloadURL)

	processoHandler := NewProcessoHandler(deps.CreateProcesso, deps.ProcessoUC, deps.CarneUC, errs)
	processos := protected.Group("/processos")
	processos.Post("/", processoHandler.Create)
	processos.Get("/", processoHandler.List)
	processos.Get("/:id", processoHandler.Get)
	processos.Patch("/:id/status", processoHandler.UpdateStatus)
	processos.Put("/:id/arquivos", processoHandler.UpdateArquivos)
	processos.Get("/:id/carne.pdf", processoHandler.Carne)

	faturaHandler := NewFaturaHandler(deps.FaturaUC, errs)
	faturas := protected.Group("/faturas")
	faturas.Get("/", faturaHandler.List)
	faturas.Post("/atrasadas", faturaHandler.MarkOverdue)
	faturas.Get("/:id", faturaHandler.Get)
	faturas.Patch("/:id/status", faturaHandler.UpdateStatus)

	financeiroHandler := NewFinanceiroHandler(deps.FinanceiroUC, errs)
	centros := protected.Group("/centros-custo")
	centros.Post("/", financeiroHandler.CreateCentro)
	centros.Get("/", financeiroHandler.ListCentros)
	centros.Put("/:id", financeiroHandler.UpdateCentro)
	receitas := protected.Group("/receitas")
	receitas.Post("/", financeiroHandler.CreateReceita)
	receitas.Get("/", financeiroHandler.ListReceitas)
	despesas := protected.Group("/despesas")
	despesas.Post("/", financeiroHandler.CreateDespesa)
	despesas.Get("/", financeiroHandler.ListDespesas)
	despesas.Delete("/:id", financeiroHandler.DeleteDespesa)

	contaHandler := NewContaHandler(deps.ContaUC, errs)
	contas := protected.Group("/contas-bancarias")
	contas.Post("/", contaHandler.CreateConta)
	contas.Get("/", contaHandler.ListContas)
	contas.Put("/:id", contaHandler.UpdateConta)
	contas.Delete("/:id", contaHandler.DeleteConta)
	cartoes := protected.Group("/cartoes-credito")
	cartoes.Post("/", contaHandler.CreateCartao)
	cartoes.Get("/", contaHandler.ListCartoes)
	cartoes.Put("/:id", contaHandler.UpdateCartao)
	cartoes.Delete("/:id", contaHandler.DeleteCartao)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, errs)
	protected.Get("/dashboard/resumo", RequireCapability(entity.CapDashboardVer), dashboardHandler.GetResumo)

	relatorioHandler := NewRelatorioHandler(deps.ReportUC, deps.Location, errs)
	relatorios := protected.Group("/relatorios", RequireCapability(entity.CapRelatoriosExportar))
	relatorios.Get("/processos.txt", relatorioHandler.Processos)
	relatorios.Get("/faturas.txt", relatorioHandler.Faturas)
	relatorios.Get("/financeiro.txt", relatorioHandler.Financeiro)
	relatorios.Get("/financeiro.xml", relatorioHandler.FinanceiroXML)

	cepHandler := NewCEPHandler(deps.CEPUC, errs)
	protected.Get("/cep/:cep", cepHandler.Lookup)

	notificacaoHandler := NewNotificacaoHandler(deps.NotificacaoUC, errs)
	notificacoes := protected.Group("/notificacoes")
	notificacoes.Get("/", notificacaoHandler.List)
	notificacoes.Post("/tokens", notificacaoHandler.RegisterToken)
	notificacoes.Patch("/:id/lida", notificacaoHandler.MarkRead)

	suporteHandler := NewSuporteHandler(deps.SuporteUC, errs)
	suporte := protected.Group("/suporte")
	suporte.Post("/", suporteHandler.Create)
	suporte.Get("/", suporteHandler.List)
	suporte.Patch("/:id", suporteHandler.Update)
}
