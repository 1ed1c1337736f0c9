package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/imobiliaria-api/internal/audit"
	"github.com/BruksfildServices01/imobiliaria-api/internal/cache"
	"github.com/BruksfildServices01/imobiliaria-api/internal/config"
	"github.com/BruksfildServices01/imobiliaria-api/internal/handlers"
	infraRepo "github.com/BruksfildServices01/imobiliaria-api/internal/infra/repository"
	"github.com/BruksfildServices01/imobiliaria-api/internal/middleware"
	"github.com/BruksfildServices01/imobiliaria-api/internal/storage"
	ucDeal "github.com/BruksfildServices01/imobiliaria-api/internal/usecase/deal"
	ucVisit "github.com/BruksfildServices01/imobiliaria-api/internal/usecase/visit"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	uploader storage.Uploader,
	dashCache *cache.Cache,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	visitRepo := infraRepo.NewVisitGormRepository(db)
	dealRepo := infraRepo.NewDealGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES
	// ======================================================
	createVisitUC := ucVisit.NewCreateVisit(visitRepo, auditDispatcher)
	updateVisitUC := ucVisit.NewUpdateVisit(visitRepo, auditDispatcher)

	createTransactionUC := ucDeal.NewCreateTransaction(dealRepo, auditDispatcher)
	updateTransactionUC := ucDeal.NewUpdateTransaction(dealRepo, auditDispatcher)
	createContractUC := ucDeal.NewCreateContract(dealRepo, auditDispatcher)
	updateContractUC := ucDeal.NewUpdateContract(dealRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	userHandler := handlers.NewUserHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	propertyHandler := handlers.NewPropertyHandler(db, auditDispatcher)
	photoHandler := handlers.NewPhotoHandler(db, uploader)

	visitHandler := handlers.NewVisitHandler(db, createVisitUC, updateVisitUC)
	transactionHandler := handlers.NewTransactionHandler(db, dealRepo, createTransactionUC, updateTransactionUC)
	contractHandler := handlers.NewContractHandler(db, dealRepo, createContractUC, updateContractUC)

	dashboardHandler := handlers.NewDashboardHandler(db, dashCache, cfg)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PÚBLICO
		// ------------------------------
		api.GET("/imoveis", propertyHandler.List)
		api.GET("/imoveis/:id", propertyHandler.Get)
		api.GET("/imoveis/:id/fotos", photoHandler.List)

		// ------------------------------
		// PRIVADO
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(db, cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// USUÁRIOS
			secured.GET("/usuarios", middleware.RequireRoles("admin"), userHandler.List)
			secured.POST("/usuarios", middleware.RequireRoles("admin"), userHandler.Create)
			secured.GET("/usuarios/:id", userHandler.Get)
			secured.PUT("/usuarios/:id", userHandler.Update)
			secured.DELETE("/usuarios/:id", middleware.RequireRoles("admin"), userHandler.Delete)

			// CLIENTES
			secured.GET("/clientes/me", middleware.RequireRoles("cliente"), clientHandler.GetMe)
			secured.PUT("/clientes/me", middleware.RequireRoles("cliente"), clientHandler.UpdateMe)
			secured.GET("/clientes", middleware.RequireRoles("admin", "corretor"), clientHandler.List)
			secured.POST("/clientes", middleware.RequireRoles("admin", "corretor"), clientHandler.Create)
			secured.GET("/clientes/:id", middleware.RequireRoles("admin", "corretor"), clientHandler.Get)
			secured.PUT("/clientes/:id", middleware.RequireRoles("admin", "corretor"), clientHandler.Update)
			secured.DELETE("/clientes/:id", middleware.RequireRoles("admin"), clientHandler.Delete)

			// IMÓVEIS
			secured.POST("/imoveis", middleware.RequireRoles("admin", "corretor"), propertyHandler.Create)
			secured.PUT("/imoveis/:id", middleware.RequireRoles("admin", "corretor"), propertyHandler.Update)
			secured.PATCH("/imoveis/:id/destaque", middleware.RequireRoles("admin"), propertyHandler.SetDestaque)
			secured.DELETE("/imoveis/:id", middleware.RequireRoles("admin", "corretor"), propertyHandler.Delete)

			secured.POST("/imoveis/:id/fotos", middleware.RequireRoles("admin", "corretor"), photoHandler.Upload)
			secured.DELETE("/fotos/:id", middleware.RequireRoles("admin", "corretor"), photoHandler.Delete)

			// AGENDAMENTOS
			secured.GET("/agendamentos", visitHandler.List)
			secured.GET("/agendamentos/periodo", visitHandler.ListByPeriod)
			secured.GET("/agendamentos/:id", visitHandler.Get)
			secured.POST("/agendamentos", middleware.RequireRoles("cliente"), visitHandler.Create)
			secured.PUT("/agendamentos/:id", middleware.RequireRoles("admin", "corretor"), visitHandler.Update)
			secured.DELETE("/agendamentos/:id", middleware.RequireRoles("admin"), visitHandler.Delete)

			// TRANSAÇÕES
			secured.GET("/transacoes", transactionHandler.List)
			secured.GET("/transacoes/estatisticas", middleware.RequireRoles("admin", "corretor"), transactionHandler.Stats)
			secured.GET("/transacoes/:id", transactionHandler.Get)
			secured.POST("/transacoes", middleware.RequireRoles("corretor"), transactionHandler.Create)
			secured.PUT("/transacoes/:id", middleware.RequireRoles("admin", "corretor"), transactionHandler.Update)
			secured.DELETE("/transacoes/:id", middleware.RequireRoles("admin"), transactionHandler.Delete)

			// CONTRATOS
			secured.GET("/contratos", contractHandler.List)
			secured.GET("/contratos/:id", contractHandler.Get)
			secured.GET("/contratos/:id/documento", contractHandler.GetDocument)
			secured.POST("/contratos", middleware.RequireRoles("corretor"), contractHandler.Create)
			secured.PUT("/contratos/:id", middleware.RequireRoles("admin", "corretor"), contractHandler.Update)
			secured.DELETE("/contratos/:id", middleware.RequireRoles("admin"), contractHandler.Delete)

			// MÉTRICAS (qualquer usuário autenticado)
			metricas := secured.Group("/metricas")
			{
				metricas.GET("/dashboard", dashboardHandler.Stats)
				metricas.GET("/comissoes", dashboardHandler.Commissions)
				metricas.GET("/conversao", dashboardHandler.Conversion)
				metricas.GET("/vendas", dashboardHandler.Sales)
				metricas.GET("/locacoes", dashboardHandler.Rentals)
				metricas.GET("/imoveis/tipo", dashboardHandler.PropertiesByTipo)
				metricas.GET("/imoveis/status", dashboardHandler.PropertiesByStatus)
				metricas.GET("/visitas/imovel", dashboardHandler.VisitsByProperty)
			}

			// AUDITORIA
			secured.GET("/audit-logs", middleware.RequireRoles("admin"), auditLogsHandler.List)
		}
	}
}
