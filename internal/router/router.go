package router

import (
	"time"

	"updatepos/internal/config"
	"updatepos/internal/handler"
	"updatepos/internal/infra"
	"updatepos/internal/middleware"
	"updatepos/internal/repository"
	"updatepos/internal/service"
	"updatepos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps holds the long-lived pieces main builds once and hands to the worker
// pool after routing is wired.
type Deps struct {
	Engine   *gin.Engine
	Handlers worker.Handlers
}

// New wires all dependencies and returns the configured Gin engine plus the
// worker handlers. Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *Deps {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	mailer := infra.NewMailer(cfg)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	computadoraRepo := repository.NewComputadoraRepository(db)
	celularRepo := repository.NewCelularRepository(db)
	otroRepo := repository.NewOtroRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	cuentaRepo := repository.NewCuentaCorrienteRepository(db)
	movimientoStockRepo := repository.NewMovimientoStockRepository(db)
	auditoriaRepo := repository.NewAuditoriaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	stockSvc := service.NewStockService(computadoraRepo, celularRepo, otroRepo, movimientoStockRepo, rdb)
	catalogoSvc := service.NewCatalogoService(computadoraRepo, celularRepo, otroRepo, movimientoStockRepo, stockSvc)
	clienteSvc := service.NewClienteService(clienteRepo)
	cuentaSvc := service.NewCuentaCorrienteService(cuentaRepo, clienteRepo)
	reporteSvc := service.NewReporteService(ventaRepo)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	ventaSvc := service.NewVentaService(ventaRepo, stockSvc, cuentaSvc, computadoraRepo, celularRepo, otroRepo, clienteRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc, stockSvc)
	clientesH := handler.NewClientesHandler(clienteSvc, cuentaSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Ventas — any seller can register and consult
		v1.POST("/ventas", middleware.RequireRole("vendedor", "admin"), ventasH.RegistrarVenta)
		v1.GET("/ventas", middleware.RequireRole("vendedor", "admin"), ventasH.ListarVentas)
		v1.GET("/ventas/:id", middleware.RequireRole("vendedor", "admin"), ventasH.ObtenerVenta)

		// Catálogo — reads for everyone, altas for admin
		v1.GET("/computadoras", middleware.RequireRole("vendedor", "admin"), catalogoH.ListarComputadoras)
		v1.GET("/computadoras/:id", middleware.RequireRole("vendedor", "admin"), catalogoH.ObtenerComputadora)
		v1.POST("/computadoras", middleware.RequireRole("admin"), catalogoH.CrearComputadora)

		v1.GET("/celulares", middleware.RequireRole("vendedor", "admin"), catalogoH.ListarCelulares)
		v1.GET("/celulares/:id", middleware.RequireRole("vendedor", "admin"), catalogoH.ObtenerCelular)
		v1.POST("/celulares", middleware.RequireRole("admin"), catalogoH.CrearCelular)

		v1.GET("/otros", middleware.RequireRole("vendedor", "admin"), catalogoH.ListarOtros)
		v1.GET("/otros/:id", middleware.RequireRole("vendedor", "admin"), catalogoH.ObtenerOtro)
		v1.POST("/otros", middleware.RequireRole("admin"), catalogoH.CrearOtro)
		v1.POST("/otros/:id/stock", middleware.RequireRole("admin"), catalogoH.AjustarStockOtro)

		v1.GET("/stock/movimientos", middleware.RequireRole("admin"), catalogoH.ListarMovimientos)

		// Clientes y cuenta corriente
		clientes := v1.Group("/clientes", middleware.RequireRole("vendedor", "admin"))
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.Obtener)
			clientes.PUT("/:id", clientesH.Actualizar)
			clientes.GET("/:id/cuenta", clientesH.Saldo)
		}

		// Reportes
		v1.GET("/reportes/resumen-diario", middleware.RequireRole("admin"), reportesH.ResumenDiario)

		// Usuarios — admin only
		usuarios := v1.Group("/usuarios", middleware.RequireRole("admin"))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Async job handlers, started by main after routing is wired
	handlers := worker.Handlers{
		Recibo:    worker.NewReciboWorker(ventaRepo, clienteRepo, mailer, cfg.PDFStoragePath),
		Auditoria: worker.NewAuditoriaWorker(auditoriaRepo),
	}

	return &Deps{Engine: r, Handlers: handlers}
}
