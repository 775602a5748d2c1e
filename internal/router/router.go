package router

import (
	"time"

	"github.com/TheGeorge88/app-celulares/internal/config"
	"github.com/TheGeorge88/app-celulares/internal/handler"
	"github.com/TheGeorge88/app-celulares/internal/middleware"
	"github.com/TheGeorge88/app-celulares/internal/repository"
	"github.com/TheGeorge88/app-celulares/internal/service"
	"github.com/TheGeorge88/app-celulares/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
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

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	equipoRepo := repository.NewEquipoRepository(db)
	tecnicoRepo := repository.NewTecnicoRepository(db)
	ordenRepo := repository.NewOrdenRepository(db)
	repuestoRepo := repository.NewRepuestoRepository(db)
	detalleRepo := repository.NewDetalleRepository(db)
	movimientoRepo := repository.NewMovimientoStockRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	cache := service.NewRedisConsultaCache(rdb, time.Duration(cfg.ConsultaCacheTTLSeconds)*time.Second)

	authSvc := service.NewAuthService(usuarioRepo, cfg)
	clienteSvc := service.NewClienteService(clienteRepo)
	equipoSvc := service.NewEquipoService(equipoRepo, clienteRepo)
	tecnicoSvc := service.NewTecnicoService(tecnicoRepo)
	ordenSvc := service.NewOrdenService(ordenRepo, clienteRepo, equipoRepo, tecnicoRepo, dispatcher, cache, cfg)
	repuestoSvc := service.NewRepuestoService(repuestoRepo)
	inventarioSvc := service.NewInventarioService(ordenRepo, repuestoRepo, detalleRepo, movimientoRepo)
	consultaSvc := service.NewConsultaService(ordenRepo, cache)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	equiposH := handler.NewEquiposHandler(equipoSvc)
	tecnicosH := handler.NewTecnicosHandler(tecnicoSvc, ordenSvc)
	ordenesH := handler.NewOrdenesHandler(ordenSvc)
	repuestosH := handler.NewRepuestosHandler(repuestoSvc, inventarioSvc)
	detallesH := handler.NewDetallesHandler(inventarioSvc)
	consultaH := handler.NewConsultaHandler(consultaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Public status lookup — no auth, stricter rate limit than the global one
	consulta := r.Group("/v1/consulta", middleware.RateLimiter(60, time.Minute))
	{
		consulta.GET("/historial", consultaH.Historial)
		consulta.POST("/autorizar", consultaH.Autorizar)
		consulta.GET("/:codigo", consultaH.ConsultarEstado)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: recepcionista, tecnico, administrador — declared per-endpoint
		ordenes := v1.Group("/ordenes")
		{
			ordenes.POST("", middleware.RequireRole("recepcionista", "administrador"), ordenesH.Crear)
			ordenes.GET("", middleware.RequireRole("recepcionista", "tecnico", "administrador"), ordenesH.Listar)
			ordenes.GET("/pendientes", middleware.RequireRole("recepcionista", "tecnico", "administrador"), ordenesH.ListarPendientes)
			ordenes.GET("/:id", middleware.RequireRole("recepcionista", "tecnico", "administrador"), ordenesH.ObtenerPorID)
			ordenes.PUT("/:id", middleware.RequireRole("recepcionista", "tecnico", "administrador"), ordenesH.Actualizar)
			ordenes.POST("/:id/diagnostico", middleware.RequireRole("tecnico", "administrador"), ordenesH.RegistrarDiagnostico)
			ordenes.PATCH("/:id/tecnico", middleware.RequireRole("recepcionista", "administrador"), ordenesH.AsignarTecnico)
			ordenes.PATCH("/:id/estado", middleware.RequireRole("recepcionista", "tecnico", "administrador"), ordenesH.CambiarEstado)
			ordenes.DELETE("/:id", middleware.RequireRole("administrador"), ordenesH.Eliminar)
			ordenes.GET("/:id/detalles", middleware.RequireRole("recepcionista", "tecnico", "administrador"), detallesH.ListarPorOrden)
		}

		// Order line items — attaching parts reserves stock
		v1.POST("/detalles", middleware.RequireRole("tecnico", "administrador"), detallesH.Agregar)
		v1.DELETE("/detalles/:id", middleware.RequireRole("tecnico", "administrador"), detallesH.Quitar)

		// Spare parts catalog — reads open to all staff, writes admin-only
		v1.GET("/repuestos", middleware.RequireRole("recepcionista", "tecnico", "administrador"), repuestosH.Listar)
		v1.GET("/repuestos/disponibles", middleware.RequireRole("recepcionista", "tecnico", "administrador"), repuestosH.ListarDisponibles)
		v1.GET("/repuestos/stock-bajo", middleware.RequireRole("recepcionista", "tecnico", "administrador"), repuestosH.ListarStockBajo)
		v1.GET("/repuestos/buscar", middleware.RequireRole("recepcionista", "tecnico", "administrador"), repuestosH.Buscar)
		v1.GET("/repuestos/movimientos", middleware.RequireRole("tecnico", "administrador"), repuestosH.ListarMovimientos)
		v1.GET("/repuestos/:id", middleware.RequireRole("recepcionista", "tecnico", "administrador"), repuestosH.ObtenerPorID)
		v1.PATCH("/repuestos/:id/stock", middleware.RequireRole("tecnico", "administrador"), repuestosH.AjustarStock)
		repuestos := v1.Group("/repuestos", middleware.RequireRole("administrador"))
		{
			repuestos.POST("", repuestosH.Crear)
			repuestos.PUT("/:id", repuestosH.Actualizar)
			repuestos.DELETE("/:id", repuestosH.Eliminar)
		}

		clientes := v1.Group("/clientes", middleware.RequireRole("recepcionista", "administrador"))
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.ObtenerPorID)
			clientes.PUT("/:id", clientesH.Actualizar)
			clientes.DELETE("/:id", clientesH.Eliminar)
		}

		equipos := v1.Group("/equipos", middleware.RequireRole("recepcionista", "administrador"))
		{
			equipos.POST("", equiposH.Crear)
			equipos.GET("", equiposH.Listar)
			equipos.GET("/:id", equiposH.ObtenerPorID)
			equipos.PUT("/:id", equiposH.Actualizar)
			equipos.DELETE("/:id", equiposH.Eliminar)
		}

		v1.GET("/tecnicos", middleware.RequireRole("recepcionista", "tecnico", "administrador"), tecnicosH.Listar)
		v1.GET("/tecnicos/:id", middleware.RequireRole("recepcionista", "tecnico", "administrador"), tecnicosH.ObtenerPorID)
		v1.GET("/tecnicos/:id/ordenes", middleware.RequireRole("recepcionista", "tecnico", "administrador"), tecnicosH.ListarOrdenes)
		tecnicos := v1.Group("/tecnicos", middleware.RequireRole("administrador"))
		{
			tecnicos.POST("", tecnicosH.Crear)
			tecnicos.PUT("/:id", tecnicosH.Actualizar)
			tecnicos.DELETE("/:id", tecnicosH.Desactivar)
			tecnicos.PATCH("/:id/reactivar", tecnicosH.Reactivar)
		}

		usuarios := v1.Group("/usuarios", middleware.RequireRole("administrador"))
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

	return r
}
