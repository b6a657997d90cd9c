package router

import (
	"time"

	"github.com/SpiderLabsSRL/HokkoriBackend/internal/config"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/handler"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/middleware"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/model"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/repository"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/service"
	"github.com/SpiderLabsSRL/HokkoriBackend/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
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
	cajaRepo := repository.NewCajaRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	cuponRepo := repository.NewCuponRepository(db)
	empleadoRepo := repository.NewEmpleadoRepository(db)
	productoRepo := repository.NewProductoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(empleadoRepo, cfg.JWTSecret, cfg.JWTExpirationHours, log.Logger)
	cajaSvc := service.NewCajaService(cajaRepo, cfg.Timezone, log.Logger)
	pedidoSvc := service.NewPedidoService(pedidoRepo, productoRepo, cuponRepo, cfg.Timezone, log.Logger)
	ventaSvc := service.NewVentaService(ventaRepo, pedidoRepo, cuponRepo, empleadoRepo, cajaSvc, dispatcher, cfg.Timezone, log.Logger)
	cuponSvc := service.NewCuponService(cuponRepo, log.Logger)
	productoSvc := service.NewProductoService(productoRepo, log.Logger)
	reciboSvc := service.NewReciboService(ventaRepo, cfg.PDFStoragePath, log.Logger)
	reporteSvc := service.NewReporteService(ventaRepo, cajaRepo, cfg.Timezone, log.Logger)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	pedidosH := handler.NewPedidoHandler(pedidoSvc, ventaSvc)
	ventasH := handler.NewVentaHandler(ventaSvc, reciboSvc)
	cuponesH := handler.NewCuponHandler(cuponSvc)
	productosH := handler.NewProductoHandler(productoSvc)
	reportesH := handler.NewReporteHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.POST("/api/auth/login", middleware.LoginRateLimiter(), authH.Login)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	todos := middleware.RequireRole(model.RolAdministrador, model.RolAyudante)
	admin := middleware.RequireRole(model.RolAdministrador)

	api := r.Group("/api", jwtMW)
	{
		api.GET("/auth/verify", todos, authH.Verify)

		caja := api.Group("/caja", todos)
		{
			caja.GET("/estado", cajaH.Estado)
			caja.GET("/actual", cajaH.Actual)
			caja.GET("/saldo", cajaH.Saldo)
			caja.GET("/monto-sugerido", cajaH.MontoSugerido)
			caja.POST("/apertura", cajaH.Abrir)
			caja.POST("/cierre", cajaH.Cerrar)
		}

		movs := api.Group("/movimientos", todos)
		{
			movs.POST("/registrar", cajaH.RegistrarMovimiento)
			movs.GET("", cajaH.Movimientos)
			movs.GET("/historial", cajaH.Historial)
			movs.GET("/totales", cajaH.Totales)
		}

		pedidos := api.Group("/pedidos", todos)
		{
			pedidos.GET("", pedidosH.Listar)
			pedidos.GET("/:id", pedidosH.Detalle)
			pedidos.POST("", pedidosH.Crear)
			pedidos.PUT("/:id", pedidosH.Editar)
			pedidos.DELETE("/:id", pedidosH.Anular)
			pedidos.POST("/:id/pagar", pedidosH.Pagar)
			pedidos.PATCH("/:id/entregar", pedidosH.Entregar)
		}

		ventas := api.Group("/ventas", todos)
		{
			ventas.GET("", ventasH.Listar)
			ventas.GET("/totales", ventasH.Totales)
			ventas.GET("/:id", ventasH.Detalle)
			ventas.GET("/:id/recibo", ventasH.Recibo)
		}

		// Catalog reads are open to both roles; writes are admin only
		api.GET("/productos", todos, productosH.Listar)
		api.GET("/productos/:id", todos, productosH.Detalle)
		productos := api.Group("/productos", admin)
		{
			productos.POST("", productosH.Crear)
			productos.PUT("/:id", productosH.Actualizar)
			productos.PATCH("/:id/estado", productosH.CambiarEstado)
			productos.DELETE("/:id", productosH.Eliminar)
		}

		api.GET("/categorias", todos, productosH.ListarCategorias)
		categorias := api.Group("/categorias", admin)
		{
			categorias.POST("", productosH.CrearCategoria)
			categorias.PUT("/:id", productosH.ActualizarCategoria)
			categorias.PATCH("/:id/estado", productosH.CambiarEstadoCategoria)
			categorias.DELETE("/:id", productosH.EliminarCategoria)
		}

		api.GET("/cupones", todos, cuponesH.Listar)
		api.GET("/cupones/validar/:nombre", todos, cuponesH.Validar)
		api.GET("/cupones/:id", todos, cuponesH.Detalle)
		cupones := api.Group("/cupones", admin)
		{
			cupones.POST("", cuponesH.Crear)
			cupones.PUT("/:id", cuponesH.Actualizar)
			cupones.PATCH("/:id/estado", cuponesH.CambiarEstado)
			cupones.DELETE("/:id", cuponesH.Eliminar)
		}

		empleados := api.Group("/empleados", admin)
		{
			empleados.GET("", authH.ListarEmpleados)
			empleados.GET("/:id", authH.DetalleEmpleado)
			empleados.POST("", authH.CrearEmpleado)
			empleados.PUT("/:id", authH.ActualizarEmpleado)
			empleados.PATCH("/:id/estado", authH.CambiarEstadoEmpleado)
			empleados.DELETE("/:id", authH.EliminarEmpleado)
		}

		reportes := api.Group("/reportes", admin)
		{
			reportes.GET("/resumen", reportesH.ResumenDelDia)
			reportes.GET("/ventas", reportesH.VentasPorRango)
			reportes.GET("/top-productos", reportesH.TopProductos)
		}
	}

	return r
}
