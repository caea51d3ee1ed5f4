package router

import (
	"time"

	"github.com/Alcm1997/Agroconecta/internal/config"
	"github.com/Alcm1997/Agroconecta/internal/handler"
	"github.com/Alcm1997/Agroconecta/internal/middleware"
	"github.com/Alcm1997/Agroconecta/internal/repository"
	"github.com/Alcm1997/Agroconecta/internal/service"
	"github.com/Alcm1997/Agroconecta/internal/worker"

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
	r.Use(middleware.CORS(cfg.TiendaURL))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	productoRepo := repository.NewProductoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	carritoRepo := repository.NewCarritoRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	comprobanteRepo := repository.NewComprobanteRepository(db)
	catalogoRepo := repository.NewCatalogoRepository(db)
	reporteRepo := repository.NewReporteRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	precioSvc := service.NewPrecioService(productoRepo)
	inventarioSvc := service.NewInventarioService(productoRepo)
	productoSvc := service.NewProductoService(productoRepo, rdb)
	clienteSvc := service.NewClienteService(clienteRepo, cfg)
	carritoSvc := service.NewCarritoService(carritoRepo, productoRepo)
	catalogoSvc := service.NewCatalogoService(catalogoRepo)
	reporteSvc := service.NewReporteService(reporteRepo)
	pedidoSvc := service.NewPedidoService(pedidoRepo, comprobanteRepo, clienteRepo, inventarioSvc, precioSvc, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productosH := handler.NewProductosHandler(productoSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	carritoH := handler.NewCarritoHandler(carritoSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	v1pub := r.Group("/v1")
	{
		v1pub.POST("/clientes/registro", clientesH.Registrar)
		v1pub.POST("/clientes/login", middleware.LoginRateLimiter(), clientesH.Login)

		// Storefront catalog browse needs no session
		v1pub.GET("/productos", productosH.Listar)
		v1pub.GET("/productos/:id", productosH.Obtener)
		v1pub.GET("/opciones", productosH.ListarOpciones)
		v1pub.GET("/categorias", catalogoH.ListarCategorias)
		v1pub.GET("/unidades", catalogoH.ListarUnidades)
		v1pub.GET("/tipos-pago", catalogoH.ListarTiposPago)
	}

	// Protected routes: storefront session
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/clientes/perfil", clientesH.Perfil)
		v1.PUT("/clientes/perfil", clientesH.ActualizarPerfil)
		v1.DELETE("/clientes/perfil", clientesH.DarDeBaja)

		v1.GET("/carrito", carritoH.Listar)
		v1.POST("/carrito", carritoH.Agregar)
		v1.POST("/carrito/sincronizar", carritoH.Sincronizar)
		v1.PUT("/carrito/:id", carritoH.ActualizarCantidad)
		v1.DELETE("/carrito/:id", carritoH.Eliminar)
		v1.DELETE("/carrito", carritoH.Vaciar)

		v1.POST("/pedidos", pedidosH.CrearPedido)
		v1.GET("/pedidos", pedidosH.ListarMisPedidos)
		v1.GET("/pedidos/:id", pedidosH.ObtenerMiPedido)
		v1.GET("/pedidos/:id/comprobante", pedidosH.ObtenerMiComprobante)
		v1.DELETE("/pedidos/:id", pedidosH.CancelarMiPedido)
		v1.GET("/comprobantes/:id/pdf", pedidosH.DescargarComprobante)

		// Management panel, admin role
		admin := v1.Group("/admin", middleware.RequireAdmin())
		{
			admin.GET("/dashboard", reportesH.Dashboard)

			admin.GET("/pedidos", pedidosH.ListarPedidosAdmin)
			admin.GET("/pedidos/:id", pedidosH.ObtenerPedidoAdmin)
			admin.PUT("/pedidos/:id/estado", pedidosH.ActualizarEstado)

			admin.POST("/productos", productosH.Crear)
			admin.PUT("/productos/:id", productosH.Actualizar)
			admin.DELETE("/productos/:id", productosH.Eliminar)

			admin.GET("/clientes", clientesH.ListarAdmin)
			admin.DELETE("/clientes/:id", clientesH.DesactivarAdmin)

			admin.POST("/categorias", catalogoH.CrearCategoria)
			admin.POST("/unidades", catalogoH.CrearUnidad)
		}
	}

	// Swagger UI, only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
