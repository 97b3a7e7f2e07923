// Package router is the composition root: it builds every repository,
// service and handler and mounts the route tree with its middleware chain.
package router

import (
	"time"

	"github.com/MateoRicci/gestion-cec-sub000/internal/config"
	"github.com/MateoRicci/gestion-cec-sub000/internal/events"
	"github.com/MateoRicci/gestion-cec-sub000/internal/handler"
	"github.com/MateoRicci/gestion-cec-sub000/internal/infra"
	"github.com/MateoRicci/gestion-cec-sub000/internal/middleware"
	"github.com/MateoRicci/gestion-cec-sub000/internal/repository"
	"github.com/MateoRicci/gestion-cec-sub000/internal/service"
	"github.com/MateoRicci/gestion-cec-sub000/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

const (
	rolCajero        = "cajero"
	rolSupervisor    = "supervisor"
	rolAdministrador = "administrador"
)

// New wires the full application and returns the Gin engine ready to serve.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, bus *events.Bus, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// ── Repositorios ──────────────────────────────────────────────────────────
	afiliadoRepo := repository.NewAfiliadoRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	catalogoRepo := repository.NewCatalogoRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)
	comprobanteRepo := repository.NewComprobanteRepository(db)

	// ── Servicios ─────────────────────────────────────────────────────────────
	locker := infra.NewLocker(rdb)
	precioSvc := service.NewPrecioService(productoRepo)
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	afiliadoSvc := service.NewAfiliadoService(afiliadoRepo, catalogoRepo, precioSvc)
	productoSvc := service.NewProductoService(productoRepo)
	catalogoSvc := service.NewCatalogoService(catalogoRepo)
	cajaSvc := service.NewCajaService(cajaRepo, ventaRepo, bus, locker, cfg)
	ventaSvc := service.NewVentaService(ventaRepo, cajaRepo, catalogoRepo, productoRepo, afiliadoRepo, cajaSvc, precioSvc, bus, dispatcher)
	reporteSvc := service.NewReporteService(ventaRepo)
	comprobanteSvc := service.NewComprobanteService(comprobanteRepo, dispatcher)
	estadoCache := service.NewEstadoCache(bus, rdb, cajaRepo)

	// ── Handlers ──────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuarioH := handler.NewUsuarioHandler(authSvc)
	afiliadoH := handler.NewAfiliadoHandler(afiliadoSvc)
	productoH := handler.NewProductoHandler(productoSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	cajaH := handler.NewCajaHandler(cajaSvc, estadoCache)
	ventaH := handler.NewVentaHandler(ventaSvc)
	reporteH := handler.NewReporteHandler(reporteSvc)
	comprobanteH := handler.NewComprobanteHandler(comprobanteSvc)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(),
		middleware.ErrorHandler(),
		middleware.RateLimiter(1000, time.Minute),
	)

	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		// Venta screen: any authenticated role.
		v1.GET("/afiliados/buscar-por-documento/:documento", afiliadoH.BuscarPorDocumento)
		v1.GET("/productos", productoH.Listar)
		v1.GET("/productos/:id/precios", productoH.Precios)
		v1.GET("/listas-precios", productoH.ListasPrecios)
		v1.GET("/convenios", catalogoH.ListarConvenios)
		v1.GET("/puntos-venta", catalogoH.ListarPuntosVenta)
		v1.GET("/medios-pago", catalogoH.ListarMediosPago)

		v1.POST("/ventas", ventaH.Registrar)
		v1.GET("/ventas/:id", ventaH.Obtener)
		v1.GET("/ventas/sesion/:sesionId", ventaH.ListarPorSesion)

		v1.POST("/caja/abrir", cajaH.Abrir)
		v1.POST("/caja/ingreso", cajaH.Ingreso)
		v1.POST("/caja/egreso", cajaH.Egreso)
		v1.POST("/caja/:id/cerrar", cajaH.Cerrar)
		v1.GET("/caja/estado/:puntoVentaId", cajaH.Estado)
		v1.GET("/caja/:id/movimientos", cajaH.Movimientos)

		v1.GET("/comprobantes/venta/:ventaId", comprobanteH.ObtenerPorVenta)
		v1.GET("/comprobantes/pdf/:id", comprobanteH.DescargarPDF)

		// Supervisor y administrador.
		sup := v1.Group("", middleware.RequireRole(rolSupervisor, rolAdministrador))
		{
			sup.DELETE("/ventas/:id", ventaH.Cancelar)
			sup.GET("/caja/historial", cajaH.Historial)
			sup.GET("/reportes/ingresos-por-convenio", reporteH.IngresosPorConvenio)
			sup.GET("/reportes/ingresos-por-convenio/xlsx", reporteH.ExportarIngresos)
			sup.POST("/comprobantes/:id/reintentar", comprobanteH.Reintentar)

			sup.POST("/afiliados", afiliadoH.Crear)
			sup.GET("/afiliados", afiliadoH.Listar)
			sup.PUT("/afiliados/:id", afiliadoH.Actualizar)
			sup.POST("/afiliados/:id/familiares", afiliadoH.AgregarFamiliar)
			sup.DELETE("/afiliados/familiares/:familiarId", afiliadoH.QuitarFamiliar)
		}

		// Solo administrador.
		admin := v1.Group("", middleware.RequireRole(rolAdministrador))
		{
			admin.POST("/productos", productoH.Crear)
			admin.PUT("/productos/:id", productoH.Actualizar)
			admin.PUT("/productos/:id/precios", productoH.ActualizarPrecio)
			admin.POST("/convenios", catalogoH.CrearConvenio)

			admin.POST("/usuarios", usuarioH.Crear)
			admin.GET("/usuarios", usuarioH.Listar)
			admin.PUT("/usuarios/:id", usuarioH.Actualizar)
			admin.DELETE("/usuarios/:id", usuarioH.Desactivar)
		}
	}

	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
