package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/handlers"
)

type Deps struct {
	DB                 *gorm.DB
	AuthHandler        *handlers.AuthHandler
	StockHandler       *handlers.StockHandler
	PedidoHandler      *handlers.PedidoHandler
	DashboardHandler   *handlers.DashboardHandler
	ComprobanteHandler *handlers.ComprobanteHandler
	SearchHandler      *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)

	api.GET("/stock", d.StockHandler.GetStock)
	api.POST("/stock", d.StockHandler.CreateProducto)
	api.PUT("/stock/:id", d.StockHandler.UpdateProducto)
	api.DELETE("/stock/:id", d.StockHandler.DeleteProducto)
	api.GET("/stock/buscar", d.SearchHandler.BuscarProductos)

	api.GET("/pedidos", d.PedidoHandler.GetPedidos)
	api.POST("/pedidos", d.PedidoHandler.CreatePedido)
	api.PUT("/pedidos/:id", d.PedidoHandler.UpdatePedido)
	api.DELETE("/pedidos/:id", d.PedidoHandler.DeletePedido)

	api.GET("/dashboard", d.DashboardHandler.GetDashboard)
	api.GET("/dashboard/pendientes", d.DashboardHandler.GetPendientes)
	api.GET("/dashboard/ventas-diarias", d.DashboardHandler.GetVentasDiarias)
	api.GET("/estados", d.DashboardHandler.GetEstados)

	api.GET("/comprobante/:id", d.ComprobanteHandler.GetComprobante)
}
