package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/models"
)

type DashboardHandler struct {
	DB *gorm.DB
}

// filaDashboard es una línea de pedido anotada con el estado del pedido y
// la situación de stock del producto.
type filaDashboard struct {
	IDPedido           uint   `json:"id_pedido"`
	Producto           string `json:"producto"`
	EstadoPedido       string `json:"estado_pedido"`
	CantidadDisponible int    `json:"cantidad_disponible"`
	EstadoStock        string `json:"estado_stock"`
}

// estadoStockDashboard usa los umbrales históricos del tablero, distintos
// de la clasificación por stock_minimo del listado de stock.
func estadoStockDashboard(cantidad int) string {
	switch {
	case cantidad > 10:
		return "OK"
	case cantidad >= 1:
		return "Falta stock"
	case cantidad == 0:
		return "Sin stock"
	default:
		return "Desconocido"
	}
}

func (h *DashboardHandler) filas(soloEstado string) ([]filaDashboard, error) {
	q := h.DB.Table("pedidos").
		Select("pedidos.id_pedido, stock.nombre AS producto, estados.nombre_estado AS estado_pedido, stock.cantidad_disponible").
		Joins("INNER JOIN pedido_productos ON pedidos.id_pedido = pedido_productos.id_pedido").
		Joins("INNER JOIN stock ON pedido_productos.id_producto = stock.id_producto").
		Joins("INNER JOIN estados ON pedidos.id_estado = estados.id_estado").
		Order("pedidos.id_pedido")
	if soloEstado != "" {
		q = q.Where("estados.nombre_estado = ?", soloEstado)
	}

	var filas []filaDashboard
	if err := q.Scan(&filas).Error; err != nil {
		return nil, err
	}
	for i := range filas {
		filas[i].EstadoStock = estadoStockDashboard(filas[i].CantidadDisponible)
	}
	return filas, nil
}

func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	filas, err := h.filas("")
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "Error al obtener los pedidos", err)
	}
	return c.JSON(http.StatusOK, filas)
}

func (h *DashboardHandler) GetPendientes(c echo.Context) error {
	filas, err := h.filas(models.EstadoPendiente)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "Error al obtener los pedidos pendientes", err)
	}
	return c.JSON(http.StatusOK, filas)
}

// GetVentasDiarias suma los montos de las ventas con fecha de pago de hoy.
func (h *DashboardHandler) GetVentasDiarias(c echo.Context) error {
	desde := hoy()
	hasta := desde.Add(24 * time.Hour)

	var total float64
	err := h.DB.Model(&models.Venta{}).
		Where("fecha_pago >= ? AND fecha_pago < ?", desde, hasta).
		Select("COALESCE(SUM(monto), 0)").
		Scan(&total).Error
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "Error al obtener las ventas diarias", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"total_ventas_hoy": total})
}

func (h *DashboardHandler) GetEstados(c echo.Context) error {
	var estados []models.Estado
	if err := h.DB.Order("id_estado ASC").Find(&estados).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, "Error al obtener los estados", err)
	}
	return c.JSON(http.StatusOK, estados)
}
