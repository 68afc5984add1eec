package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/comprobante"
	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/models"
)

type ComprobanteHandler struct {
	DB       *gorm.DB
	Renderer *comprobante.Renderer
}

// GetComprobante genera el PDF del pedido y lo transmite como adjunto.
func (h *ComprobanteHandler) GetComprobante(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "Id inválido", err)
	}

	var pedido models.Pedido
	err = h.DB.
		Preload("Usuario").
		Preload("Productos.Producto").
		First(&pedido, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorResponse(c, http.StatusNotFound, "Comprobante no encontrado", nil)
	}
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "Error al generar el comprobante", err)
	}

	datos := &comprobante.Datos{
		IDPedido: pedido.ID,
		Fecha:    pedido.FechaCreacion,
		Total:    pedido.Total,
	}
	if pedido.Usuario != nil {
		datos.Cliente = pedido.Usuario.Nombre
	}

	lineas := make([]models.PedidoProducto, len(pedido.Productos))
	copy(lineas, pedido.Productos)
	sort.Slice(lineas, func(i, j int) bool { return lineas[i].ID < lineas[j].ID })
	for _, linea := range lineas {
		nombre := fmt.Sprintf("producto %d", linea.IDProducto)
		if linea.Producto != nil {
			nombre = linea.Producto.Nombre
		}
		datos.Productos = append(datos.Productos, fmt.Sprintf("%dkg x %s", linea.Cantidad, nombre))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=comprobante_%d.pdf", pedido.ID))
	c.Response().Header().Set(echo.HeaderContentType, "application/pdf")
	c.Response().WriteHeader(http.StatusOK)

	if err := h.Renderer.Render(c.Response(), datos); err != nil {
		return fmt.Errorf("render del comprobante: %w", err)
	}
	return nil
}
