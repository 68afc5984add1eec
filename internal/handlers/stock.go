package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/models"
	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/mykafka"
)

type StockHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

// productoConEstado agrega el estado derivado al producto en la respuesta.
type productoConEstado struct {
	models.Producto
	Estado string `json:"estado"`
}

func (h *StockHandler) GetStock(c echo.Context) error {
	var productos []models.Producto
	if err := h.DB.Order("id_producto ASC").Find(&productos).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, "Error al obtener el stock", err)
	}

	data := make([]productoConEstado, len(productos))
	for i, p := range productos {
		data[i] = productoConEstado{Producto: p, Estado: p.EstadoStock()}
	}
	return c.JSON(http.StatusOK, data)
}

func (h *StockHandler) CreateProducto(c echo.Context) error {
	// Punteros para distinguir "campo ausente" de cero.
	var req struct {
		Nombre             string   `json:"nombre"`
		CantidadDisponible *int     `json:"cantidad_disponible"`
		StockMinimo        *int     `json:"stock_minimo"`
		Precio             *float64 `json:"precio"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Cuerpo de la petición inválido", err)
	}
	if req.Nombre == "" || req.CantidadDisponible == nil || req.StockMinimo == nil || req.Precio == nil {
		return errorResponse(c, http.StatusBadRequest, "Faltan campos obligatorios", nil)
	}

	producto := models.Producto{
		Nombre:             req.Nombre,
		CantidadDisponible: *req.CantidadDisponible,
		StockMinimo:        *req.StockMinimo,
		Precio:             *req.Precio,
	}
	if err := h.DB.Create(&producto).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, "Error al agregar producto", err)
	}

	publish(c, h.Producer, mykafka.TopicStock, fmt.Sprint(producto.ID), map[string]any{
		"type":        "producto_creado",
		"id_producto": producto.ID,
		"nombre":      producto.Nombre,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Producto agregado correctamente"})
}

// UpdateProducto sobreescribe los cuatro campos del producto. A diferencia
// del comportamiento histórico, un id inexistente responde 404 en lugar de
// aceptar la escritura en silencio.
func (h *StockHandler) UpdateProducto(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "Id inválido", err)
	}

	var req struct {
		Nombre             string  `json:"nombre"`
		CantidadDisponible int     `json:"cantidad_disponible"`
		StockMinimo        int     `json:"stock_minimo"`
		Precio             float64 `json:"precio"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Cuerpo de la petición inválido", err)
	}

	var producto models.Producto
	if err := h.DB.First(&producto, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, "Producto no encontrado", nil)
		}
		return errorResponse(c, http.StatusInternalServerError, "Error al actualizar producto", err)
	}

	producto.Nombre = req.Nombre
	producto.CantidadDisponible = req.CantidadDisponible
	producto.StockMinimo = req.StockMinimo
	producto.Precio = req.Precio

	if err := h.DB.Save(&producto).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, "Error al actualizar producto", err)
	}

	publish(c, h.Producer, mykafka.TopicStock, fmt.Sprint(producto.ID), map[string]any{
		"type":        "producto_actualizado",
		"id_producto": producto.ID,
		"nombre":      producto.Nombre,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Producto actualizado correctamente"})
}

func (h *StockHandler) DeleteProducto(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "Id inválido", err)
	}

	if err := h.DB.Delete(&models.Producto{}, id).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, "Error al eliminar producto", err)
	}

	publish(c, h.Producer, mykafka.TopicStock, fmt.Sprint(id), map[string]any{
		"type":        "producto_eliminado",
		"id_producto": id,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Producto eliminado correctamente"})
}
