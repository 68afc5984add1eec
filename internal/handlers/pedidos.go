package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/models"
	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/mykafka"
)

type PedidoHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
	// Ids resueltos una vez al arrancar desde las tablas de catálogo.
	EstadoEntregado      uint
	EstadoInicial        uint
	MetodoPagoPorDefecto uint
}

type filaPedido struct {
	IDPedido  uint    `json:"id_pedido"`
	Fecha     string  `json:"fecha"`
	Cliente   string  `json:"cliente"`
	Telefono  string  `json:"telefono"`
	Productos string  `json:"productos"`
	Total     float64 `json:"total"`
	Estado    string  `json:"estado"`
}

const sinTelefono = "Sin teléfono"

func (h *PedidoHandler) GetPedidos(c echo.Context) error {
	var pedidos []models.Pedido
	err := h.DB.
		Preload("Usuario").
		Preload("Estado").
		Preload("Productos.Producto").
		Order("fecha_creacion DESC").
		Find(&pedidos).Error
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "Error al obtener los pedidos", err)
	}

	filas := make([]filaPedido, 0, len(pedidos))
	for _, p := range pedidos {
		fila := filaPedido{
			IDPedido:  p.ID,
			Fecha:     p.FechaCreacion.Format("02/01/2006"),
			Telefono:  sinTelefono,
			Productos: descripcionProductos(p.Productos),
			Total:     p.Total,
		}
		if p.Usuario != nil {
			fila.Cliente = p.Usuario.Nombre
		}
		if p.Estado != nil {
			fila.Estado = p.Estado.Nombre
		}
		switch {
		case p.TelefonoContacto != nil && *p.TelefonoContacto != "":
			fila.Telefono = *p.TelefonoContacto
		case p.Usuario != nil && p.Usuario.Telefono != nil && *p.Usuario.Telefono != "":
			fila.Telefono = *p.Usuario.Telefono
		}
		filas = append(filas, fila)
	}

	return c.JSON(http.StatusOK, filas)
}

// descripcionProductos arma "2kg x Asado, 1kg x Chinchulín" en orden de línea.
func descripcionProductos(lineas []models.PedidoProducto) string {
	ordenadas := make([]models.PedidoProducto, len(lineas))
	copy(ordenadas, lineas)
	sort.Slice(ordenadas, func(i, j int) bool { return ordenadas[i].ID < ordenadas[j].ID })

	partes := make([]string, 0, len(ordenadas))
	for _, l := range ordenadas {
		nombre := fmt.Sprintf("producto %d", l.IDProducto)
		if l.Producto != nil {
			nombre = l.Producto.Nombre
		}
		partes = append(partes, fmt.Sprintf("%dkg x %s", l.Cantidad, nombre))
	}
	return strings.Join(partes, ", ")
}

func (h *PedidoHandler) CreatePedido(c echo.Context) error {
	var req struct {
		IDUsuario uint `json:"id_usuario"`
		Productos []struct {
			IDProducto uint `json:"id_producto"`
			Cantidad   int  `json:"cantidad"`
		} `json:"productos"`
		Total    float64 `json:"total"`
		IDEstado uint    `json:"id_estado"`
		Telefono *string `json:"telefono"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Cuerpo de la petición inválido", err)
	}
	if req.IDUsuario == 0 || len(req.Productos) == 0 || req.Total == 0 {
		return errorResponse(c, http.StatusBadRequest, "Faltan datos obligatorios", nil)
	}

	estado := req.IDEstado
	if estado == 0 {
		estado = h.EstadoInicial
	}

	pedido := models.Pedido{
		IDUsuario:        req.IDUsuario,
		FechaCreacion:    time.Now(),
		Total:            req.Total,
		TelefonoContacto: req.Telefono,
		IDEstado:         estado,
	}

	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&pedido).Error; err != nil {
			return err
		}
		for _, linea := range req.Productos {
			pp := models.PedidoProducto{
				IDPedido:   pedido.ID,
				IDProducto: linea.IDProducto,
				Cantidad:   linea.Cantidad,
			}
			if err := tx.Create(&pp).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return errorResponse(c, http.StatusInternalServerError, "Error al crear el pedido", txErr)
	}

	publish(c, h.Producer, mykafka.TopicPedidos, fmt.Sprint(pedido.ID), map[string]any{
		"type":      "pedido_creado",
		"id_pedido": pedido.ID,
		"total":     pedido.Total,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"mensaje":   "Pedido creado correctamente",
		"id_pedido": pedido.ID,
	})
}

// UpdatePedido aplica un cambio parcial de estado y/o total. El cruce del
// estado Entregado acopla la actualización con el stock y la venta dentro
// de una única transacción:
//
//   - al entrar en Entregado se valida el stock de todas las líneas antes
//     de descontar ninguna, y se registra la venta si todavía no existe;
//   - al salir de Entregado se devuelve el stock de todas las líneas y se
//     elimina la venta.
//
// Cualquier fallo revierte la transacción completa.
func (h *PedidoHandler) UpdatePedido(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "Id inválido", err)
	}

	var req struct {
		IDEstado *uint    `json:"id_estado"`
		Total    *float64 `json:"total"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Cuerpo de la petición inválido", err)
	}

	var stockActualizado, ventaRegistrada, ventaEliminada bool

	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		var pedido models.Pedido
		if err := tx.First(&pedido, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "Pedido no encontrado")
			}
			return err
		}

		estadoAnterior := pedido.IDEstado
		totalPedido := pedido.Total

		cambios := map[string]any{}
		if req.IDEstado != nil {
			cambios["id_estado"] = *req.IDEstado
		}
		if req.Total != nil {
			cambios["total"] = *req.Total
		}
		if len(cambios) > 0 {
			if err := tx.Model(&pedido).Updates(cambios).Error; err != nil {
				return err
			}
		}

		entra := req.IDEstado != nil && *req.IDEstado == h.EstadoEntregado && estadoAnterior != h.EstadoEntregado
		sale := req.IDEstado != nil && *req.IDEstado != h.EstadoEntregado && estadoAnterior == h.EstadoEntregado

		if entra {
			lineas, err := lineasDePedido(tx, pedido.ID)
			if err != nil {
				return err
			}

			// Pasada de validación: ningún descuento se aplica hasta que
			// todas las líneas tengan stock suficiente.
			for _, linea := range lineas {
				var producto models.Producto
				if err := tx.First(&producto, linea.IDProducto).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return echo.NewHTTPError(http.StatusBadRequest,
							fmt.Sprintf("Producto con ID %d no encontrado en stock", linea.IDProducto))
					}
					return err
				}
				if producto.CantidadDisponible < linea.Cantidad {
					return echo.NewHTTPError(http.StatusBadRequest,
						fmt.Sprintf("Stock insuficiente para el producto ID %d. Disponible: %d, Requerido: %d",
							linea.IDProducto, producto.CantidadDisponible, linea.Cantidad))
				}
			}

			for _, linea := range lineas {
				if err := ajustarStock(tx, linea.IDProducto, -linea.Cantidad); err != nil {
					return err
				}
			}
			stockActualizado = true

			var venta models.Venta
			err = tx.Where("id_pedido = ?", pedido.ID).First(&venta).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// La venta toma el total previo a la actualización.
				venta = models.Venta{
					FechaPago: hoy(),
					Monto:     totalPedido,
					Total:     totalPedido,
					IDPedido:  pedido.ID,
					IDMetodo:  h.MetodoPagoPorDefecto,
				}
				if err := tx.Create(&venta).Error; err != nil {
					return err
				}
				ventaRegistrada = true
			} else if err != nil {
				return err
			}
		}

		if sale {
			lineas, err := lineasDePedido(tx, pedido.ID)
			if err != nil {
				return err
			}
			for _, linea := range lineas {
				if err := ajustarStock(tx, linea.IDProducto, linea.Cantidad); err != nil {
					return err
				}
			}
			stockActualizado = true

			if err := tx.Where("id_pedido = ?", pedido.ID).Delete(&models.Venta{}).Error; err != nil {
				return err
			}
			ventaEliminada = true
		}

		return nil
	})

	if txErr != nil {
		var he *echo.HTTPError
		if errors.As(txErr, &he) {
			return errorResponse(c, he.Code, fmt.Sprint(he.Message), nil)
		}
		return errorResponse(c, http.StatusInternalServerError, "Error al actualizar el pedido", txErr)
	}

	publish(c, h.Producer, mykafka.TopicPedidos, fmt.Sprint(id), map[string]any{
		"type":              "pedido_actualizado",
		"id_pedido":         id,
		"stock_actualizado": stockActualizado,
		"venta_registrada":  ventaRegistrada,
		"venta_eliminada":   ventaEliminada,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"mensaje":           "Pedido actualizado correctamente",
		"stock_actualizado": stockActualizado,
		"venta_registrada":  ventaRegistrada,
		"venta_eliminada":   ventaEliminada,
	})
}

// DeletePedido elimina el pedido con sus líneas. Si el pedido está en
// Entregado primero devuelve el stock y borra la venta, todo en una única
// transacción.
func (h *PedidoHandler) DeletePedido(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "Id inválido", err)
	}

	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		var pedido models.Pedido
		if err := tx.First(&pedido, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "Pedido no encontrado")
			}
			return err
		}

		if pedido.IDEstado == h.EstadoEntregado {
			lineas, err := lineasDePedido(tx, pedido.ID)
			if err != nil {
				return err
			}
			for _, linea := range lineas {
				if err := ajustarStock(tx, linea.IDProducto, linea.Cantidad); err != nil {
					return err
				}
			}
			if err := tx.Where("id_pedido = ?", pedido.ID).Delete(&models.Venta{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("id_pedido = ?", pedido.ID).Delete(&models.PedidoProducto{}).Error; err != nil {
			return err
		}
		return tx.Delete(&pedido).Error
	})

	if txErr != nil {
		var he *echo.HTTPError
		if errors.As(txErr, &he) {
			return errorResponse(c, he.Code, fmt.Sprint(he.Message), nil)
		}
		return errorResponse(c, http.StatusInternalServerError, "Error al eliminar el pedido", txErr)
	}

	publish(c, h.Producer, mykafka.TopicPedidos, fmt.Sprint(id), map[string]any{
		"type":      "pedido_eliminado",
		"id_pedido": id,
	})

	return c.JSON(http.StatusOK, echo.Map{"mensaje": "Pedido eliminado correctamente"})
}

func lineasDePedido(tx *gorm.DB, idPedido uint) ([]models.PedidoProducto, error) {
	var lineas []models.PedidoProducto
	if err := tx.Where("id_pedido = ?", idPedido).Find(&lineas).Error; err != nil {
		return nil, err
	}
	return lineas, nil
}

// ajustarStock suma delta (negativo para descontar) a cantidad_disponible.
func ajustarStock(tx *gorm.DB, idProducto uint, delta int) error {
	return tx.Model(&models.Producto{}).
		Where("id_producto = ?", idProducto).
		UpdateColumn("cantidad_disponible", gorm.Expr("cantidad_disponible + ?", delta)).Error
}

// hoy devuelve la fecha actual truncada a medianoche local.
func hoy() time.Time {
	ahora := time.Now()
	return time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, ahora.Location())
}
