package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/models"
)

func sembrarPedidoConLinea(t *testing.T, db *gorm.DB, idUsuario, idProducto, idEstado uint, cantidad int) models.Pedido {
	t.Helper()
	pedido := models.Pedido{
		IDUsuario:     idUsuario,
		FechaCreacion: time.Now(),
		Total:         1000,
		IDEstado:      idEstado,
	}
	require.NoError(t, db.Create(&pedido).Error)
	linea := models.PedidoProducto{IDPedido: pedido.ID, IDProducto: idProducto, Cantidad: cantidad}
	require.NoError(t, db.Create(&linea).Error)
	return pedido
}

func TestDashboardAnotaEstadoDeStock(t *testing.T) {
	db := InitTestDB(t)
	h := &DashboardHandler{DB: db}
	e := echo.New()

	usuario := crearUsuario(t, db, "Ana", "ana@test.com")
	holgado := crearProducto(t, db, "Asado", 25, 2, 1200)
	justo := crearProducto(t, db, "Molleja", 4, 2, 2000)
	agotado := crearProducto(t, db, "Chinchulín", 0, 2, 900)

	sembrarPedidoConLinea(t, db, usuario.ID, holgado.ID, 1, 2)
	sembrarPedidoConLinea(t, db, usuario.ID, justo.ID, 2, 1)
	sembrarPedidoConLinea(t, db, usuario.ID, agotado.ID, 1, 3)

	c, rec := newJSONContext(t, e, http.MethodGet, "/api/dashboard", nil)
	require.NoError(t, h.GetDashboard(c))
	assertStatus(t, rec, http.StatusOK)

	var filas []filaDashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &filas))
	require.Len(t, filas, 3)

	porProducto := map[string]string{}
	for _, f := range filas {
		porProducto[f.Producto] = f.EstadoStock
	}
	require.Equal(t, "OK", porProducto["Asado"])
	require.Equal(t, "Falta stock", porProducto["Molleja"])
	require.Equal(t, "Sin stock", porProducto["Chinchulín"])
}

func TestDashboardPendientesFiltraPorEstado(t *testing.T) {
	db := InitTestDB(t)
	h := &DashboardHandler{DB: db}
	e := echo.New()

	usuario := crearUsuario(t, db, "Ana", "ana@test.com")
	producto := crearProducto(t, db, "Asado", 25, 2, 1200)

	pendiente := sembrarPedidoConLinea(t, db, usuario.ID, producto.ID, 1, 2)
	sembrarPedidoConLinea(t, db, usuario.ID, producto.ID, 4, 1)

	c, rec := newJSONContext(t, e, http.MethodGet, "/api/dashboard/pendientes", nil)
	require.NoError(t, h.GetPendientes(c))
	assertStatus(t, rec, http.StatusOK)

	var filas []filaDashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &filas))
	require.Len(t, filas, 1)
	require.Equal(t, pendiente.ID, filas[0].IDPedido)
	require.Equal(t, models.EstadoPendiente, filas[0].EstadoPedido)
}

func TestVentasDiariasSumaSoloHoy(t *testing.T) {
	db := InitTestDB(t)
	h := &DashboardHandler{DB: db}
	e := echo.New()

	hoyFecha := hoy()
	ayer := hoyFecha.AddDate(0, 0, -1)

	ventas := []models.Venta{
		{FechaPago: hoyFecha, Monto: 1500, Total: 1500, IDPedido: 1, IDMetodo: 1},
		{FechaPago: hoyFecha, Monto: 500, Total: 500, IDPedido: 2, IDMetodo: 1},
		{FechaPago: ayer, Monto: 9000, Total: 9000, IDPedido: 3, IDMetodo: 1},
	}
	require.NoError(t, db.Create(&ventas).Error)

	c, rec := newJSONContext(t, e, http.MethodGet, "/api/dashboard/ventas-diarias", nil)
	require.NoError(t, h.GetVentasDiarias(c))
	assertStatus(t, rec, http.StatusOK)

	resp := decodeBody(t, rec)
	require.Equal(t, 2000.0, resp["total_ventas_hoy"])
}

func TestVentasDiariasSinVentas(t *testing.T) {
	db := InitTestDB(t)
	h := &DashboardHandler{DB: db}
	e := echo.New()

	c, rec := newJSONContext(t, e, http.MethodGet, "/api/dashboard/ventas-diarias", nil)
	require.NoError(t, h.GetVentasDiarias(c))
	assertStatus(t, rec, http.StatusOK)
	require.Equal(t, 0.0, decodeBody(t, rec)["total_ventas_hoy"])
}

func TestGetEstados(t *testing.T) {
	db := InitTestDB(t)
	h := &DashboardHandler{DB: db}
	e := echo.New()

	c, rec := newJSONContext(t, e, http.MethodGet, "/api/estados", nil)
	require.NoError(t, h.GetEstados(c))
	assertStatus(t, rec, http.StatusOK)

	var estados []models.Estado
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &estados))
	require.Len(t, estados, 4)
	require.Equal(t, models.EstadoPendiente, estados[0].Nombre)
	require.Equal(t, models.EstadoEntregado, estados[3].Nombre)
}
