package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/config"
	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/models"
	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/mykafka"
)

func InitTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect to in-memory db")

	// Una sola conexión: cada conexión nueva a :memory: sería una base vacía.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.InitDB(db), "failed to migrate tables")
	return db
}

func newPedidoHandler(t *testing.T, db *gorm.DB) *PedidoHandler {
	t.Helper()

	entregado, err := config.ResolverEstado(db, models.EstadoEntregado)
	require.NoError(t, err)
	pendiente, err := config.ResolverEstado(db, models.EstadoPendiente)
	require.NoError(t, err)
	metodo, err := config.ResolverMetodoPago(db, "Efectivo")
	require.NoError(t, err)

	return &PedidoHandler{
		DB:                   db,
		Producer:             &mykafka.Producer{},
		EstadoEntregado:      entregado,
		EstadoInicial:        pendiente,
		MetodoPagoPorDefecto: metodo,
	}
}

// newJSONContext arma un contexto echo con cuerpo JSON y params de ruta.
func newJSONContext(t *testing.T, e *echo.Echo, method, target string, body any, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.True(t, len(params)%2 == 0)
	names := make([]string, 0, len(params)/2)
	values := make([]string, 0, len(params)/2)
	for i := 0; i < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func crearProducto(t *testing.T, db *gorm.DB, nombre string, cantidad, minimo int, precio float64) models.Producto {
	t.Helper()
	p := models.Producto{Nombre: nombre, CantidadDisponible: cantidad, StockMinimo: minimo, Precio: precio}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func crearUsuario(t *testing.T, db *gorm.DB, nombre, email string) models.Usuario {
	t.Helper()
	u := models.Usuario{Nombre: nombre, Email: email, Contrasena: "1234", IDRol: 1}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func recargarProducto(t *testing.T, db *gorm.DB, id uint) models.Producto {
	t.Helper()
	var p models.Producto
	require.NoError(t, db.First(&p, id).Error)
	return p
}

func ventasDePedido(t *testing.T, db *gorm.DB, idPedido uint) []models.Venta {
	t.Helper()
	var ventas []models.Venta
	require.NoError(t, db.Where("id_pedido = ?", idPedido).Find(&ventas).Error)
	return ventas
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "unexpected status, body: %s", rec.Body.String())
}
