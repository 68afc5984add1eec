package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/comprobante"
	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/models"
)

func newComprobanteHandler(db *gorm.DB) *ComprobanteHandler {
	return &ComprobanteHandler{DB: db, Renderer: comprobante.NewRenderer(comprobante.EstiloPorDefecto())}
}

func TestComprobanteNoEncontrado(t *testing.T) {
	db := InitTestDB(t)
	h := newComprobanteHandler(db)
	e := echo.New()

	c, rec := newJSONContext(t, e, http.MethodGet, "/api/comprobante/999", nil, "id", "999")
	require.NoError(t, h.GetComprobante(c))
	assertStatus(t, rec, http.StatusNotFound)
	require.JSONEq(t, `{"error":"Comprobante no encontrado"}`, rec.Body.String())
}

func TestComprobanteGeneraPDFAdjunto(t *testing.T) {
	db := InitTestDB(t)
	h := newComprobanteHandler(db)
	e := echo.New()

	usuario := crearUsuario(t, db, "Ana", "ana@test.com")
	producto := crearProducto(t, db, "Asado", 10, 2, 1200)

	pedido := models.Pedido{
		IDUsuario:     usuario.ID,
		FechaCreacion: time.Now(),
		Total:         2400,
		IDEstado:      1,
	}
	require.NoError(t, db.Create(&pedido).Error)
	linea := models.PedidoProducto{IDPedido: pedido.ID, IDProducto: producto.ID, Cantidad: 2}
	require.NoError(t, db.Create(&linea).Error)

	c, rec := newJSONContext(t, e, http.MethodGet, "/api/comprobante/1", nil, "id", uitoa(pedido.ID))
	require.NoError(t, h.GetComprobante(c))
	assertStatus(t, rec, http.StatusOK)

	require.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	disposition := rec.Header().Get(echo.HeaderContentDisposition)
	require.Contains(t, disposition, "attachment")
	require.Contains(t, disposition, "comprobante_")
	require.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"), "body should be a PDF document")
	require.Greater(t, rec.Body.Len(), 500)
}
