package comprobante

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRenderGeneraPDF(t *testing.T) {
	r := NewRenderer(EstiloPorDefecto())

	datos := &Datos{
		IDPedido:  42,
		Cliente:   "Ana García",
		Fecha:     time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
		Productos: []string{"2kg x Asado", "1kg x Chinchulín"},
		Total:     3300,
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, datos))
	require.True(t, strings.HasPrefix(buf.String(), "%PDF"))
	require.Greater(t, buf.Len(), 500)
}

func TestRenderSinProductos(t *testing.T) {
	r := NewRenderer(EstiloPorDefecto())

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, &Datos{IDPedido: 1, Cliente: "Ana", Fecha: time.Now()}))
	require.True(t, strings.HasPrefix(buf.String(), "%PDF"))
}

func TestEstiloPersonalizado(t *testing.T) {
	estilo := EstiloPorDefecto()
	estilo.Empresa = "Otra Carnicería"
	estilo.AcentoR, estilo.AcentoG, estilo.AcentoB = 231, 76, 60

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(estilo).Render(&buf, &Datos{IDPedido: 7, Cliente: "Luis", Fecha: time.Now()}))
	require.True(t, strings.HasPrefix(buf.String(), "%PDF"))
}
