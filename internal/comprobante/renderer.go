package comprobante

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Datos reúne todo lo que el comprobante necesita del pedido.
type Datos struct {
	IDPedido  uint
	Cliente   string
	Fecha     time.Time
	Productos []string // "2kg x Asado", ...
	Total     float64
}

// Estilo parametriza el único layout del comprobante.
type Estilo struct {
	Empresa     string
	Titulo      string
	Despedida   string
	PieDePagina string
	// Color de acento RGB para el encabezado y el total.
	AcentoR, AcentoG, AcentoB int
}

func EstiloPorDefecto() Estilo {
	return Estilo{
		Empresa:     "Ferrari Menudencias",
		Titulo:      "Comprobante de Pedido",
		Despedida:   "¡Gracias por su compra!",
		PieDePagina: "Ferrari Menudencias - Productos de calidad",
		AcentoR:     44, AcentoG: 62, AcentoB: 80,
	}
}

type Renderer struct {
	estilo Estilo
}

func NewRenderer(estilo Estilo) *Renderer {
	return &Renderer{estilo: estilo}
}

// Render escribe el comprobante en PDF sobre w.
func (r *Renderer) Render(w io.Writer, d *Datos) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	pdf.SetTextColor(r.estilo.AcentoR, r.estilo.AcentoG, r.estilo.AcentoB)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, tr(r.estilo.Empresa), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 15)
	pdf.CellFormat(0, 9, tr(r.estilo.Titulo), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Número de Pedido: %d", d.IDPedido)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, tr("Cliente: "+d.Cliente), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, tr("Fecha: "+d.Fecha.Format("02/01/2006")), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, tr("Productos:"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	if len(d.Productos) == 0 {
		pdf.CellFormat(0, 7, tr("Sin productos"), "", 1, "L", false, 0, "")
	}
	for _, p := range d.Productos {
		pdf.CellFormat(0, 7, tr("- "+p), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	pdf.SetTextColor(r.estilo.AcentoR, r.estilo.AcentoG, r.estilo.AcentoB)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 9, tr(fmt.Sprintf("Total: $%.2f", d.Total)), "", 1, "L", false, 0, "")
	pdf.Ln(10)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, 6, tr(r.estilo.Despedida), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 5, tr(r.estilo.PieDePagina), "", 1, "C", false, 0, "")

	return pdf.Output(w)
}
