package infra

// pdf.go: Comprobante PDF generation using go-pdf/fpdf.
// Renders an A5 Boleta/Factura with business header, document number, client
// name, item table and the Subtotal / IGV (18%) / Total breakdown.
// The output file is saved to storagePath/{tipo}_{numero}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Alcm1997/Agroconecta/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerarComprobantePDF renders the PDF for an issued comprobante.
// storagePath is the directory where the PDF will be written (created if
// needed). Returns the absolute path to the generated file.
func GenerarComprobantePDF(comp *model.Comprobante, clienteNombre, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("%s_%d.pdf", strings.ToLower(comp.TipoComprobante), comp.NumeroComprobante)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(contentW, 8, "AgroConecta", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Pitahaya fresca del valle", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6,
		fmt.Sprintf("%s N° %06d", comp.TipoComprobante, comp.NumeroComprobante),
		"", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Client / date ────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Cliente: "+clienteNombre, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Fecha: "+comp.FechaEmision.Format("02/01/2006"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	// ── Item table ───────────────────────────────────────────────────────────
	col1 := contentW * 0.46 // product name
	col2 := contentW * 0.14 // qty
	col3 := contentW * 0.20 // unit price
	col4 := contentW * 0.20 // line total

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "P. Unit", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 5, "Importe", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, item := range comp.Items {
		nombre := ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		if len(nombre) > 28 {
			nombre = nombre[:27] + "…"
		}
		importe := item.PrecioUnitario.Mul(decimal.NewFromInt(int64(item.Cantidad))).Round(2)
		pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", item.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "S/ "+item.PrecioUnitario.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 5, "S/ "+importe.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(col1+col2+col3, 5, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 5, "S/ "+comp.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(col1+col2+col3, 5, "IGV (18%):", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 5, "S/ "+comp.IGV.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1+col2+col3, 6, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "S/ "+comp.TotalPago.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 4, "¡Gracias por su compra!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
