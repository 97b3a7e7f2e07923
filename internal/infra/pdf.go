package infra

// pdf.go — PDF generation with go-pdf/fpdf.
// Two documents:
//   - recibo de venta: thermal-receipt sized, one line per detalle
//   - ticket de cierre de caja: reconciliation figures plus the per-medio
//     and per-convenio breakdowns
//
// Files land under storagePath (created on demand).

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MateoRicci/gestion-cec-sub000/internal/dto"
	"github.com/MateoRicci/gestion-cec-sub000/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateReciboPDF renders the receipt for a completed venta.
// Returns the absolute path to the generated file.
func GenerateReciboPDF(venta *model.Venta, nombreClub, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("recibo_%s.pdf", venta.ID))

	// Receipt height grows with the number of rows; width stays at 74mm
	// (thermal paper).
	alto := 70.0 + float64(len(venta.Detalles))*5.0
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: alto},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, nombreClub, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Recibo de Venta", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, venta.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	if venta.Convenio != nil {
		pdf.CellFormat(contentW, 4, "Convenio: "+venta.Convenio.Nombre, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, d := range venta.Detalles {
		nombre := ""
		if d.Producto != nil {
			nombre = d.Producto.Nombre
		}
		if len(nombre) > 22 {
			nombre = nombre[:21] + "…"
		}
		pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", d.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+d.PrecioTotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "$"+venta.Total.StringFixed(2), "", 1, "R", false, 0, "")

	if venta.MedioPago != nil {
		pdf.SetFont("Helvetica", "", 7)
		pdf.CellFormat(contentW, 4, "Medio de pago: "+venta.MedioPago.Nombre, "", 1, "L", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "¡Gracias por su visita!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// GenerateTicketCierrePDF renders the closing ticket for a reconciled caja
// session. Called only after the session is persisted as cerrada.
func GenerateTicketCierrePDF(cierre *dto.CierreCajaResponse, nombreClub, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("cierre_%s.pdf", cierre.SesionCajaID))

	alto := 95.0 + float64(len(cierre.BalancePorMedio)+len(cierre.Asistencia))*4.5
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: alto},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8
	colL := contentW * 0.62
	colR := contentW * 0.38

	fila := func(label, valor string) {
		pdf.CellFormat(colL, 4.5, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(colR, 4.5, valor, "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, nombreClub, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Cierre de Caja — "+cierre.PuntoVenta, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 7)
	fila("Apertura:", cierre.OpenedAt)
	fila("Cierre:", cierre.ClosedAt)
	pdf.Ln(1)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	fila("Monto inicial:", "$"+cierre.MontoInicial.StringFixed(2))
	fila("Ingresos manuales:", "$"+cierre.IngresosManuales.StringFixed(2))
	fila("Egresos manuales:", "-$"+cierre.EgresosManuales.StringFixed(2))
	fila("Ventas en efectivo:", "$"+cierre.VentasEfectivo.StringFixed(2))
	fila("Ventas efectivo canceladas:", "$"+cierre.VentasEfectivoCanceladas.StringFixed(2))

	pdf.SetFont("Helvetica", "B", 9)
	fila("SALDO EFECTIVO:", "$"+cierre.SaldoEfectivo.StringFixed(2))
	pdf.Ln(2)

	if len(cierre.BalancePorMedio) > 0 {
		pdf.SetFont("Helvetica", "B", 7)
		pdf.CellFormat(contentW, 5, "Por medio de pago", "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 7)
		for _, b := range cierre.BalancePorMedio {
			fila(b.MedioPago+":", "$"+b.Total.StringFixed(2))
		}
		pdf.Ln(2)
	}

	if len(cierre.Asistencia) > 0 {
		pdf.SetFont("Helvetica", "B", 7)
		pdf.CellFormat(contentW, 5, "Asistencia por convenio", "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 7)
		for _, a := range cierre.Asistencia {
			fila(a.Convenio+":", fmt.Sprintf("%d", a.Personas))
		}
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
