package infra

// pdf.go — Delivery receipt generation using go-pdf/fpdf.
// Generates an A5 comprobante de entrega with:
//   - Shop header and tracking code
//   - Client and device identification
//   - Reported problem / diagnosis / applied solution
//   - Parts table (name, quantity, subtotal)
//   - Bold final cost
//
// The output file is saved to storagePath/entrega_{codigo}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/TheGeorge88/app-celulares/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateComprobanteEntregaPDF generates the delivery receipt for an order in
// estado ENTREGADO. storagePath is created if needed. Returns the absolute path
// to the generated file.
func GenerateComprobanteEntregaPDF(orden *model.OrdenReparacion, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("entrega_%s.pdf", orden.CodigoSeguimiento)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Servicio Técnico de Celulares", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Comprobante de Entrega", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	// ── Order info ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Orden "+orden.CodigoSeguimiento, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	if orden.FechaEntrega != nil {
		pdf.CellFormat(contentW, 4, "Entregado: "+orden.FechaEntrega.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	}
	if orden.Cliente != nil {
		pdf.CellFormat(contentW, 4, "Cliente: "+orden.Cliente.RazonSocial, "", 1, "L", false, 0, "")
	}
	if orden.Equipo != nil {
		equipo := orden.Equipo.Marca + " " + orden.Equipo.Modelo
		if orden.Equipo.IMEI != nil {
			equipo += "  (IMEI " + *orden.Equipo.IMEI + ")"
		}
		pdf.CellFormat(contentW, 4, "Equipo: "+equipo, "", 1, "L", false, 0, "")
	}
	if orden.Tecnico != nil {
		pdf.CellFormat(contentW, 4, "Técnico: "+orden.Tecnico.NombreCompleto(), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	// ── Work summary ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 4, "Problema reportado", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.MultiCell(contentW, 4, orden.ProblemaReportado, "", "L", false)

	if orden.Diagnostico != nil && *orden.Diagnostico != "" {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(contentW, 4, "Diagnóstico", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		pdf.MultiCell(contentW, 4, *orden.Diagnostico, "", "L", false)
	}
	if orden.SolucionAplicada != nil && *orden.SolucionAplicada != "" {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(contentW, 4, "Solución aplicada", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		pdf.MultiCell(contentW, 4, *orden.SolucionAplicada, "", "L", false)
	}
	pdf.Ln(2)

	// ── Parts table ──────────────────────────────────────────────────────────
	if len(orden.Detalles) > 0 {
		col1 := contentW * 0.52
		col2 := contentW * 0.16
		col3 := contentW * 0.32

		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(col1, 5, "Repuesto", "B", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 8)
		for _, d := range orden.Detalles {
			nombre := ""
			if d.Repuesto != nil {
				nombre = d.Repuesto.Nombre
			}
			if len(nombre) > 30 {
				nombre = nombre[:29] + "…"
			}
			pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
			pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", d.Cantidad), "", 0, "C", false, 0, "")
			pdf.CellFormat(col3, 5, "$"+d.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
		}
		pdf.Ln(2)
	}

	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	// ── Total ────────────────────────────────────────────────────────────────
	if orden.CostoFinal != nil {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW*0.68, 7, "TOTAL:", "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.32, 7, "$"+orden.CostoFinal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 4, "¡Gracias por confiar en nosotros!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
