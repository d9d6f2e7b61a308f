package infra

// pdf.go — PDF invoice generation using go-pdf/fpdf.
// Generates A4 invoices with:
//   - Business name header
//   - Customer block
//   - Article table (title, quantity, unit price, line total)
//   - Service table (type, cost)
//   - Reduction line (if applicable)
//   - Bold total in DT
//   - Installment schedule for deferred sales
//
// The output file is saved to storagePath/facture_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"seratauto/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateInvoicePDF generates a PDF invoice for a vente.
// storagePath is the directory where the PDF will be written (created if needed).
// Returns the absolute path to the generated file.
func GenerateInvoicePDF(vente *model.Vente, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("facture_%s.pdf", vente.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, "Serat Auto", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 7, "FACTURE DE VENTE", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	// ── Invoice info ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Facture: %s", vente.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Date: %s", vente.CreatedAt.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	if vente.Customer != nil {
		pdf.CellFormat(contentW, 5, fmt.Sprintf("Client: %s %s — CIN %s",
			vente.Customer.Fname, vente.Customer.Lname, vente.Customer.CIN), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Articles ─────────────────────────────────────────────────────────────
	col1 := contentW * 0.46 // title
	col2 := contentW * 0.12 // qty
	col3 := contentW * 0.20 // unit price
	col4 := contentW * 0.22 // line total

	subtotal := decimal.Zero
	if len(vente.Articles) > 0 {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(col1, 6, "Article", "B", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, "Qté", "B", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "P.U.", "B", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "Total", "B", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		for _, a := range vente.Articles {
			title := ""
			if a.Product != nil {
				title = a.Product.Title
			}
			if len(title) > 38 {
				title = title[:37] + "…"
			}
			pdf.CellFormat(col1, 6, title, "", 0, "L", false, 0, "")
			pdf.CellFormat(col2, 6, fmt.Sprintf("x%d", a.Quantity), "", 0, "C", false, 0, "")
			pdf.CellFormat(col3, 6, a.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
			pdf.CellFormat(col4, 6, a.TotalPrice.StringFixed(2), "", 1, "R", false, 0, "")
			subtotal = subtotal.Add(a.TotalPrice)
		}
		pdf.Ln(2)
	}

	// ── Services ─────────────────────────────────────────────────────────────
	if len(vente.Services) > 0 {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(col1+col2+col3, 6, "Prestation", "B", 0, "L", false, 0, "")
		pdf.CellFormat(col4, 6, "Coût", "B", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		for _, sv := range vente.Services {
			label := ""
			if sv.Prestation != nil {
				label = sv.Prestation.ServiceType
			}
			if sv.Description != nil && *sv.Description != "" {
				label = label + " — " + *sv.Description
			}
			if len(label) > 60 {
				label = label[:59] + "…"
			}
			pdf.CellFormat(col1+col2+col3, 6, label, "", 0, "L", false, 0, "")
			pdf.CellFormat(col4, 6, sv.Cost.StringFixed(2), "", 1, "R", false, 0, "")
			subtotal = subtotal.Add(sv.Cost)
		}
		pdf.Ln(2)
	}

	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	reduction := subtotal.Sub(vente.TotalCost)
	if reduction.IsPositive() {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(col1+col2+col3, 6, "Sous-total:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col4, 6, subtotal.StringFixed(2)+" DT", "", 1, "R", false, 0, "")
		label := "Réduction:"
		if vente.ReductionType == "percent" {
			label = fmt.Sprintf("Réduction (%s%%):", vente.Reduction.StringFixed(0))
		}
		pdf.CellFormat(col1+col2+col3, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(col4, 6, "-"+reduction.StringFixed(2)+" DT", "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(col1+col2+col3, 8, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 8, vente.TotalCost.StringFixed(2)+" DT", "", 1, "R", false, 0, "")

	// ── Installment schedule ─────────────────────────────────────────────────
	if len(vente.Installments) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW, 6, "Échéancier", "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for i, inst := range vente.Installments {
			status := "à payer"
			if inst.Paid {
				status = "payée"
			}
			pdf.CellFormat(col1+col2, 5, fmt.Sprintf("Échéance %d — %s", i+1, inst.DueDate.Format("02/01/2006")), "", 0, "L", false, 0, "")
			pdf.CellFormat(col3, 5, inst.Amount.StringFixed(2)+" DT", "", 0, "R", false, 0, "")
			pdf.CellFormat(col4, 5, status, "", 1, "R", false, 0, "")
		}
	}

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Merci de votre confiance", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
