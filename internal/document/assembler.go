// Package document derives presentation values from a contract: the
// recomputed total, the fixed-rate tax figures, and the denormalized export
// record that the CSV, Excel and PDF surfaces all consume.
package document

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/nurpe/formwork-contracts/internal/model"
)

// VATRate is the fixed value-added-tax rate applied to every contract.
// It is a global constant, not a per-contract setting.
const VATRate = 0.05

type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	Tax        float64 `json:"tax"`
	GrandTotal float64 `json:"grandTotal"`
}

// ComputeTotals rounds only the presented tax and grand-total figures; the
// subtotal is the exact accumulated sum.
func ComputeTotals(subtotal float64) Totals {
	return Totals{
		Subtotal:   subtotal,
		Tax:        math.Round(subtotal * VATRate),
		GrandTotal: math.Round(subtotal * (1 + VATRate)),
	}
}

// ReferenceCode is the short uppercase contract code shown on the printed
// document, derived from the id prefix. Display-only, never stored.
func ReferenceCode(id uuid.UUID) string {
	return strings.ToUpper(id.String()[:8])
}

// ExportRecord is the flattened, row-per-contract form shared by tabular
// export and print rendering. Building it has no side effects and the same
// contract always yields the same record.
type ExportRecord struct {
	ID              string
	ReferenceCode   string
	Title           string
	CreatedAt       string
	Status          string
	ProjectLocation string
	StartDate       string
	EndDate         string

	PartyAName           string
	PartyATaxID          string
	PartyARepresentative string
	PartyAPhone          string
	PartyAAddress        string

	PartyBName           string
	PartyBTaxID          string
	PartyBRepresentative string
	PartyBPhone          string
	PartyBAddress        string

	ItemsBlock   string
	ClausesBlock string

	Subtotal   float64
	Tax        float64
	GrandTotal float64
}

func BuildExportRecord(contract model.Contract) ExportRecord {
	totals := ComputeTotals(contract.TotalAmount)
	return ExportRecord{
		ID:              contract.ID.String(),
		ReferenceCode:   ReferenceCode(contract.ID),
		Title:           contract.Title,
		CreatedAt:       contract.CreatedAt.Format("2006-01-02"),
		Status:          string(contract.Status),
		ProjectLocation: contract.ProjectLocation,
		StartDate:       contract.StartDate,
		EndDate:         contract.EndDate,

		PartyAName:           contract.PartyA.CompanyName,
		PartyATaxID:          contract.PartyA.TaxID,
		PartyARepresentative: contract.PartyA.Representative,
		PartyAPhone:          contract.PartyA.Phone,
		PartyAAddress:        contract.PartyA.Address,

		PartyBName:           contract.PartyB.CompanyName,
		PartyBTaxID:          contract.PartyB.TaxID,
		PartyBRepresentative: contract.PartyB.Representative,
		PartyBPhone:          contract.PartyB.Phone,
		PartyBAddress:        contract.PartyB.Address,

		ItemsBlock:   buildItemsBlock(contract.Items),
		ClausesBlock: buildClausesBlock(contract.SelectedClauses()),

		Subtotal:   totals.Subtotal,
		Tax:        totals.Tax,
		GrandTotal: totals.GrandTotal,
	}
}

// buildItemsBlock renders one line per item:
// "1. 普通模板 (m²) 120 × 450 = 54000 備註".
func buildItemsBlock(items []model.LineItem) string {
	lines := make([]string, 0, len(items))
	for i, item := range items {
		line := fmt.Sprintf("%d. %s (%s) %s × %s = %s",
			i+1,
			item.Name,
			item.Unit,
			formatNumber(item.Quantity),
			formatNumber(item.Price),
			formatNumber(item.LineTotal()),
		)
		if item.Note != "" {
			line += " " + item.Note
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// buildClausesBlock renders only the selected clauses, in display order,
// each prefixed with its category label.
func buildClausesBlock(clauses []model.Clause) string {
	lines := make([]string, 0, len(clauses))
	for i, clause := range clauses {
		lines = append(lines, fmt.Sprintf("%d. [%s] %s",
			i+1, model.CategoryLabel(clause.Category), clause.Content))
	}
	return strings.Join(lines, "\n")
}

// formatNumber trims trailing zeros so quantities like 1 render as "1",
// not "1.000000".
func formatNumber(value float64) string {
	formatted := strings.TrimRight(fmt.Sprintf("%.4f", value), "0")
	return strings.TrimRight(formatted, ".")
}
