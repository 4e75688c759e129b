package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/formwork-contracts/internal/document"
	"github.com/nurpe/formwork-contracts/internal/model"
)

type Generator struct {
	fontName string
	fontData []byte
}

// NewGenerator loads the CJK-capable TTF used for all text. The font is not
// embedded in the binary; any font covering Traditional Chinese works.
func NewGenerator(fontPath string) (*Generator, error) {
	fontData, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read pdf font: %w", err)
	}
	if len(fontData) == 0 {
		return nil, fmt.Errorf("font data is empty")
	}
	return &Generator{fontName: "NotoSansTC", fontData: fontData}, nil
}

// Generate renders the print view of a single contract: header with the
// reference code, party blocks, the line-item table with tax figures, the
// selected clauses in display order, and signature blocks.
func (g *Generator) Generate(contract model.Contract) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 15, 20)
	pdf.AddPage()

	pdf.AddUTF8FontFromBytes(g.fontName, "", g.fontData)
	pdf.AddUTF8FontFromBytes(g.fontName, "B", g.fontData)

	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 12, "工程承攬合約書", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("合約編號：%s", document.ReferenceCode(contract.ID)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	infoLine(pdf, g.fontName, "工程名稱", contract.Title)
	infoLine(pdf, g.fontName, "工程地點", contract.ProjectLocation)
	infoLine(pdf, g.fontName, "合約期間", periodLabel(contract.StartDate, contract.EndDate))
	pdf.Ln(2)

	addPartyBlock(pdf, g.fontName, "甲方（發包）", contract.PartyA)
	pdf.Ln(2)
	addPartyBlock(pdf, g.fontName, "乙方（承攬）", contract.PartyB)
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "工程項目", "", 1, "L", false, 0, "")

	headers := []string{"項目名稱", "單位", "數量", "單價", "小計"}
	colWidths := []float64{70, 20, 25, 27, 28}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)
	for _, item := range contract.Items {
		row := []string{
			item.Name,
			item.Unit,
			formatAmount(item.Quantity),
			formatAmount(item.Price),
			formatAmount(item.LineTotal()),
		}
		drawTableRow(pdf, g.fontName, row, colWidths, false)
	}

	totals := document.ComputeTotals(contract.TotalAmount)
	pdf.Ln(2)
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("小計：%s 元", formatAmount(totals.Subtotal)), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("營業稅 (5%%)：%s 元", formatAmount(totals.Tax)), "", 1, "R", false, 0, "")
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("含稅總價：%s 元", formatAmount(totals.GrandTotal)), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "合約條款", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	for i, clause := range contract.SelectedClauses() {
		line := fmt.Sprintf("%d. [%s] %s", i+1, model.CategoryLabel(clause.Category), clause.Content)
		pdf.MultiCell(0, 5.5, line, "", "L", false)
		pdf.Ln(1)
	}
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "立合約書人", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	signatureBlock(pdf, g.fontName, "甲方", contract.PartyA.Representative)
	signatureBlock(pdf, g.fontName, "乙方", contract.PartyB.Representative)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func infoLine(pdf *gofpdf.Fpdf, fontName, label, value string) {
	pdf.SetFont(fontName, "B", 11)
	pdf.CellFormat(30, 7, label+"：", "", 0, "L", false, 0, "")
	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(0, 7, safeValue(value), "B", 1, "L", false, 0, "")
}

func addPartyBlock(pdf *gofpdf.Fpdf, fontName, title string, party model.PartyInfo) {
	pdf.SetFont(fontName, "B", 11)
	pdf.CellFormat(0, 6, title, "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	lines := []string{
		fmt.Sprintf("公司名稱：%s", safeValue(party.CompanyName)),
		fmt.Sprintf("統一編號：%s", safeValue(party.TaxID)),
		fmt.Sprintf("代表人：%s", safeValue(party.Representative)),
		fmt.Sprintf("電話：%s", safeValue(party.Phone)),
		fmt.Sprintf("地址：%s", safeValue(party.Address)),
	}
	for _, line := range lines {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func signatureBlock(pdf *gofpdf.Fpdf, fontName, label, representative string) {
	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(0, 10, fmt.Sprintf("%s：______________________ /%s/", label, safeValue(representative)), "", 1, "L", false, 0, "")
}

func periodLabel(startDate, endDate string) string {
	return fmt.Sprintf("%s 至 %s", safeValue(startDate), safeValue(endDate))
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "—"
	}
	return value
}

func formatAmount(value float64) string {
	formatted := strings.TrimRight(fmt.Sprintf("%.2f", value), "0")
	return strings.TrimRight(formatted, ".")
}
