package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/formwork-contracts/internal/history"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate builds the price-history workbook: one summary sheet plus one
// detail sheet per counterparty.
func (g *Generator) Generate(groups []history.CounterpartyHistory) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "總覽"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, groups); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{summarySheet: {}}
	for _, group := range groups {
		sheetName := buildSheetName(group.Info.CompanyName, usedNames)
		usedNames[sheetName] = struct{}{}

		file.NewSheet(sheetName)
		if err := g.writeDetail(file, sheetName, group); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, groups []history.CounterpartyHistory) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	totalRecords := 0
	for _, group := range groups {
		totalRecords += len(group.Records)
	}

	set("A1", "承攬商數")
	set("B1", len(groups))
	set("A2", "報價紀錄總數")
	set("B2", totalRecords)

	tableRow := 4
	set(fmt.Sprintf("A%d", tableRow), "承攬商")
	set(fmt.Sprintf("B%d", tableRow), "代表人")
	set(fmt.Sprintf("C%d", tableRow), "電話")
	set(fmt.Sprintf("D%d", tableRow), "紀錄數")

	for i, group := range groups {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), group.Info.CompanyName)
		set(fmt.Sprintf("B%d", row), group.Info.Representative)
		set(fmt.Sprintf("C%d", row), group.Info.Phone)
		set(fmt.Sprintf("D%d", row), len(group.Records))
	}

	_ = file.SetColWidth(sheet, "A", "A", 36)
	_ = file.SetColWidth(sheet, "B", "C", 18)
	_ = file.SetColWidth(sheet, "D", "D", 10)
	return nil
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, group history.CounterpartyHistory) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "公司名稱")
	set("B1", group.Info.CompanyName)
	set("A2", "統一編號")
	set("B2", group.Info.TaxID)
	set("A3", "代表人")
	set("B3", group.Info.Representative)
	set("A4", "電話")
	set("B4", group.Info.Phone)
	set("A5", "紀錄數")
	set("B5", len(group.Records))

	tableRow := 7
	headers := []string{"日期", "工程合約", "項目名稱", "單位", "單價", "數量", "小計"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, record := range group.Records {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), formatDate(record.CreatedAt))
		set(fmt.Sprintf("B%d", row), record.ContractTitle)
		set(fmt.Sprintf("C%d", row), record.Item.Name)
		set(fmt.Sprintf("D%d", row), record.Item.Unit)
		set(fmt.Sprintf("E%d", row), record.Item.Price)
		set(fmt.Sprintf("F%d", row), record.Item.Quantity)
		set(fmt.Sprintf("G%d", row), record.Item.LineTotal())
	}

	_ = file.SetColWidth(sheet, "A", "A", 14)
	_ = file.SetColWidth(sheet, "B", "C", 32)
	_ = file.SetColWidth(sheet, "D", "D", 10)
	_ = file.SetColWidth(sheet, "E", "G", 12)
	return nil
}

func buildSheetName(name string, used map[string]struct{}) string {
	base := sanitizeSheetName(name)

	if len(base) > 31 {
		base = base[:31]
	}

	nameCandidate := base
	counter := 2
	for {
		if _, exists := used[nameCandidate]; !exists {
			return nameCandidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		trimmed := base
		if len(trimmed)+len(suffix) > 31 {
			trimmed = trimmed[:31-len(suffix)]
		}
		nameCandidate = trimmed + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "承攬商"
	}

	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = replacer.Replace(value)
	value = strings.TrimSpace(value)
	if value == "" {
		return "承攬商"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
