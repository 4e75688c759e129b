// Package export renders the flattened export records as delimited text:
// comma-separated, quote-escaped, CRLF line endings, and a UTF-8 byte-order
// marker so spreadsheet applications detect the encoding.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/nurpe/formwork-contracts/internal/document"
	"github.com/nurpe/formwork-contracts/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var contractHeader = []string{
	"合約編號", "工程名稱", "建立日期", "狀態", "工程地點", "開工日", "完工日",
	"甲方公司", "甲方統編", "甲方代表人", "甲方電話", "甲方地址",
	"乙方公司", "乙方統編", "乙方代表人", "乙方電話", "乙方地址",
	"工程項目", "合約條款", "小計", "稅額 (5%)", "含稅總價",
}

// ContractsCSV produces one row per contract from the assembler's export
// record.
func ContractsCSV(contracts []model.Contract) ([]byte, error) {
	rows := make([][]string, 0, len(contracts)+1)
	rows = append(rows, contractHeader)

	for _, contract := range contracts {
		record := document.BuildExportRecord(contract)
		rows = append(rows, []string{
			record.ReferenceCode,
			record.Title,
			record.CreatedAt,
			record.Status,
			record.ProjectLocation,
			record.StartDate,
			record.EndDate,
			record.PartyAName,
			record.PartyATaxID,
			record.PartyARepresentative,
			record.PartyAPhone,
			record.PartyAAddress,
			record.PartyBName,
			record.PartyBTaxID,
			record.PartyBRepresentative,
			record.PartyBPhone,
			record.PartyBAddress,
			record.ItemsBlock,
			record.ClausesBlock,
			formatAmount(record.Subtotal),
			formatAmount(record.Tax),
			formatAmount(record.GrandTotal),
		})
	}
	return write(rows)
}

var partyHeader = []string{"公司名稱", "統一編號", "代表人", "電話", "地址"}

// PartiesCSV produces one row per directory entry.
func PartiesCSV(parties []model.PartyInfo) ([]byte, error) {
	rows := make([][]string, 0, len(parties)+1)
	rows = append(rows, partyHeader)
	for _, party := range parties {
		rows = append(rows, []string{
			party.CompanyName,
			party.TaxID,
			party.Representative,
			party.Phone,
			party.Address,
		})
	}
	return write(rows)
}

func write(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	writer := csv.NewWriter(&buf)
	writer.UseCRLF = true
	if err := writer.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

// formatAmount prints the value exactly; the tax and grand-total figures
// arrive already rounded, the subtotal must not be rounded here.
func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
