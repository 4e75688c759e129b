package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/formwork-contracts/internal/model"
)

func parseCSV(t *testing.T, payload []byte) [][]string {
	t.Helper()

	require.True(t, bytes.HasPrefix(payload, utf8BOM), "payload must start with a UTF-8 BOM")
	reader := csv.NewReader(bytes.NewReader(payload[len(utf8BOM):]))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestContractsCSV(t *testing.T) {
	contract := model.Contract{
		ID:        uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000000"),
		Title:     "橋面版模板工程",
		Status:    model.ContractStatusFinalized,
		CreatedAt: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
		PartyA:    model.PartyInfo{CompanyName: "甲方營造", TaxID: "12345678"},
		PartyB:    model.PartyInfo{CompanyName: "乙方模板"},
		Items: []model.LineItem{
			{ID: uuid.New(), Name: "普通模板", Unit: "m²", Price: 450, Quantity: 100.5},
		},
	}
	contract.RecomputeTotal()

	payload, err := ContractsCSV([]model.Contract{contract})
	require.NoError(t, err)

	rows := parseCSV(t, payload)
	require.Len(t, rows, 2)
	assert.Equal(t, contractHeader, rows[0])

	row := rows[1]
	assert.Equal(t, "A1B2C3D4", row[0])
	assert.Equal(t, "橋面版模板工程", row[1])
	assert.Equal(t, "甲方營造", row[7])
	assert.Equal(t, "乙方模板", row[12])
	// 45225 subtotal, tax rounds to 2261, grand total to 47486.
	assert.Equal(t, "45225", row[19])
	assert.Equal(t, "2261", row[20])
	assert.Equal(t, "47486", row[21])
}

func TestContractsCSVSubtotalKeepsFraction(t *testing.T) {
	contract := model.Contract{
		ID:    uuid.New(),
		Items: []model.LineItem{{ID: uuid.New(), Price: 450.5, Quantity: 1}},
	}
	contract.RecomputeTotal()

	payload, err := ContractsCSV([]model.Contract{contract})
	require.NoError(t, err)

	rows := parseCSV(t, payload)
	require.Len(t, rows, 2)
	assert.Equal(t, "450.5", rows[1][19])
}

func TestCSVUsesCRLFLineEndings(t *testing.T) {
	payload, err := PartiesCSV([]model.PartyInfo{{CompanyName: "大同營造"}})
	require.NoError(t, err)

	text := string(payload[len(utf8BOM):])
	assert.Equal(t, 2, strings.Count(text, "\r\n"))
	assert.NotContains(t, strings.ReplaceAll(text, "\r\n", ""), "\n")
}

func TestCSVEscapesEmbeddedDelimiters(t *testing.T) {
	payload, err := PartiesCSV([]model.PartyInfo{{
		CompanyName:    `大同 "營造", 股份有限公司`,
		Address:        "台北市\n信義區",
		Representative: "王小明",
	}})
	require.NoError(t, err)

	rows := parseCSV(t, payload)
	require.Len(t, rows, 2)
	assert.Equal(t, `大同 "營造", 股份有限公司`, rows[1][0])
	assert.Equal(t, "王小明", rows[1][2])
	assert.Equal(t, "台北市\n信義區", rows[1][4])
}

func TestPartiesCSVEmptyDirectory(t *testing.T) {
	payload, err := PartiesCSV(nil)
	require.NoError(t, err)

	rows := parseCSV(t, payload)
	require.Len(t, rows, 1)
	assert.Equal(t, partyHeader, rows[0])
}
