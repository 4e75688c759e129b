package model

import "github.com/google/uuid"

// ItemPreset is a template for commonly billed formwork items.
type ItemPreset struct {
	Name  string  `json:"name"`
	Unit  string  `json:"unit"`
	Price float64 `json:"price"`
}

var DefaultItems = []ItemPreset{
	{Name: "普通模板 (Regular Formwork)", Unit: "m²", Price: 450},
	{Name: "清水模板 (Architectural Concrete)", Unit: "m²", Price: 850},
	{Name: "系統模板 (System Formwork)", Unit: "m²", Price: 600},
	{Name: "單面模 (Single-sided)", Unit: "m²", Price: 1200},
	{Name: "免拆模板 (Non-removable)", Unit: "m²", Price: 1500},
	{Name: "樓梯 (Stairs)", Unit: "式", Price: 5000},
	{Name: "零星工料 (Misc. Labor/Material)", Unit: "工", Price: 3000},
}

// presetClauses is the fixed starter library seeded into every new contract.
var presetClauses = []Clause{
	{
		Category: ClauseCategoryGeneral,
		Content:  "乙方應依甲方提供之施工圖說及工程進度表施工，不得無故延誤。",
		Selected: true,
	},
	{
		Category: ClauseCategoryGeneral,
		Content:  "施工期間若發生設計變更，雙方應另行議定單價及工期。",
		Selected: true,
	},
	{
		Category: ClauseCategoryPayment,
		Content:  "付款方式：每月依實作數量計價一次，保留款為計價金額之 10%，於工程驗收合格後無息退還。",
		Selected: true,
	},
	{
		Category: ClauseCategoryPayment,
		Content:  "訂金：合約簽訂後支付總價 30% 作為訂金。",
		Selected: false,
	},
	{
		Category: ClauseCategorySafety,
		Content:  "乙方應嚴格遵守勞工安全衛生法規，施工人員須配戴安全帽及相關防護具。",
		Selected: true,
	},
	{
		Category: ClauseCategorySafety,
		Content:  "工地現場禁止飲酒、賭博及其他違法行為，違者甲方得依規定罰款或驅離。",
		Selected: true,
	},
	{
		Category: ClauseCategoryEnvironment,
		Content:  "乙方應負責施工範圍內之廢棄物清理及運棄。",
		Selected: true,
	},
	{
		Category: ClauseCategoryCustom,
		Content:  "雨天或其他不可抗力因素導致無法施工時，工期得順延之。",
		Selected: false,
	},
}

// ClonePresetClauses deep-copies the preset library with fresh ids so that
// edits inside one contract never leak into another or into the template.
func ClonePresetClauses() []Clause {
	clauses := make([]Clause, len(presetClauses))
	for i, preset := range presetClauses {
		clause := preset
		clause.ID = uuid.New()
		clauses[i] = clause
	}
	return clauses
}
