// Package history builds the per-counterparty price view from the full
// contract collection. It is a pure projection: the same input always
// yields the same grouping and ordering, and nothing is cached.
package history

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/formwork-contracts/internal/model"
)

// PriceRecord is one historical line item, tagged with its originating
// contract.
type PriceRecord struct {
	ContractID    uuid.UUID      `json:"contractId"`
	ContractTitle string         `json:"contractTitle"`
	CreatedAt     time.Time      `json:"createdAt"`
	Item          model.LineItem `json:"item"`
}

// CounterpartyHistory groups the records of one counterparty. Info is the
// first-seen PartyInfo snapshot for that company name; later contracts
// contribute records but never overwrite it.
type CounterpartyHistory struct {
	Info    model.PartyInfo `json:"info"`
	Records []PriceRecord   `json:"records"`
}

// Build scans the contracts in input order. Contracts with an empty
// PartyB.CompanyName are skipped: unnamed counterparties cannot be grouped.
// Each group's records are sorted newest-first by contract creation time
// with a stable sort; equal timestamps keep grouping order, no secondary
// tie-break is applied. Groups are returned in first-seen order.
func Build(contracts []model.Contract) []CounterpartyHistory {
	groups := make([]CounterpartyHistory, 0)
	index := make(map[string]int)

	for _, contract := range contracts {
		name := contract.PartyB.CompanyName
		if name == "" {
			continue
		}

		pos, ok := index[name]
		if !ok {
			groups = append(groups, CounterpartyHistory{
				Info:    contract.PartyB,
				Records: []PriceRecord{},
			})
			pos = len(groups) - 1
			index[name] = pos
		}

		for _, item := range contract.Items {
			groups[pos].Records = append(groups[pos].Records, PriceRecord{
				ContractID:    contract.ID,
				ContractTitle: contract.Title,
				CreatedAt:     contract.CreatedAt,
				Item:          item,
			})
		}
	}

	for i := range groups {
		records := groups[i].Records
		sort.SliceStable(records, func(a, b int) bool {
			return records[a].CreatedAt.After(records[b].CreatedAt)
		})
	}

	return groups
}

// Lookup returns the group for one counterparty name, if present.
func Lookup(groups []CounterpartyHistory, name string) (CounterpartyHistory, bool) {
	for _, group := range groups {
		if group.Info.CompanyName == name {
			return group, true
		}
	}
	return CounterpartyHistory{}, false
}
