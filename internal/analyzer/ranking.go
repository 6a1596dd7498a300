package analyzer

import (
	"sort"

	"github.com/ludo-technologies/rbscan/domain"
)

// AllItems asks WorstItems and Worst for every known identifier
const AllItems = 0

// RankingSet maps each entity kind to its worst identifiers and gives
// access to the rows backing them across every metric table.
type RankingSet struct {
	store *RowStore
	worst map[domain.EntityKind][]string
}

// NewRankingSet derives worst lists from the store. Identifiers are listed
// in first-seen order across tables, so the store's insertion order is the
// ranking order unless order asks for a problem-count ranking.
func NewRankingSet(store *RowStore, order domain.RankOrder) *RankingSet {
	rs := &RankingSet{
		store: store,
		worst: make(map[domain.EntityKind][]string, len(domain.EntityKinds)),
	}
	for _, kind := range domain.EntityKinds {
		seen := make(map[string]bool)
		var ids []string
		for _, t := range store.Tables() {
			order, _ := t.Identifiers(kind)
			for _, id := range order {
				if !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
		}
		if order == domain.RankByProblems {
			rs.sortByRowCount(kind, ids)
		}
		rs.worst[kind] = ids
	}
	return rs
}

// sortByRowCount orders ids by descending row count; ties keep store order
func (rs *RankingSet) sortByRowCount(kind domain.EntityKind, ids []string) {
	counts := make(map[string]int, len(ids))
	for _, id := range ids {
		for _, t := range rs.store.tables {
			counts[id] += len(t.index[kind].rows[id])
		}
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return counts[ids[i]] > counts[ids[j]]
	})
}

// Worst returns up to num worst identifiers of kind; num <= 0 returns all
func (rs *RankingSet) Worst(kind domain.EntityKind, num int) ([]string, error) {
	if err := domain.CheckEntityKind(kind); err != nil {
		return nil, err
	}
	ids := rs.worst[kind]
	if num > 0 && num < len(ids) {
		ids = ids[:num]
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out, nil
}

// SubTable returns every row for (kind, identifier) across all metric
// tables, in table order. An unknown identifier yields an empty slice.
func (rs *RankingSet) SubTable(kind domain.EntityKind, identifier string) ([]domain.MetricRow, error) {
	if err := domain.CheckEntityKind(kind); err != nil {
		return nil, err
	}
	var rows []domain.MetricRow
	for _, t := range rs.store.Tables() {
		tableRows, _ := t.RowsFor(kind, identifier)
		rows = append(rows, tableRows...)
	}
	return rows, nil
}
