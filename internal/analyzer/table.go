package analyzer

import (
	"github.com/ludo-technologies/rbscan/domain"
)

// kindIndex holds the rows of one entity kind, keyed by identifier,
// together with the order identifiers were first seen in
type kindIndex struct {
	order []string
	rows  map[string][]domain.MetricRow
}

func newKindIndex() *kindIndex {
	return &kindIndex{rows: make(map[string][]domain.MetricRow)}
}

func (k *kindIndex) add(id string, row domain.MetricRow) {
	if _, seen := k.rows[id]; !seen {
		k.order = append(k.order, id)
	}
	k.rows[id] = append(k.rows[id], row)
}

// MetricTable stores the rows produced by one analyzer, indexed by
// entity kind and identifier. Insertion order is preserved and is the
// ranking order.
type MetricTable struct {
	metric string
	index  map[domain.EntityKind]*kindIndex
	size   int
}

// NewMetricTable creates an empty table for a metric
func NewMetricTable(metric string) *MetricTable {
	t := &MetricTable{
		metric: metric,
		index:  make(map[domain.EntityKind]*kindIndex, len(domain.EntityKinds)),
	}
	for _, kind := range domain.EntityKinds {
		t.index[kind] = newKindIndex()
	}
	return t
}

// Metric returns the metric name shared by every row of the table
func (t *MetricTable) Metric() string {
	return t.metric
}

// Len returns the number of rows added through Add
func (t *MetricTable) Len() int {
	return t.size
}

// AddRow appends row to the sequence for (kind, identifier).
// Repeated rows accumulate; nothing is deduplicated.
func (t *MetricTable) AddRow(kind domain.EntityKind, identifier string, row domain.MetricRow) error {
	if err := domain.CheckEntityKind(kind); err != nil {
		return err
	}
	t.index[kind].add(identifier, cloneRow(row))
	return nil
}

// Add indexes row under every kind it belongs to: always its file, its
// class when it has one and its method when it has one.
func (t *MetricTable) Add(row domain.MetricRow) {
	row.Metric = t.metric
	for _, kind := range domain.EntityKinds {
		if id, ok := row.Identifier(kind); ok {
			_ = t.AddRow(kind, id, row)
		}
	}
	t.size++
}

// RowsFor returns the rows for (kind, identifier). Unknown identifiers
// yield an empty slice; only an invalid kind is an error.
func (t *MetricTable) RowsFor(kind domain.EntityKind, identifier string) ([]domain.MetricRow, error) {
	if err := domain.CheckEntityKind(kind); err != nil {
		return nil, err
	}
	rows := t.index[kind].rows[identifier]
	out := make([]domain.MetricRow, len(rows))
	copy(out, rows)
	return out, nil
}

// Identifiers returns the identifiers of kind in insertion order
func (t *MetricTable) Identifiers(kind domain.EntityKind) ([]string, error) {
	if err := domain.CheckEntityKind(kind); err != nil {
		return nil, err
	}
	ids := t.index[kind].order
	out := make([]string, len(ids))
	copy(out, ids)
	return out, nil
}

func cloneRow(row domain.MetricRow) domain.MetricRow {
	if row.Lines != nil {
		lines := make([]string, len(row.Lines))
		copy(lines, row.Lines)
		row.Lines = lines
	}
	return row
}

// RowStore owns one MetricTable per metric, in creation order.
// It is written by a single owner and only read once ranking begins.
type RowStore struct {
	tables []*MetricTable
	byName map[string]*MetricTable
}

// NewRowStore creates an empty store
func NewRowStore() *RowStore {
	return &RowStore{byName: make(map[string]*MetricTable)}
}

// Table returns the table for metric, creating it if needed
func (s *RowStore) Table(metric string) *MetricTable {
	if t, ok := s.Lookup(metric); ok {
		return t
	}
	t := NewMetricTable(metric)
	s.tables = append(s.tables, t)
	s.byName[metric] = t
	return t
}

// Lookup returns the table for metric without creating it
func (s *RowStore) Lookup(metric string) (*MetricTable, bool) {
	t, ok := s.byName[metric]
	return t, ok
}

// Tables returns the tables in creation order
func (s *RowStore) Tables() []*MetricTable {
	out := make([]*MetricTable, len(s.tables))
	copy(out, s.tables)
	return out
}

// AddRows appends rows to the table for metric
func (s *RowStore) AddRows(metric string, rows []domain.MetricRow) {
	t := s.Table(metric)
	for _, row := range rows {
		t.Add(row)
	}
}

// Merge appends the tables of other. A table for a metric already present
// receives other's rows after its own.
func (s *RowStore) Merge(other *RowStore) {
	if other == nil {
		return
	}
	for _, ot := range other.tables {
		existing, ok := s.byName[ot.metric]
		if !ok {
			s.tables = append(s.tables, ot)
			s.byName[ot.metric] = ot
			continue
		}
		for _, kind := range domain.EntityKinds {
			src := ot.index[kind]
			for _, id := range src.order {
				for _, row := range src.rows[id] {
					existing.index[kind].add(id, row)
				}
			}
		}
		existing.size += ot.size
	}
}

// RowCounts returns the number of rows per metric
func (s *RowStore) RowCounts() map[string]int {
	counts := make(map[string]int, len(s.tables))
	for _, t := range s.tables {
		counts[t.metric] = t.size
	}
	return counts
}

// TotalRows returns the number of rows across all tables
func (s *RowStore) TotalRows() int {
	total := 0
	for _, t := range s.tables {
		total += t.size
	}
	return total
}
