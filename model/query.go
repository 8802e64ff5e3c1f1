package model

import (
	"fmt"

	"github.com/beanbridge-dev/beanbridge/native"
)

// QueryColumn describes one column of a query result. Type carries the
// engine's own type name verbatim.
type QueryColumn struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Row is one result row, keyed by column name. Values that are engine
// records are parsed into models; everything else is carried opaquely.
type Row map[string]any

// MarshalJSON serializes the row, tagging model values with their kind.
func (r Row) MarshalJSON() ([]byte, error) {
	return marshalAnyMap(r)
}

// UnmarshalJSON decodes a row, reconstructing tagged model values.
func (r *Row) UnmarshalJSON(data []byte) error {
	m, err := unmarshalAnyMap(data)
	if err != nil {
		return err
	}
	*r = m
	return nil
}

// QueryResult mirrors the engine query executor's (columns, rows) result.
type QueryResult struct {
	Columns []QueryColumn `json:"columns"`
	Rows    []Row         `json:"rows"`
}

// ParseQueryResult builds a QueryResult from a native query result.
func ParseQueryResult(qr *native.QueryResult) (*QueryResult, error) {
	out := &QueryResult{
		Columns: make([]QueryColumn, len(qr.Columns)),
		Rows:    make([]Row, len(qr.Rows)),
	}
	for i, col := range qr.Columns {
		out.Columns[i] = QueryColumn{Name: col.Name, Type: col.Type}
	}
	for i, row := range qr.Rows {
		parsed := make(Row, len(row))
		for key, value := range row {
			if rec, ok := value.(*native.Record); ok {
				m, err := ParseModel(rec)
				if err != nil {
					return nil, fmt.Errorf("row %d, column %q: %w", i, key, err)
				}
				parsed[key] = m
				continue
			}
			parsed[key] = value
		}
		out.Rows[i] = parsed
	}
	return out, nil
}

// Export reconstructs the native query result.
func (q *QueryResult) Export() *native.QueryResult {
	out := &native.QueryResult{
		Columns: make([]native.Column, len(q.Columns)),
		Rows:    make([]map[string]any, len(q.Rows)),
	}
	for i, col := range q.Columns {
		out.Columns[i] = native.Column{Name: col.Name, Type: col.Type}
	}
	for i, row := range q.Rows {
		exported := make(map[string]any, len(row))
		for key, value := range row {
			if m, ok := value.(Model); ok {
				exported[key] = m.Export()
				continue
			}
			exported[key] = value
		}
		out.Rows[i] = exported
	}
	return out
}
