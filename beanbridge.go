// Package beanbridge converts between the accounting engine's native
// record form and a typed, validated object model that serializes
// cleanly to JSON.
//
// The subpackages carry the substance: native defines the untyped
// record form, model defines the typed mirrors with parse, export,
// query and filter support, and printer renders directives back into
// engine file syntax. This package offers the top-level entry points
// that dispatch across all record kinds.
package beanbridge

import (
	"github.com/beanbridge-dev/beanbridge/model"
	"github.com/beanbridge-dev/beanbridge/native"
)

// Parse converts a single native record into its typed model.
func Parse(rec *native.Record) (model.Model, error) {
	return model.ParseModel(rec)
}

// ParseAll converts a list of native records, stopping at the first
// failure.
func ParseAll(recs []*native.Record) ([]model.Model, error) {
	out := make([]model.Model, 0, len(recs))
	for _, rec := range recs {
		m, err := model.ParseModel(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Export converts a typed model back into its native record.
func Export(m model.Model) *native.Record {
	return m.Export()
}

// ExportAll converts a list of typed models back into native records.
func ExportAll(ms []model.Model) []*native.Record {
	out := make([]*native.Record, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Export())
	}
	return out
}

// ParseDirectives converts native directive records into a Directives
// list with derived IDs and lookup helpers.
func ParseDirectives(recs []*native.Record) (model.Directives, error) {
	return model.ParseDirectives(recs)
}

// ParseLoadResult converts the engine's full load output into a
// BeancountFile.
func ParseLoadResult(lr *native.LoadResult) (*model.BeancountFile, error) {
	return model.ParseLoadResult(lr)
}

// ParseQueryResult converts the engine's query output into a typed
// QueryResult.
func ParseQueryResult(qr *native.QueryResult) (*model.QueryResult, error) {
	return model.ParseQueryResult(qr)
}
