// Package model defines schema types mirroring the accounting engine's
// record kinds, along with the bidirectional mapper between the two.
//
// Every schema type is built from a native record with a Parse function
// and reconstructs it with an Export method. For every supported native
// record v the round trip Export(Parse(v)) deep-equals v; this is the
// central correctness property of the package. Instances are plain value
// objects with no shared state and are safe to use across goroutines once
// constructed.
package model

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/beanbridge-dev/beanbridge/native"
)

// Model is implemented by every schema type that mirrors a native record
// kind.
type Model interface {
	// Kind returns the native record kind this model mirrors.
	Kind() native.Kind
	// Export reconstructs the native record from this model. It is a pure
	// function of the model's fields.
	Export() *native.Record
}

// Directive is implemented by the twelve dated ledger entry models.
type Directive interface {
	Model
	// Header returns the fields shared by all directives.
	Header() *Base
}

// Base holds the fields shared by every directive: a derived identifier,
// the directive date, and optional attached metadata.
//
// The ID is only derived when the metadata carries both the source
// filename and line number, which the engine guarantees for directives
// loaded from a ledger file. Directives built at runtime without that
// metadata have an empty ID.
type Base struct {
	ID   string      `json:"id,omitempty"`
	Date native.Date `json:"date"`
	Meta *Meta       `json:"meta,omitempty"`
}

// Header returns b, satisfying the Directive interface for embedders.
func (b *Base) Header() *Base { return b }

// Meta is the metadata attached to a directive. The filename, line number
// and per-currency tolerances are common engine-populated fields; any
// other keys are carried opaquely in Extra.
type Meta struct {
	Filename   *string
	Lineno     *int
	Tolerances map[string]decimal.Decimal
	Extra      map[string]any
}

const tolerancesKey = "__tolerances__"

// parseMeta converts a native metadata map. A nil map yields a nil Meta.
func parseMeta(raw map[string]any, path string) (*Meta, error) {
	if raw == nil {
		return nil, nil
	}
	m := &Meta{}
	for key, value := range raw {
		switch key {
		case "filename":
			s, ok := value.(string)
			if !ok {
				return nil, &ValidationError{Path: path + ".filename", Msg: "expected string"}
			}
			m.Filename = &s
		case "lineno":
			n, ok := value.(int)
			if !ok {
				return nil, &ValidationError{Path: path + ".lineno", Msg: "expected integer"}
			}
			m.Lineno = &n
		case tolerancesKey:
			tols, ok := value.(map[string]decimal.Decimal)
			if !ok {
				return nil, &ValidationError{Path: path + "." + tolerancesKey, Msg: "expected currency tolerance map"}
			}
			m.Tolerances = make(map[string]decimal.Decimal, len(tols))
			for cur, tol := range tols {
				// The engine can key a tolerance by its MISSING sentinel;
				// such entries carry no currency and are dropped.
				if cur == native.MissingKey {
					continue
				}
				m.Tolerances[cur] = tol
			}
		default:
			if m.Extra == nil {
				m.Extra = map[string]any{}
			}
			m.Extra[key] = value
		}
	}
	return m, nil
}

// Export reconstructs the native metadata map.
func (m *Meta) Export() map[string]any {
	out := make(map[string]any, len(m.Extra)+3)
	if m.Filename != nil {
		out["filename"] = *m.Filename
	}
	if m.Lineno != nil {
		out["lineno"] = *m.Lineno
	}
	if m.Tolerances != nil {
		tols := make(map[string]decimal.Decimal, len(m.Tolerances))
		for cur, tol := range m.Tolerances {
			tols[cur] = tol
		}
		out[tolerancesKey] = tols
	}
	for key, value := range m.Extra {
		out[key] = value
	}
	return out
}

// MarshalJSON flattens the metadata into a single object, with tolerances
// under the engine's "__tolerances__" key.
func (m *Meta) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(m.Extra)+3)
	for key, value := range m.Extra {
		flat[key] = value
	}
	if m.Filename != nil {
		flat["filename"] = *m.Filename
	}
	if m.Lineno != nil {
		flat["lineno"] = *m.Lineno
	}
	if m.Tolerances != nil {
		flat[tolerancesKey] = m.Tolerances
	}
	return json.Marshal(flat)
}

// UnmarshalJSON is the inverse of MarshalJSON. Numeric extra values decode
// as float64, the documented JSON limitation for non-model values.
func (m *Meta) UnmarshalJSON(data []byte) error {
	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	*m = Meta{}
	for key, value := range flat {
		switch key {
		case "filename":
			if s, ok := value.(string); ok {
				m.Filename = &s
				continue
			}
		case "lineno":
			if f, ok := value.(float64); ok {
				n := int(f)
				m.Lineno = &n
				continue
			}
		case tolerancesKey:
			raw, err := json.Marshal(value)
			if err != nil {
				return err
			}
			tols := map[string]decimal.Decimal{}
			if err := json.Unmarshal(raw, &tols); err != nil {
				return fmt.Errorf("decoding tolerances: %w", err)
			}
			m.Tolerances = tols
			continue
		}
		if m.Extra == nil {
			m.Extra = map[string]any{}
		}
		m.Extra[key] = value
	}
	return nil
}

// deriveID computes the deterministic identifier for a directive from its
// metadata: the md5 hex digest of the source filename concatenated with
// the line number. Returns "" when either field is absent.
func deriveID(m *Meta) string {
	if m == nil || m.Filename == nil || m.Lineno == nil {
		return ""
	}
	sum := md5.Sum([]byte(*m.Filename + strconv.Itoa(*m.Lineno)))
	return hex.EncodeToString(sum[:])
}

// parseBase builds the shared directive fields from a native record body.
func parseBase(b body) (Base, error) {
	date, err := b.date("date")
	if err != nil {
		return Base{}, err
	}
	meta, err := b.metaField()
	if err != nil {
		return Base{}, err
	}
	return Base{ID: deriveID(meta), Date: date, Meta: meta}, nil
}

// exportBase writes the shared directive fields into a native record body.
// The derived ID is not part of the native model and is skipped.
func (b *Base) exportBase(body map[string]any) {
	body["date"] = b.Date
	if b.Meta != nil {
		body["meta"] = b.Meta.Export()
	} else {
		body["meta"] = nil
	}
}
