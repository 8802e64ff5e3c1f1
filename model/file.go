package model

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"

	"github.com/beanbridge-dev/beanbridge/native"
)

// Directives is the ordered list of directives loaded from a ledger.
type Directives []Directive

// ParseDirectives builds a Directives list from native directive records.
func ParseDirectives(recs []*native.Record) (Directives, error) {
	out := make(Directives, 0, len(recs))
	for _, rec := range recs {
		d, err := ParseDirective(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Export reconstructs the native directive records in order.
func (ds Directives) Export() []*native.Record {
	out := make([]*native.Record, len(ds))
	for i, d := range ds {
		out[i] = d.Export()
	}
	return out
}

// ByID returns the directive with the given derived identifier. The
// second return value reports whether it was found; an absent identifier
// is not an error.
func (ds Directives) ByID(id string) (Directive, bool) {
	if id == "" {
		return nil, false
	}
	for _, d := range ds {
		if d.Header().ID == id {
			return d, true
		}
	}
	return nil, false
}

// ByIDs returns the directives with the given identifiers, in the order
// requested. The second return value is false when any identifier was not
// found; the found subset is still returned.
func (ds Directives) ByIDs(ids ...string) (Directives, bool) {
	out := make(Directives, 0, len(ids))
	all := true
	for _, id := range ids {
		d, ok := ds.ByID(id)
		if !ok {
			all = false
			continue
		}
		out = append(out, d)
	}
	return out, all
}

// ByAccount returns the directives that reference the given account:
// directly, as a pad source, or through a transaction posting.
func (ds Directives) ByAccount(account string) Directives {
	var out Directives
	for _, d := range ds {
		if directiveTouches(d, account) {
			out = append(out, d)
		}
	}
	return out
}

func directiveTouches(d Directive, account string) bool {
	switch v := d.(type) {
	case *Balance:
		return v.Account == account
	case *Close:
		return v.Account == account
	case *Document:
		return v.Account == account
	case *Note:
		return v.Account == account
	case *Open:
		return v.Account == account
	case *Pad:
		return v.Account == account || v.SourceAccount == account
	case *Transaction:
		for _, p := range v.Postings {
			if p.Account == account {
				return true
			}
		}
	}
	return false
}

// ByKind returns the directives of the given kind, preserving order.
func (ds Directives) ByKind(kind native.Kind) Directives {
	var out Directives
	for _, d := range ds {
		if d.Kind() == kind {
			out = append(out, d)
		}
	}
	return out
}

// MarshalJSON serializes each directive with its kind discriminator.
func (ds Directives) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, len(ds))
	for i, d := range ds {
		raw, err := MarshalModel(d)
		if err != nil {
			return nil, fmt.Errorf("encoding directive %d: %w", i, err)
		}
		out[i] = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a list of kind-discriminated directives.
func (ds *Directives) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Directives, 0, len(raw))
	for i, r := range raw {
		m, err := UnmarshalModel(r)
		if err != nil {
			return fmt.Errorf("decoding directive %d: %w", i, err)
		}
		d, ok := m.(Directive)
		if !ok {
			return fmt.Errorf("decoding directive %d: %w", i, &UnsupportedKindError{Kind: m.Kind()})
		}
		out = append(out, d)
	}
	*ds = out
	return nil
}

// Options is the option map in effect for a loaded ledger. Values that
// are native records are parsed into models; everything else is carried
// opaquely.
type Options map[string]any

// ParseOptions builds an Options map from the loader's option map.
func ParseOptions(raw map[string]any) (Options, error) {
	if raw == nil {
		return nil, nil
	}
	out := make(Options, len(raw))
	for key, value := range raw {
		if rec, ok := value.(*native.Record); ok {
			m, err := ParseModel(rec)
			if err != nil {
				return nil, fmt.Errorf("option %q: %w", key, err)
			}
			out[key] = m
			continue
		}
		out[key] = value
	}
	return out, nil
}

// Export reconstructs the native option map.
func (o Options) Export() map[string]any {
	if o == nil {
		return nil
	}
	out := make(map[string]any, len(o))
	for key, value := range o {
		if m, ok := value.(Model); ok {
			out[key] = m.Export()
			continue
		}
		out[key] = value
	}
	return out
}

// MarshalJSON serializes the options, tagging model values with their
// kind.
func (o Options) MarshalJSON() ([]byte, error) {
	return marshalAnyMap(o)
}

// UnmarshalJSON decodes options, reconstructing tagged model values.
func (o *Options) UnmarshalJSON(data []byte) error {
	m, err := unmarshalAnyMap(data)
	if err != nil {
		return err
	}
	*o = m
	return nil
}

// BeancountFile is the complete result of loading a ledger file: its
// directives, the options in effect, and any errors the loader raised.
type BeancountFile struct {
	Entries Directives `json:"entries"`
	Options Options    `json:"options"`
	Errors  []any      `json:"errors"`
}

// ParseLoadResult builds a BeancountFile from the engine loader's result.
func ParseLoadResult(lr *native.LoadResult) (*BeancountFile, error) {
	entries, err := ParseDirectives(lr.Entries)
	if err != nil {
		return nil, err
	}
	options, err := ParseOptions(lr.Options)
	if err != nil {
		return nil, err
	}
	return &BeancountFile{Entries: entries, Options: options, Errors: lr.Errors}, nil
}

// Export reconstructs the loader result. Errors are passed through
// untouched.
func (f *BeancountFile) Export() *native.LoadResult {
	return &native.LoadResult{
		Entries: f.Entries.Export(),
		Errors:  f.Errors,
		Options: f.Options.Export(),
	}
}

// Compress returns a gzip-compressed JSON snapshot of the file, suitable
// for caching a parsed ledger.
func (f *BeancountFile) Compress() ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if err := json.NewEncoder(zw).Encode(f); err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compressing snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// DecompressFile restores a BeancountFile from a Compress snapshot.
func DecompressFile(data []byte) (*BeancountFile, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	defer zr.Close()
	var f BeancountFile
	if err := json.NewDecoder(zr).Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return &f, nil
}
