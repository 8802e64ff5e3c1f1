// Package native describes the accounting engine's object model as it
// crosses the boundary into this module.
//
// The engine runs out of process, so its values arrive here as tagged
// records: a Record carries the kind of the engine value plus a body
// mapping field names to field values. Body values are restricted to the
// following vocabulary:
//
//   - nil for absent values
//   - bool, int, string
//   - decimal.Decimal for monetary numbers (never binary floats)
//   - Date for calendar dates
//   - *Record for nested engine values
//   - []any for ordered sequences
//   - []string for tag/link sets, in the engine's iteration order
//   - map[string]any for open-ended mappings (metadata, options)
//   - map[string]decimal.Decimal for currency tolerances
//   - map[int]int for integer histograms
//
// Every record body contains the full field set of its kind, with nil
// standing in for absent fields. This keeps the round trip through the
// model layer checkable with plain reflect.DeepEqual.
package native

import (
	"fmt"
	"time"
)

// Kind identifies one of the engine's record kinds.
type Kind string

// The supported record kinds.
const (
	KindAmount          Kind = "Amount"
	KindBalance         Kind = "Balance"
	KindClose           Kind = "Close"
	KindCommodity       Kind = "Commodity"
	KindCost            Kind = "Cost"
	KindCostSpec        Kind = "CostSpec"
	KindCurrencyContext Kind = "CurrencyContext"
	KindCustom          Kind = "Custom"
	KindDisplayContext  Kind = "DisplayContext"
	KindDistribution    Kind = "Distribution"
	KindDocument        Kind = "Document"
	KindEvent           Kind = "Event"
	KindInventory       Kind = "Inventory"
	KindNote            Kind = "Note"
	KindOpen            Kind = "Open"
	KindPad             Kind = "Pad"
	KindPosition        Kind = "Position"
	KindPosting         Kind = "Posting"
	KindPrice           Kind = "Price"
	KindQuery           Kind = "Query"
	KindRealAccount     Kind = "RealAccount"
	KindTransaction     Kind = "Transaction"
	KindTxnPosting      Kind = "TxnPosting"
)

// MissingKey marks tolerance entries keyed by the engine's MISSING
// sentinel. Such entries carry no usable currency and are dropped when the
// record is parsed into a model.
const MissingKey = "__missing__"

// Record is a single value from the engine's object model.
type Record struct {
	Kind Kind
	Body map[string]any
}

// New creates a record of the given kind.
func New(kind Kind, body map[string]any) *Record {
	return &Record{Kind: kind, Body: body}
}

// Field returns the named body field, or nil when absent.
func (r *Record) Field(key string) any {
	if r == nil || r.Body == nil {
		return nil
	}
	return r.Body[key]
}

// LoadResult is the triple returned by the engine's file loader:
// the parsed directives, any errors raised while loading, and the option
// map in effect for the file.
type LoadResult struct {
	Entries []*Record
	Errors  []any
	Options map[string]any
}

// Column describes one column of an engine query result. Type is the
// engine's own name for the column type (for example "Amount" or "str")
// and is carried verbatim.
type Column struct {
	Name string
	Type string
}

// QueryResult is the (columns, rows) pair returned by the engine's query
// executor. Row values follow the same vocabulary as record bodies.
type QueryResult struct {
	Columns []Column
	Rows    []map[string]any
}

// DateFormat is the engine's canonical date form.
const DateFormat = "2006-01-02"

// Date is a calendar date with no time or zone component.
type Date struct {
	Year  int
	Month int
	Day   int
}

// NewDate creates a date from its parts.
func NewDate(year, month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses a date in the engine's canonical "YYYY-MM-DD" form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}

// String renders the date in "YYYY-MM-DD" form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns the date as a UTC midnight time.Time.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// MarshalText renders the date in "YYYY-MM-DD" form.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses a date in "YYYY-MM-DD" form.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
