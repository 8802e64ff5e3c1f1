package model

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/beanbridge-dev/beanbridge/native"
)

// body provides typed access to a native record body during parsing,
// carrying the field path used in validation errors.
type body struct {
	rec  *native.Record
	path string
}

func newBody(rec *native.Record) body {
	return body{rec: rec, path: string(rec.Kind)}
}

func (b body) at(key string) string {
	return b.path + "." + key
}

func (b body) errf(key, format string, args ...any) error {
	return &ValidationError{Path: b.at(key), Msg: fmt.Sprintf(format, args...)}
}

// str returns a required string field.
func (b body) str(key string) (string, error) {
	v := b.rec.Field(key)
	s, ok := v.(string)
	if !ok {
		return "", b.errf(key, "expected string, got %T", v)
	}
	return s, nil
}

// optStr returns an optional string field, nil when absent.
func (b body) optStr(key string) (*string, error) {
	v := b.rec.Field(key)
	if v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, b.errf(key, "expected string, got %T", v)
	}
	return &s, nil
}

// dec returns a required decimal field.
func (b body) dec(key string) (decimal.Decimal, error) {
	v := b.rec.Field(key)
	d, ok := v.(decimal.Decimal)
	if !ok {
		return decimal.Decimal{}, b.errf(key, "expected decimal, got %T", v)
	}
	return d, nil
}

// optDec returns an optional decimal field, nil when absent.
func (b body) optDec(key string) (*decimal.Decimal, error) {
	v := b.rec.Field(key)
	if v == nil {
		return nil, nil
	}
	d, ok := v.(decimal.Decimal)
	if !ok {
		return nil, b.errf(key, "expected decimal, got %T", v)
	}
	return &d, nil
}

// date returns a required date field.
func (b body) date(key string) (native.Date, error) {
	v := b.rec.Field(key)
	d, ok := v.(native.Date)
	if !ok {
		return native.Date{}, b.errf(key, "expected date, got %T", v)
	}
	return d, nil
}

// optDate returns an optional date field, nil when absent.
func (b body) optDate(key string) (*native.Date, error) {
	v := b.rec.Field(key)
	if v == nil {
		return nil, nil
	}
	d, ok := v.(native.Date)
	if !ok {
		return nil, b.errf(key, "expected date, got %T", v)
	}
	return &d, nil
}

// boolean returns a required bool field.
func (b body) boolean(key string) (bool, error) {
	v := b.rec.Field(key)
	x, ok := v.(bool)
	if !ok {
		return false, b.errf(key, "expected bool, got %T", v)
	}
	return x, nil
}

// optBool returns an optional bool field, nil when absent.
func (b body) optBool(key string) (*bool, error) {
	v := b.rec.Field(key)
	if v == nil {
		return nil, nil
	}
	x, ok := v.(bool)
	if !ok {
		return nil, b.errf(key, "expected bool, got %T", v)
	}
	return &x, nil
}

// integer returns a required int field.
func (b body) integer(key string) (int, error) {
	v := b.rec.Field(key)
	n, ok := v.(int)
	if !ok {
		return 0, b.errf(key, "expected integer, got %T", v)
	}
	return n, nil
}

// strSlice returns an optional string set field, nil when absent.
func (b body) strSlice(key string) ([]string, error) {
	v := b.rec.Field(key)
	if v == nil {
		return nil, nil
	}
	ss, ok := v.([]string)
	if !ok {
		return nil, b.errf(key, "expected string list, got %T", v)
	}
	out := make([]string, len(ss))
	copy(out, ss)
	return out, nil
}

// anySlice returns an optional sequence field, nil when absent.
func (b body) anySlice(key string) ([]any, error) {
	v := b.rec.Field(key)
	if v == nil {
		return nil, nil
	}
	vs, ok := v.([]any)
	if !ok {
		return nil, b.errf(key, "expected list, got %T", v)
	}
	return vs, nil
}

// record returns a required nested record field of the given kind.
func (b body) record(key string, kind native.Kind) (*native.Record, error) {
	rec, err := b.optRecord(key, kind)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, b.errf(key, "expected %s record, got nil", kind)
	}
	return rec, nil
}

// optRecord returns an optional nested record field, nil when absent.
func (b body) optRecord(key string, kind native.Kind) (*native.Record, error) {
	v := b.rec.Field(key)
	if v == nil {
		return nil, nil
	}
	rec, ok := v.(*native.Record)
	if !ok {
		return nil, b.errf(key, "expected %s record, got %T", kind, v)
	}
	if rec.Kind != kind {
		return nil, b.errf(key, "expected %s record, got %s", kind, rec.Kind)
	}
	return rec, nil
}

// anyMap returns an optional open mapping field, nil when absent.
func (b body) anyMap(key string) (map[string]any, error) {
	v := b.rec.Field(key)
	if v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, b.errf(key, "expected map, got %T", v)
	}
	return m, nil
}

// metaField parses the record's metadata map.
func (b body) metaField() (*Meta, error) {
	raw, err := b.anyMap("meta")
	if err != nil {
		return nil, err
	}
	return parseMeta(raw, b.at("meta"))
}
