package model

import (
	"fmt"

	"github.com/beanbridge-dev/beanbridge/native"
)

// ValidationError reports a field value that failed the schema's type or
// constraint checks. Path identifies the offending field, rooted at the
// record kind (for example "Transaction.postings[0].units.number").
type ValidationError struct {
	Path string
	Msg  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed at %s: %s", e.Path, e.Msg)
}

// UnsupportedKindError reports a record or directive kind outside the
// fixed supported set.
type UnsupportedKindError struct {
	Kind native.Kind
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported record kind %q", string(e.Kind))
}

// expectKind rejects records whose kind does not match the parse function
// they were handed to.
func expectKind(rec *native.Record, kind native.Kind) error {
	if rec == nil {
		return &UnsupportedKindError{}
	}
	if rec.Kind != kind {
		return &UnsupportedKindError{Kind: rec.Kind}
	}
	return nil
}
