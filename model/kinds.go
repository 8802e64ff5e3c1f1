package model

import (
	"github.com/beanbridge-dev/beanbridge/native"
)

// ParseModel builds the schema type matching the record's kind. Records
// outside the supported set yield an UnsupportedKindError and no partial
// result.
func ParseModel(rec *native.Record) (Model, error) {
	if rec == nil {
		return nil, &UnsupportedKindError{}
	}
	switch rec.Kind {
	case native.KindAmount:
		return ParseAmount(rec)
	case native.KindBalance:
		return ParseBalance(rec)
	case native.KindClose:
		return ParseClose(rec)
	case native.KindCommodity:
		return ParseCommodity(rec)
	case native.KindCost:
		return ParseCost(rec)
	case native.KindCostSpec:
		return ParseCostSpec(rec)
	case native.KindCurrencyContext:
		return ParseCurrencyContext(rec)
	case native.KindCustom:
		return ParseCustom(rec)
	case native.KindDisplayContext:
		return ParseDisplayContext(rec)
	case native.KindDistribution:
		return ParseDistribution(rec)
	case native.KindDocument:
		return ParseDocument(rec)
	case native.KindEvent:
		return ParseEvent(rec)
	case native.KindInventory:
		return ParseInventory(rec)
	case native.KindNote:
		return ParseNote(rec)
	case native.KindOpen:
		return ParseOpen(rec)
	case native.KindPad:
		return ParsePad(rec)
	case native.KindPosition:
		return ParsePosition(rec)
	case native.KindPosting:
		return ParsePosting(rec)
	case native.KindPrice:
		return ParsePrice(rec)
	case native.KindQuery:
		return ParseQuery(rec)
	case native.KindRealAccount:
		return ParseRealAccount(rec)
	case native.KindTransaction:
		return ParseTransaction(rec)
	case native.KindTxnPosting:
		return ParseTxnPosting(rec)
	default:
		return nil, &UnsupportedKindError{Kind: rec.Kind}
	}
}

// ParseDirective builds the directive model matching the record's kind.
// Non-directive kinds yield an UnsupportedKindError.
func ParseDirective(rec *native.Record) (Directive, error) {
	m, err := ParseModel(rec)
	if err != nil {
		return nil, err
	}
	d, ok := m.(Directive)
	if !ok {
		return nil, &UnsupportedKindError{Kind: rec.Kind}
	}
	return d, nil
}
