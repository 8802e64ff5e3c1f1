package model

import (
	"github.com/shopspring/decimal"

	"github.com/beanbridge-dev/beanbridge/native"
)

// Builders for native record fixtures. Bodies carry the full key set the
// exporters produce, with nil for absent values, so round trips can be
// checked with a deep equality assertion.

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decp(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strp(s string) *string { return &s }

func intp(n int) *int { return &n }

func date(s string) native.Date {
	d, err := native.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func amountRec(number, currency any) *native.Record {
	return native.New(native.KindAmount, map[string]any{
		"number":   number,
		"currency": currency,
	})
}

func metaMap(filename string, lineno int) map[string]any {
	return map[string]any{"filename": filename, "lineno": lineno}
}

func openRec(day, account string, lineno int) *native.Record {
	return native.New(native.KindOpen, map[string]any{
		"date":       date(day),
		"meta":       metaMap("ledger.beancount", lineno),
		"account":    account,
		"currencies": nil,
		"booking":    nil,
	})
}

func closeRec(day, account string, lineno int) *native.Record {
	return native.New(native.KindClose, map[string]any{
		"date":    date(day),
		"meta":    metaMap("ledger.beancount", lineno),
		"account": account,
	})
}

func postingRec(account, number, currency string) *native.Record {
	return native.New(native.KindPosting, map[string]any{
		"account": account,
		"units":   amountRec(dec(number), currency),
		"cost":    nil,
		"price":   nil,
		"flag":    nil,
		"meta":    nil,
	})
}

func txnRec(day, narration string, lineno int, postings ...*native.Record) *native.Record {
	var ps any
	if postings != nil {
		list := make([]any, len(postings))
		for i, p := range postings {
			list[i] = p
		}
		ps = list
	}
	return native.New(native.KindTransaction, map[string]any{
		"date":      date(day),
		"meta":      metaMap("ledger.beancount", lineno),
		"flag":      "*",
		"payee":     nil,
		"narration": narration,
		"tags":      nil,
		"links":     nil,
		"postings":  ps,
	})
}

func positionRec(number, currency string, cost *native.Record) *native.Record {
	var c any
	if cost != nil {
		c = cost
	}
	return native.New(native.KindPosition, map[string]any{
		"units": amountRec(dec(number), currency),
		"cost":  c,
	})
}

func inventoryRec(positions ...*native.Record) *native.Record {
	var ps any
	if positions != nil {
		list := make([]any, len(positions))
		for i, p := range positions {
			list[i] = p
		}
		ps = list
	}
	return native.New(native.KindInventory, map[string]any{"positions": ps})
}
