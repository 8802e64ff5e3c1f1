package model

import (
	"encoding/json"
	"fmt"

	"github.com/beanbridge-dev/beanbridge/native"
)

// realAccountAttrs are the reserved attribute keys of a native
// RealAccount body. Any other key names a child account. Child account
// segments are capitalized in the engine's grammar, so the lowercase
// reserved keys cannot collide with them.
var realAccountAttrs = map[string]bool{
	"account":      true,
	"balance":      true,
	"txn_postings": true,
}

// txnPostingKinds are the record kinds that can appear in a realization
// node's directive list.
var txnPostingKinds = map[native.Kind]bool{
	native.KindBalance:    true,
	native.KindClose:      true,
	native.KindDocument:   true,
	native.KindNote:       true,
	native.KindOpen:       true,
	native.KindPad:        true,
	native.KindTxnPosting: true,
}

// TxnPostings is the list of directives in which a realized account
// appears.
type TxnPostings []Model

// ParseTxnPostings builds a TxnPostings list from native records.
func ParseTxnPostings(recs []*native.Record) (TxnPostings, error) {
	out := make(TxnPostings, 0, len(recs))
	for _, rec := range recs {
		if rec == nil || !txnPostingKinds[rec.Kind] {
			var kind native.Kind
			if rec != nil {
				kind = rec.Kind
			}
			return nil, &UnsupportedKindError{Kind: kind}
		}
		m, err := ParseModel(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Export reconstructs the native records in order.
func (tp TxnPostings) Export() []*native.Record {
	out := make([]*native.Record, len(tp))
	for i, m := range tp {
		out[i] = m.Export()
	}
	return out
}

// ByKind returns the entries of the given kind, preserving order.
func (tp TxnPostings) ByKind(kind native.Kind) TxnPostings {
	var out TxnPostings
	for _, m := range tp {
		if m.Kind() == kind {
			out = append(out, m)
		}
	}
	return out
}

// MarshalJSON serializes each entry with its kind discriminator.
func (tp TxnPostings) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, len(tp))
	for i, m := range tp {
		raw, err := MarshalModel(m)
		if err != nil {
			return nil, fmt.Errorf("encoding entry %d: %w", i, err)
		}
		out[i] = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a list of kind-discriminated entries.
func (tp *TxnPostings) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(TxnPostings, 0, len(raw))
	for i, r := range raw {
		m, err := UnmarshalModel(r)
		if err != nil {
			return fmt.Errorf("decoding entry %d: %w", i, err)
		}
		if !txnPostingKinds[m.Kind()] {
			return fmt.Errorf("decoding entry %d: %w", i, &UnsupportedKindError{Kind: m.Kind()})
		}
		out = append(out, m)
	}
	*tp = out
	return nil
}

// RealAccount is one node of a realization tree. The native node is a
// hybrid container, holding its children as map entries next to its own
// attributes; here the children live in a dedicated field and the split
// is reversed on export. CurMap is derived from the balance at parse time
// and is not part of the native shape.
type RealAccount struct {
	Account     string                  `json:"account" validate:"required"`
	Balance     Inventory               `json:"balance"`
	Children    map[string]*RealAccount `json:"children"`
	CurMap      map[string]Inventory    `json:"cur_map"`
	TxnPostings TxnPostings             `json:"txn_postings"`
}

// ParseRealAccount builds a RealAccount from its native record, recursing
// into child accounts.
func ParseRealAccount(rec *native.Record) (*RealAccount, error) {
	if err := expectKind(rec, native.KindRealAccount); err != nil {
		return nil, err
	}
	return parseRealAccountAt(rec, string(native.KindRealAccount))
}

func parseRealAccountAt(rec *native.Record, path string) (*RealAccount, error) {
	b := body{rec: rec, path: path}
	account, err := b.str("account")
	if err != nil {
		return nil, err
	}
	balanceRec, err := b.record("balance", native.KindInventory)
	if err != nil {
		return nil, err
	}
	balance, err := parseInventoryAt(balanceRec, b.at("balance"))
	if err != nil {
		return nil, err
	}
	raw, err := b.anySlice("txn_postings")
	if err != nil {
		return nil, err
	}
	ra := &RealAccount{
		Account:  account,
		Balance:  balance,
		CurMap:   map[string]Inventory{},
		Children: map[string]*RealAccount{},
	}
	if raw != nil {
		ra.TxnPostings = make(TxnPostings, 0, len(raw))
	}
	for i, v := range raw {
		tpRec, ok := v.(*native.Record)
		if !ok || !txnPostingKinds[tpRec.Kind] {
			return nil, &ValidationError{
				Path: elemPath(b.at("txn_postings"), i),
				Msg:  "expected directive record",
			}
		}
		m, err := ParseModel(tpRec)
		if err != nil {
			return nil, err
		}
		ra.TxnPostings = append(ra.TxnPostings, m)
	}
	for cur, inv := range balance.SplitCurrencies() {
		ra.CurMap[cur] = inv
	}
	for key, value := range rec.Body {
		if realAccountAttrs[key] {
			continue
		}
		childRec, ok := value.(*native.Record)
		if !ok || childRec.Kind != native.KindRealAccount {
			return nil, b.errf(key, "expected RealAccount child record, got %T", value)
		}
		child, err := parseRealAccountAt(childRec, b.at(key))
		if err != nil {
			return nil, err
		}
		ra.Children[key] = child
	}
	if err := checkModel(ra); err != nil {
		return nil, err
	}
	return ra, nil
}

// Kind returns the native kind mirrored by RealAccount.
func (ra *RealAccount) Kind() native.Kind { return native.KindRealAccount }

// Export reconstructs the native hybrid node: attribute keys and child
// entries merged back into one body. CurMap is derived and not exported.
func (ra *RealAccount) Export() *native.Record {
	var txnPostings any
	if ra.TxnPostings != nil {
		tps := make([]any, len(ra.TxnPostings))
		for i, m := range ra.TxnPostings {
			tps[i] = m.Export()
		}
		txnPostings = tps
	}
	out := map[string]any{
		"account":      ra.Account,
		"balance":      ra.Balance.Export(),
		"txn_postings": txnPostings,
	}
	for name, child := range ra.Children {
		out[name] = child.Export()
	}
	return native.New(native.KindRealAccount, out)
}

// Account is a reduced view of one realized account: its lifecycle dates
// and per-currency balances, without the realization subtree.
type Account struct {
	Name    string               `json:"name"`
	Open    native.Date          `json:"open"`
	Close   *native.Date         `json:"close,omitempty"`
	Balance map[string]Inventory `json:"balance"`
}

// Summary reduces the node to an Account view. The node's directives must
// include the account's Open; a Close is optional. With several Open or
// Close directives the earliest Open and latest Close win.
func (ra *RealAccount) Summary() (*Account, error) {
	a := &Account{Name: ra.Account, Balance: ra.CurMap}
	opens := ra.TxnPostings.ByKind(native.KindOpen)
	if len(opens) == 0 {
		return nil, fmt.Errorf("account %s has no open directive", ra.Account)
	}
	a.Open = opens[0].(*Open).Date
	for _, d := range opens[1:] {
		if date := d.(*Open).Date; date.Before(a.Open) {
			a.Open = date
		}
	}
	for _, d := range ra.TxnPostings.ByKind(native.KindClose) {
		date := d.(*Close).Date
		if a.Close == nil || a.Close.Before(date) {
			a.Close = &date
		}
	}
	return a, nil
}
