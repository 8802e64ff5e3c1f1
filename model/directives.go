package model

import (
	"github.com/shopspring/decimal"

	"github.com/beanbridge-dev/beanbridge/native"
)

// Booking is an account's method for disambiguating postings against
// existing lots.
type Booking string

// The engine's booking methods.
const (
	BookingStrict  Booking = "STRICT"
	BookingNone    Booking = "NONE"
	BookingAverage Booking = "AVERAGE"
	BookingFIFO    Booking = "FIFO"
	BookingLIFO    Booking = "LIFO"
	BookingHIFO    Booking = "HIFO"
)

// Balance asserts the expected balance of an account at a date.
type Balance struct {
	Base
	Account    string           `json:"account" validate:"required"`
	Amount     Amount           `json:"amount"`
	Tolerance  *decimal.Decimal `json:"tolerance,omitempty"`
	DiffAmount *Amount          `json:"diff_amount,omitempty"`
}

// ParseBalance builds a Balance from its native record.
func ParseBalance(rec *native.Record) (*Balance, error) {
	if err := expectKind(rec, native.KindBalance); err != nil {
		return nil, err
	}
	b := newBody(rec)
	base, err := parseBase(b)
	if err != nil {
		return nil, err
	}
	account, err := b.str("account")
	if err != nil {
		return nil, err
	}
	amountRec, err := b.record("amount", native.KindAmount)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmountAt(amountRec, b.at("amount"))
	if err != nil {
		return nil, err
	}
	tolerance, err := b.optDec("tolerance")
	if err != nil {
		return nil, err
	}
	d := &Balance{Base: base, Account: account, Amount: *amount, Tolerance: tolerance}
	diffRec, err := b.optRecord("diff_amount", native.KindAmount)
	if err != nil {
		return nil, err
	}
	if diffRec != nil {
		diff, err := parseAmountAt(diffRec, b.at("diff_amount"))
		if err != nil {
			return nil, err
		}
		d.DiffAmount = diff
	}
	if err := checkModel(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Kind returns the native kind mirrored by Balance.
func (d *Balance) Kind() native.Kind { return native.KindBalance }

// Export reconstructs the native balance record.
func (d *Balance) Export() *native.Record {
	var diff any
	if d.DiffAmount != nil {
		diff = d.DiffAmount.Export()
	}
	out := map[string]any{
		"account":     d.Account,
		"amount":      d.Amount.Export(),
		"tolerance":   optDecValue(d.Tolerance),
		"diff_amount": diff,
	}
	d.exportBase(out)
	return native.New(native.KindBalance, out)
}

// Close marks an account as closed from a date onward.
type Close struct {
	Base
	Account string `json:"account" validate:"required"`
}

// ParseClose builds a Close from its native record.
func ParseClose(rec *native.Record) (*Close, error) {
	if err := expectKind(rec, native.KindClose); err != nil {
		return nil, err
	}
	b := newBody(rec)
	base, err := parseBase(b)
	if err != nil {
		return nil, err
	}
	account, err := b.str("account")
	if err != nil {
		return nil, err
	}
	d := &Close{Base: base, Account: account}
	if err := checkModel(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Kind returns the native kind mirrored by Close.
func (d *Close) Kind() native.Kind { return native.KindClose }

// Export reconstructs the native close record.
func (d *Close) Export() *native.Record {
	out := map[string]any{"account": d.Account}
	d.exportBase(out)
	return native.New(native.KindClose, out)
}

// Commodity declares a commodity under consideration.
type Commodity struct {
	Base
	Currency string `json:"currency" validate:"required"`
}

// ParseCommodity builds a Commodity from its native record.
func ParseCommodity(rec *native.Record) (*Commodity, error) {
	if err := expectKind(rec, native.KindCommodity); err != nil {
		return nil, err
	}
	b := newBody(rec)
	base, err := parseBase(b)
	if err != nil {
		return nil, err
	}
	currency, err := b.str("currency")
	if err != nil {
		return nil, err
	}
	d := &Commodity{Base: base, Currency: currency}
	if err := checkModel(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Kind returns the native kind mirrored by Commodity.
func (d *Commodity) Kind() native.Kind { return native.KindCommodity }

// Export reconstructs the native commodity record.
func (d *Commodity) Export() *native.Record {
	out := map[string]any{"currency": d.Currency}
	d.exportBase(out)
	return native.New(native.KindCommodity, out)
}

// Custom is a typed directive the engine's grammar accepts but does not
// interpret. Values are carried opaquely.
type Custom struct {
	Base
	Type   string `json:"type" validate:"required"`
	Values []any  `json:"values"`
}

// ParseCustom builds a Custom from its native record.
func ParseCustom(rec *native.Record) (*Custom, error) {
	if err := expectKind(rec, native.KindCustom); err != nil {
		return nil, err
	}
	b := newBody(rec)
	base, err := parseBase(b)
	if err != nil {
		return nil, err
	}
	typ, err := b.str("type")
	if err != nil {
		return nil, err
	}
	values, err := b.anySlice("values")
	if err != nil {
		return nil, err
	}
	d := &Custom{Base: base, Type: typ, Values: values}
	if err := checkModel(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Kind returns the native kind mirrored by Custom.
func (d *Custom) Kind() native.Kind { return native.KindCustom }

// Export reconstructs the native custom record.
func (d *Custom) Export() *native.Record {
	var values any
	if d.Values != nil {
		values = d.Values
	}
	out := map[string]any{"type": d.Type, "values": values}
	d.exportBase(out)
	return native.New(native.KindCustom, out)
}

// Document attaches an external file to an account.
type Document struct {
	Base
	Account  string   `json:"account" validate:"required"`
	Filename string   `json:"filename" validate:"required"`
	Tags     []string `json:"tags,omitempty"`
	Links    []string `json:"links,omitempty"`
}

// ParseDocument builds a Document from its native record.
func ParseDocument(rec *native.Record) (*Document, error) {
	if err := expectKind(rec, native.KindDocument); err != nil {
		return nil, err
	}
	b := newBody(rec)
	base, err := parseBase(b)
	if err != nil {
		return nil, err
	}
	account, err := b.str("account")
	if err != nil {
		return nil, err
	}
	filename, err := b.str("filename")
	if err != nil {
		return nil, err
	}
	tags, err := b.strSlice("tags")
	if err != nil {
		return nil, err
	}
	links, err := b.strSlice("links")
	if err != nil {
		return nil, err
	}
	d := &Document{Base: base, Account: account, Filename: filename, Tags: tags, Links: links}
	if err := checkModel(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Kind returns the native kind mirrored by Document.
func (d *Document) Kind() native.Kind { return native.KindDocument }

// Export reconstructs the native document record.
func (d *Document) Export() *native.Record {
	out := map[string]any{
		"account":  d.Account,
		"filename": d.Filename,
		"tags":     strSliceValue(d.Tags),
		"links":    strSliceValue(d.Links),
	}
	d.exportBase(out)
	return native.New(native.KindDocument, out)
}

// Event records the value of a named variable at a date.
type Event struct {
	Base
	Type        string `json:"type" validate:"required"`
	Description string `json:"description"`
}

// ParseEvent builds an Event from its native record.
func ParseEvent(rec *native.Record) (*Event, error) {
	if err := expectKind(rec, native.KindEvent); err != nil {
		return nil, err
	}
	b := newBody(rec)
	base, err := parseBase(b)
	if err != nil {
		return nil, err
	}
	typ, err := b.str("type")
	if err != nil {
		return nil, err
	}
	description, err := b.str("description")
	if err != nil {
		return nil, err
	}
	d := &Event{Base: base, Type: typ, Description: description}
	if err := checkModel(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Kind returns the native kind mirrored by Event.
func (d *Event) Kind() native.Kind { return native.KindEvent }

// Export reconstructs the native event record.
func (d *Event) Export() *native.Record {
	out := map[string]any{"type": d.Type, "description": d.Description}
	d.exportBase(out)
	return native.New(native.KindEvent, out)
}

// Note attaches a dated comment to an account.
type Note struct {
	Base
	Account string `json:"account" validate:"required"`
	Comment string `json:"comment"`
}

// ParseNote builds a Note from its native record.
func ParseNote(rec *native.Record) (*Note, error) {
	if err := expectKind(rec, native.KindNote); err != nil {
		return nil, err
	}
	b := newBody(rec)
	base, err := parseBase(b)
	if err != nil {
		return nil, err
	}
	account, err := b.str("account")
	if err != nil {
		return nil, err
	}
	comment, err := b.str("comment")
	if err != nil {
		return nil, err
	}
	d := &Note{Base: base, Account: account, Comment: comment}
	if err := checkModel(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Kind returns the native kind mirrored by Note.
func (d *Note) Kind() native.Kind { return native.KindNote }

// Export reconstructs the native note record.
func (d *Note) Export() *native.Record {
	out := map[string]any{"account": d.Account, "comment": d.Comment}
	d.exportBase(out)
	return native.New(native.KindNote, out)
}

// Open marks an account as open from a date onward, optionally
// constraining its currencies and booking method.
type Open struct {
	Base
	Account    string   `json:"account" validate:"required"`
	Currencies []string `json:"currencies,omitempty"`
	Booking    *Booking `json:"booking,omitempty" validate:"omitempty,oneof=STRICT NONE AVERAGE FIFO LIFO HIFO"`
}

// ParseOpen builds an Open from its native record.
func ParseOpen(rec *native.Record) (*Open, error) {
	if err := expectKind(rec, native.KindOpen); err != nil {
		return nil, err
	}
	b := newBody(rec)
	base, err := parseBase(b)
	if err != nil {
		return nil, err
	}
	account, err := b.str("account")
	if err != nil {
		return nil, err
	}
	currencies, err := b.strSlice("currencies")
	if err != nil {
		return nil, err
	}
	booking, err := b.optStr("booking")
	if err != nil {
		return nil, err
	}
	d := &Open{Base: base, Account: account, Currencies: currencies}
	if booking != nil {
		bk := Booking(*booking)
		d.Booking = &bk
	}
	if err := checkModel(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Kind returns the native kind mirrored by Open.
func (d *Open) Kind() native.Kind { return native.KindOpen }

// Export reconstructs the native open record.
func (d *Open) Export() *native.Record {
	var booking any
	if d.Booking != nil {
		booking = string(*d.Booking)
	}
	out := map[string]any{
		"account":    d.Account,
		"currencies": strSliceValue(d.Currencies),
		"booking":    booking,
	}
	d.exportBase(out)
	return native.New(native.KindOpen, out)
}

// Pad inserts whatever amount is needed from a source account to satisfy
// the next balance assertion on an account.
type Pad struct {
	Base
	Account       string `json:"account" validate:"required"`
	SourceAccount string `json:"source_account" validate:"required"`
}

// ParsePad builds a Pad from its native record.
func ParsePad(rec *native.Record) (*Pad, error) {
	if err := expectKind(rec, native.KindPad); err != nil {
		return nil, err
	}
	b := newBody(rec)
	base, err := parseBase(b)
	if err != nil {
		return nil, err
	}
	account, err := b.str("account")
	if err != nil {
		return nil, err
	}
	source, err := b.str("source_account")
	if err != nil {
		return nil, err
	}
	d := &Pad{Base: base, Account: account, SourceAccount: source}
	if err := checkModel(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Kind returns the native kind mirrored by Pad.
func (d *Pad) Kind() native.Kind { return native.KindPad }

// Export reconstructs the native pad record.
func (d *Pad) Export() *native.Record {
	out := map[string]any{"account": d.Account, "source_account": d.SourceAccount}
	d.exportBase(out)
	return native.New(native.KindPad, out)
}

// Posting is one leg of a transaction. At most one of Cost and CostSpec
// is set; the native model stores either under its single cost field.
type Posting struct {
	Account  string         `json:"account" validate:"required"`
	Units    *Amount        `json:"units,omitempty"`
	Cost     *Cost          `json:"cost,omitempty"`
	CostSpec *CostSpec      `json:"cost_spec,omitempty"`
	Price    *Amount        `json:"price,omitempty"`
	Flag     *string        `json:"flag,omitempty"`
	Meta     map[string]any `json:"meta,omitempty"`
}

// ParsePosting builds a Posting from its native record.
func ParsePosting(rec *native.Record) (*Posting, error) {
	if err := expectKind(rec, native.KindPosting); err != nil {
		return nil, err
	}
	return parsePostingAt(rec, string(native.KindPosting))
}

func parsePostingAt(rec *native.Record, path string) (*Posting, error) {
	b := body{rec: rec, path: path}
	account, err := b.str("account")
	if err != nil {
		return nil, err
	}
	p := &Posting{Account: account}
	unitsRec, err := b.optRecord("units", native.KindAmount)
	if err != nil {
		return nil, err
	}
	if unitsRec != nil {
		units, err := parseAmountAt(unitsRec, b.at("units"))
		if err != nil {
			return nil, err
		}
		p.Units = units
	}
	if cost := rec.Field("cost"); cost != nil {
		costRec, ok := cost.(*native.Record)
		if !ok {
			return nil, b.errf("cost", "expected Cost or CostSpec record, got %T", cost)
		}
		switch costRec.Kind {
		case native.KindCost:
			c, err := parseCostAt(costRec, b.at("cost"))
			if err != nil {
				return nil, err
			}
			p.Cost = c
		case native.KindCostSpec:
			cs, err := parseCostSpecAt(costRec, b.at("cost"))
			if err != nil {
				return nil, err
			}
			p.CostSpec = cs
		default:
			return nil, b.errf("cost", "expected Cost or CostSpec record, got %s", costRec.Kind)
		}
	}
	priceRec, err := b.optRecord("price", native.KindAmount)
	if err != nil {
		return nil, err
	}
	if priceRec != nil {
		price, err := parseAmountAt(priceRec, b.at("price"))
		if err != nil {
			return nil, err
		}
		p.Price = price
	}
	if p.Flag, err = b.optStr("flag"); err != nil {
		return nil, err
	}
	if p.Meta, err = b.anyMap("meta"); err != nil {
		return nil, err
	}
	if err := checkModel(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Kind returns the native kind mirrored by Posting.
func (p *Posting) Kind() native.Kind { return native.KindPosting }

// Export reconstructs the native posting record.
func (p *Posting) Export() *native.Record {
	var units, cost, price, meta any
	if p.Units != nil {
		units = p.Units.Export()
	}
	switch {
	case p.Cost != nil:
		cost = p.Cost.Export()
	case p.CostSpec != nil:
		cost = p.CostSpec.Export()
	}
	if p.Price != nil {
		price = p.Price.Export()
	}
	if p.Meta != nil {
		meta = p.Meta
	}
	return native.New(native.KindPosting, map[string]any{
		"account": p.Account,
		"units":   units,
		"cost":    cost,
		"price":   price,
		"flag":    optStrValue(p.Flag),
		"meta":    meta,
	})
}

// Price declares the value of one currency in another at a date.
type Price struct {
	Base
	Currency string `json:"currency" validate:"required"`
	Amount   Amount `json:"amount"`
}

// ParsePrice builds a Price from its native record.
func ParsePrice(rec *native.Record) (*Price, error) {
	if err := expectKind(rec, native.KindPrice); err != nil {
		return nil, err
	}
	b := newBody(rec)
	base, err := parseBase(b)
	if err != nil {
		return nil, err
	}
	currency, err := b.str("currency")
	if err != nil {
		return nil, err
	}
	amountRec, err := b.record("amount", native.KindAmount)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmountAt(amountRec, b.at("amount"))
	if err != nil {
		return nil, err
	}
	d := &Price{Base: base, Currency: currency, Amount: *amount}
	if err := checkModel(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Kind returns the native kind mirrored by Price.
func (d *Price) Kind() native.Kind { return native.KindPrice }

// Export reconstructs the native price record.
func (d *Price) Export() *native.Record {
	out := map[string]any{"currency": d.Currency, "amount": d.Amount.Export()}
	d.exportBase(out)
	return native.New(native.KindPrice, out)
}

// Query names a stored query string to be made available when the ledger
// is loaded.
type Query struct {
	Base
	Name        string `json:"name" validate:"required"`
	QueryString string `json:"query_string"`
}

// ParseQuery builds a Query from its native record.
func ParseQuery(rec *native.Record) (*Query, error) {
	if err := expectKind(rec, native.KindQuery); err != nil {
		return nil, err
	}
	b := newBody(rec)
	base, err := parseBase(b)
	if err != nil {
		return nil, err
	}
	name, err := b.str("name")
	if err != nil {
		return nil, err
	}
	qs, err := b.str("query_string")
	if err != nil {
		return nil, err
	}
	d := &Query{Base: base, Name: name, QueryString: qs}
	if err := checkModel(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Kind returns the native kind mirrored by Query.
func (d *Query) Kind() native.Kind { return native.KindQuery }

// Export reconstructs the native query record.
func (d *Query) Export() *native.Record {
	out := map[string]any{"name": d.Name, "query_string": d.QueryString}
	d.exportBase(out)
	return native.New(native.KindQuery, out)
}

// Transaction is a dated movement of units between accounts.
type Transaction struct {
	Base
	Flag      string    `json:"flag" validate:"required"`
	Payee     *string   `json:"payee,omitempty"`
	Narration string    `json:"narration"`
	Tags      []string  `json:"tags,omitempty"`
	Links     []string  `json:"links,omitempty"`
	Postings  []Posting `json:"postings" validate:"dive"`
}

// ParseTransaction builds a Transaction from its native record.
func ParseTransaction(rec *native.Record) (*Transaction, error) {
	if err := expectKind(rec, native.KindTransaction); err != nil {
		return nil, err
	}
	b := newBody(rec)
	base, err := parseBase(b)
	if err != nil {
		return nil, err
	}
	d := &Transaction{Base: base}
	if d.Flag, err = b.str("flag"); err != nil {
		return nil, err
	}
	if d.Payee, err = b.optStr("payee"); err != nil {
		return nil, err
	}
	if d.Narration, err = b.str("narration"); err != nil {
		return nil, err
	}
	if d.Tags, err = b.strSlice("tags"); err != nil {
		return nil, err
	}
	if d.Links, err = b.strSlice("links"); err != nil {
		return nil, err
	}
	raw, err := b.anySlice("postings")
	if err != nil {
		return nil, err
	}
	if raw != nil {
		d.Postings = make([]Posting, 0, len(raw))
	}
	for i, v := range raw {
		postRec, ok := v.(*native.Record)
		if !ok || postRec.Kind != native.KindPosting {
			return nil, &ValidationError{
				Path: elemPath(b.at("postings"), i),
				Msg:  "expected Posting record",
			}
		}
		posting, err := parsePostingAt(postRec, elemPath(b.at("postings"), i))
		if err != nil {
			return nil, err
		}
		d.Postings = append(d.Postings, *posting)
	}
	if err := checkModel(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Kind returns the native kind mirrored by Transaction.
func (d *Transaction) Kind() native.Kind { return native.KindTransaction }

// Export reconstructs the native transaction record.
func (d *Transaction) Export() *native.Record {
	var postings any
	if d.Postings != nil {
		ps := make([]any, len(d.Postings))
		for i := range d.Postings {
			ps[i] = d.Postings[i].Export()
		}
		postings = ps
	}
	out := map[string]any{
		"flag":      d.Flag,
		"payee":     optStrValue(d.Payee),
		"narration": d.Narration,
		"tags":      strSliceValue(d.Tags),
		"links":     strSliceValue(d.Links),
		"postings":  postings,
	}
	d.exportBase(out)
	return native.New(native.KindTransaction, out)
}

// TxnPosting pairs a posting with its parent transaction, as found in
// realization trees.
type TxnPosting struct {
	Txn     Transaction `json:"txn"`
	Posting Posting     `json:"posting"`
}

// ParseTxnPosting builds a TxnPosting from its native record.
func ParseTxnPosting(rec *native.Record) (*TxnPosting, error) {
	if err := expectKind(rec, native.KindTxnPosting); err != nil {
		return nil, err
	}
	b := newBody(rec)
	txnRec, err := b.record("txn", native.KindTransaction)
	if err != nil {
		return nil, err
	}
	txn, err := ParseTransaction(txnRec)
	if err != nil {
		return nil, err
	}
	postRec, err := b.record("posting", native.KindPosting)
	if err != nil {
		return nil, err
	}
	posting, err := parsePostingAt(postRec, b.at("posting"))
	if err != nil {
		return nil, err
	}
	return &TxnPosting{Txn: *txn, Posting: *posting}, nil
}

// Kind returns the native kind mirrored by TxnPosting.
func (d *TxnPosting) Kind() native.Kind { return native.KindTxnPosting }

// Export reconstructs the native txn posting record.
func (d *TxnPosting) Export() *native.Record {
	return native.New(native.KindTxnPosting, map[string]any{
		"txn":     d.Txn.Export(),
		"posting": d.Posting.Export(),
	})
}

func strSliceValue(ss []string) any {
	if ss == nil {
		return nil
	}
	out := make([]string, len(ss))
	copy(out, ss)
	return out
}
