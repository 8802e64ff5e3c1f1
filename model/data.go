package model

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/beanbridge-dev/beanbridge/native"
)

// Amount is a number of units of a currency. Both parts are optional so
// the engine's incomplete amounts survive the round trip.
type Amount struct {
	Number   *decimal.Decimal `json:"number,omitempty"`
	Currency *string          `json:"currency,omitempty"`
}

// NewAmount builds a complete amount.
func NewAmount(number decimal.Decimal, currency string) Amount {
	return Amount{Number: &number, Currency: &currency}
}

// ParseAmount builds an Amount from its native record.
func ParseAmount(rec *native.Record) (*Amount, error) {
	if err := expectKind(rec, native.KindAmount); err != nil {
		return nil, err
	}
	return parseAmountAt(rec, string(native.KindAmount))
}

func parseAmountAt(rec *native.Record, path string) (*Amount, error) {
	b := body{rec: rec, path: path}
	number, err := b.optDec("number")
	if err != nil {
		return nil, err
	}
	currency, err := b.optStr("currency")
	if err != nil {
		return nil, err
	}
	a := &Amount{Number: number, Currency: currency}
	if err := checkModel(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Kind returns the native kind mirrored by Amount.
func (a *Amount) Kind() native.Kind { return native.KindAmount }

// Export reconstructs the native amount record.
func (a *Amount) Export() *native.Record {
	return native.New(native.KindAmount, map[string]any{
		"number":   optDecValue(a.Number),
		"currency": optStrValue(a.Currency),
	})
}

// Cost is the acquisition cost of a position's lot.
type Cost struct {
	Number   decimal.Decimal `json:"number"`
	Currency string          `json:"currency" validate:"required"`
	Date     native.Date     `json:"date"`
	Label    *string         `json:"label,omitempty"`
}

// ParseCost builds a Cost from its native record.
func ParseCost(rec *native.Record) (*Cost, error) {
	if err := expectKind(rec, native.KindCost); err != nil {
		return nil, err
	}
	return parseCostAt(rec, string(native.KindCost))
}

func parseCostAt(rec *native.Record, path string) (*Cost, error) {
	b := body{rec: rec, path: path}
	number, err := b.dec("number")
	if err != nil {
		return nil, err
	}
	currency, err := b.str("currency")
	if err != nil {
		return nil, err
	}
	date, err := b.date("date")
	if err != nil {
		return nil, err
	}
	label, err := b.optStr("label")
	if err != nil {
		return nil, err
	}
	c := &Cost{Number: number, Currency: currency, Date: date, Label: label}
	if err := checkModel(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Kind returns the native kind mirrored by Cost.
func (c *Cost) Kind() native.Kind { return native.KindCost }

// Export reconstructs the native cost record.
func (c *Cost) Export() *native.Record {
	return native.New(native.KindCost, map[string]any{
		"number":   c.Number,
		"currency": c.Currency,
		"date":     c.Date,
		"label":    optStrValue(c.Label),
	})
}

// CostSpec is a partially specified cost, as written in ledger syntax
// before booking resolves it to a concrete Cost.
type CostSpec struct {
	NumberPer   *decimal.Decimal `json:"number_per,omitempty"`
	NumberTotal *decimal.Decimal `json:"number_total,omitempty"`
	Currency    *string          `json:"currency,omitempty"`
	Date        *native.Date     `json:"date,omitempty"`
	Label       *string          `json:"label,omitempty"`
	Merge       *bool            `json:"merge,omitempty"`
}

// ParseCostSpec builds a CostSpec from its native record.
func ParseCostSpec(rec *native.Record) (*CostSpec, error) {
	if err := expectKind(rec, native.KindCostSpec); err != nil {
		return nil, err
	}
	return parseCostSpecAt(rec, string(native.KindCostSpec))
}

func parseCostSpecAt(rec *native.Record, path string) (*CostSpec, error) {
	b := body{rec: rec, path: path}
	cs := &CostSpec{}
	var err error
	if cs.NumberPer, err = b.optDec("number_per"); err != nil {
		return nil, err
	}
	if cs.NumberTotal, err = b.optDec("number_total"); err != nil {
		return nil, err
	}
	if cs.Currency, err = b.optStr("currency"); err != nil {
		return nil, err
	}
	if cs.Date, err = b.optDate("date"); err != nil {
		return nil, err
	}
	if cs.Label, err = b.optStr("label"); err != nil {
		return nil, err
	}
	if cs.Merge, err = b.optBool("merge"); err != nil {
		return nil, err
	}
	return cs, nil
}

// Kind returns the native kind mirrored by CostSpec.
func (c *CostSpec) Kind() native.Kind { return native.KindCostSpec }

// Export reconstructs the native cost spec record.
func (c *CostSpec) Export() *native.Record {
	return native.New(native.KindCostSpec, map[string]any{
		"number_per":   optDecValue(c.NumberPer),
		"number_total": optDecValue(c.NumberTotal),
		"currency":     optStrValue(c.Currency),
		"date":         optDateValue(c.Date),
		"label":        optStrValue(c.Label),
		"merge":        optBoolValue(c.Merge),
	})
}

// Position is a number of units held at an optional cost.
type Position struct {
	Units Amount `json:"units"`
	Cost  *Cost  `json:"cost,omitempty"`
}

// ParsePosition builds a Position from its native record.
func ParsePosition(rec *native.Record) (*Position, error) {
	if err := expectKind(rec, native.KindPosition); err != nil {
		return nil, err
	}
	return parsePositionAt(rec, string(native.KindPosition))
}

func parsePositionAt(rec *native.Record, path string) (*Position, error) {
	b := body{rec: rec, path: path}
	unitsRec, err := b.record("units", native.KindAmount)
	if err != nil {
		return nil, err
	}
	units, err := parseAmountAt(unitsRec, b.at("units"))
	if err != nil {
		return nil, err
	}
	p := &Position{Units: *units}
	costRec, err := b.optRecord("cost", native.KindCost)
	if err != nil {
		return nil, err
	}
	if costRec != nil {
		cost, err := parseCostAt(costRec, b.at("cost"))
		if err != nil {
			return nil, err
		}
		p.Cost = cost
	}
	return p, nil
}

// Kind returns the native kind mirrored by Position.
func (p *Position) Kind() native.Kind { return native.KindPosition }

// Export reconstructs the native position record.
func (p *Position) Export() *native.Record {
	var cost any
	if p.Cost != nil {
		cost = p.Cost.Export()
	}
	return native.New(native.KindPosition, map[string]any{
		"units": p.Units.Export(),
		"cost":  cost,
	})
}

// Inventory is an ordered list of positions. The native inventory mimics
// a mapping but its underlying data is the position list, which this type
// mirrors directly.
type Inventory []Position

// ParseInventory builds an Inventory from its native record.
func ParseInventory(rec *native.Record) (Inventory, error) {
	if err := expectKind(rec, native.KindInventory); err != nil {
		return nil, err
	}
	return parseInventoryAt(rec, string(native.KindInventory))
}

func parseInventoryAt(rec *native.Record, path string) (Inventory, error) {
	b := body{rec: rec, path: path}
	raw, err := b.anySlice("positions")
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	inv := make(Inventory, 0, len(raw))
	for i, v := range raw {
		posRec, ok := v.(*native.Record)
		if !ok || posRec.Kind != native.KindPosition {
			return nil, &ValidationError{
				Path: elemPath(b.at("positions"), i),
				Msg:  "expected Position record",
			}
		}
		pos, err := parsePositionAt(posRec, elemPath(b.at("positions"), i))
		if err != nil {
			return nil, err
		}
		inv = append(inv, *pos)
	}
	return inv, nil
}

// Kind returns the native kind mirrored by Inventory.
func (inv Inventory) Kind() native.Kind { return native.KindInventory }

// Export reconstructs the native inventory record.
func (inv Inventory) Export() *native.Record {
	var positions any
	if inv != nil {
		ps := make([]any, len(inv))
		for i := range inv {
			ps[i] = inv[i].Export()
		}
		positions = ps
	}
	return native.New(native.KindInventory, map[string]any{"positions": positions})
}

// SplitCurrencies groups the positions by the currency of their units,
// preserving position order within each group.
func (inv Inventory) SplitCurrencies() map[string]Inventory {
	split := map[string]Inventory{}
	for _, pos := range inv {
		cur := ""
		if pos.Units.Currency != nil {
			cur = *pos.Units.Currency
		}
		split[cur] = append(split[cur], pos)
	}
	return split
}

func elemPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func optDecValue(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return *d
}

func optStrValue(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func optDateValue(d *native.Date) any {
	if d == nil {
		return nil
	}
	return *d
}

func optBoolValue(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}
