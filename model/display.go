package model

import (
	"github.com/beanbridge-dev/beanbridge/native"
)

// Distribution is a frequency histogram of integer values.
type Distribution struct {
	Hist map[int]int `json:"hist"`
}

// ParseDistribution builds a Distribution from its native record.
func ParseDistribution(rec *native.Record) (*Distribution, error) {
	if err := expectKind(rec, native.KindDistribution); err != nil {
		return nil, err
	}
	b := newBody(rec)
	v := rec.Field("hist")
	hist, ok := v.(map[int]int)
	if v != nil && !ok {
		return nil, b.errf("hist", "expected integer histogram, got %T", v)
	}
	d := &Distribution{}
	if hist != nil {
		d.Hist = make(map[int]int, len(hist))
		for k, n := range hist {
			d.Hist[k] = n
		}
	}
	return d, nil
}

// Kind returns the native kind mirrored by Distribution.
func (d *Distribution) Kind() native.Kind { return native.KindDistribution }

// Export reconstructs the native distribution record.
func (d *Distribution) Export() *native.Record {
	var hist any
	if d.Hist != nil {
		out := make(map[int]int, len(d.Hist))
		for k, n := range d.Hist {
			out[k] = n
		}
		hist = out
	}
	return native.New(native.KindDistribution, map[string]any{"hist": hist})
}

// CurrencyContext tracks how numbers of one currency were written in the
// input file.
type CurrencyContext struct {
	HasSign        bool         `json:"has_sign"`
	IntegerMax     int          `json:"integer_max"`
	FractionalDist Distribution `json:"fractional_dist"`
}

// ParseCurrencyContext builds a CurrencyContext from its native record.
func ParseCurrencyContext(rec *native.Record) (*CurrencyContext, error) {
	if err := expectKind(rec, native.KindCurrencyContext); err != nil {
		return nil, err
	}
	return parseCurrencyContextAt(rec, string(native.KindCurrencyContext))
}

func parseCurrencyContextAt(rec *native.Record, path string) (*CurrencyContext, error) {
	b := body{rec: rec, path: path}
	hasSign, err := b.boolean("has_sign")
	if err != nil {
		return nil, err
	}
	integerMax, err := b.integer("integer_max")
	if err != nil {
		return nil, err
	}
	distRec, err := b.record("fractional_dist", native.KindDistribution)
	if err != nil {
		return nil, err
	}
	dist, err := ParseDistribution(distRec)
	if err != nil {
		return nil, err
	}
	return &CurrencyContext{HasSign: hasSign, IntegerMax: integerMax, FractionalDist: *dist}, nil
}

// Kind returns the native kind mirrored by CurrencyContext.
func (c *CurrencyContext) Kind() native.Kind { return native.KindCurrencyContext }

// Export reconstructs the native currency context record.
func (c *CurrencyContext) Export() *native.Record {
	return native.New(native.KindCurrencyContext, map[string]any{
		"has_sign":        c.HasSign,
		"integer_max":     c.IntegerMax,
		"fractional_dist": c.FractionalDist.Export(),
	})
}

// DisplayContext aggregates per-currency rendering contexts for a whole
// ledger.
type DisplayContext struct {
	CContexts map[string]CurrencyContext `json:"ccontexts"`
	Commas    bool                       `json:"commas"`
}

// ParseDisplayContext builds a DisplayContext from its native record.
func ParseDisplayContext(rec *native.Record) (*DisplayContext, error) {
	if err := expectKind(rec, native.KindDisplayContext); err != nil {
		return nil, err
	}
	b := newBody(rec)
	commas, err := b.boolean("commas")
	if err != nil {
		return nil, err
	}
	raw, err := b.anyMap("ccontexts")
	if err != nil {
		return nil, err
	}
	d := &DisplayContext{Commas: commas}
	if raw != nil {
		d.CContexts = make(map[string]CurrencyContext, len(raw))
	}
	for cur, v := range raw {
		ctxRec, ok := v.(*native.Record)
		if !ok || ctxRec.Kind != native.KindCurrencyContext {
			return nil, b.errf("ccontexts", "entry %q: expected CurrencyContext record", cur)
		}
		ctx, err := parseCurrencyContextAt(ctxRec, b.at("ccontexts")+"."+cur)
		if err != nil {
			return nil, err
		}
		d.CContexts[cur] = *ctx
	}
	return d, nil
}

// Kind returns the native kind mirrored by DisplayContext.
func (d *DisplayContext) Kind() native.Kind { return native.KindDisplayContext }

// Export reconstructs the native display context record.
func (d *DisplayContext) Export() *native.Record {
	var ccontexts any
	if d.CContexts != nil {
		m := make(map[string]any, len(d.CContexts))
		for cur, ctx := range d.CContexts {
			m[cur] = ctx.Export()
		}
		ccontexts = m
	}
	return native.New(native.KindDisplayContext, map[string]any{
		"ccontexts": ccontexts,
		"commas":    d.Commas,
	})
}
