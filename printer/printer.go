// Package printer renders directive models back into the accounting
// engine's own file syntax, so the emitted text can be loaded by the
// engine again.
//
// Rendering is a pure function of the directive's fields: dates use the
// canonical "YYYY-MM-DD" form, amounts render as "<number> <currency>",
// absent optional fields are omitted, and metadata renders as indented
// "key: value" lines after the primary line. The engine-populated
// filename, line number and tolerance metadata never appear in rendered
// text.
package printer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/beanbridge-dev/beanbridge/model"
	"github.com/beanbridge-dev/beanbridge/native"
)

const (
	metaIndent        = "  "
	postingIndent     = "  "
	postingMetaIndent = "    "
)

// Format renders a directive model as engine syntax, ending with a
// newline. Models outside the directive set yield an
// UnsupportedKindError.
func Format(m model.Model) (string, error) {
	var b strings.Builder
	switch d := m.(type) {
	case *model.Balance:
		writeHeader(&b, d.Header(), "balance "+d.Account+" "+balanceAmount(d))
	case *model.Close:
		writeHeader(&b, d.Header(), "close "+d.Account)
	case *model.Commodity:
		writeHeader(&b, d.Header(), "commodity "+d.Currency)
	case *model.Custom:
		writeHeader(&b, d.Header(), "custom "+customValues(d))
	case *model.Document:
		writeHeader(&b, d.Header(), "document "+d.Account+" "+quote(d.Filename)+tagsLinks(d.Tags, d.Links))
	case *model.Event:
		writeHeader(&b, d.Header(), "event "+quote(d.Type)+" "+quote(d.Description))
	case *model.Note:
		writeHeader(&b, d.Header(), "note "+d.Account+" "+quote(d.Comment))
	case *model.Open:
		writeHeader(&b, d.Header(), openBody(d))
	case *model.Pad:
		writeHeader(&b, d.Header(), "pad "+d.Account+" "+d.SourceAccount)
	case *model.Price:
		writeHeader(&b, d.Header(), "price "+d.Currency+" "+amount(&d.Amount))
	case *model.Query:
		writeHeader(&b, d.Header(), "query "+quote(d.Name)+" "+quote(d.QueryString))
	case *model.Transaction:
		writeTransaction(&b, d)
	default:
		return "", &model.UnsupportedKindError{Kind: m.Kind()}
	}
	return b.String(), nil
}

// FormatAll renders each directive in order, separated by blank lines.
func FormatAll(ds model.Directives) (string, error) {
	rendered := make([]string, len(ds))
	for i, d := range ds {
		text, err := Format(d)
		if err != nil {
			return "", err
		}
		rendered[i] = text
	}
	return strings.Join(rendered, "\n"), nil
}

// writeHeader writes the directive's primary line and metadata lines.
func writeHeader(b *strings.Builder, base *model.Base, rest string) {
	b.WriteString(base.Date.String())
	b.WriteByte(' ')
	b.WriteString(rest)
	b.WriteByte('\n')
	writeMeta(b, base.Meta, metaIndent)
}

func writeMeta(b *strings.Builder, m *model.Meta, indent string) {
	if m == nil {
		return
	}
	for _, key := range sortedKeys(m.Extra) {
		b.WriteString(indent)
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(metaValue(m.Extra[key]))
		b.WriteByte('\n')
	}
}

func writePostingMeta(b *strings.Builder, meta map[string]any) {
	for _, key := range sortedKeys(meta) {
		if key == "filename" || key == "lineno" {
			continue
		}
		b.WriteString(postingMetaIndent)
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(metaValue(meta[key]))
		b.WriteByte('\n')
	}
}

func writeTransaction(b *strings.Builder, d *model.Transaction) {
	parts := []string{d.Date.String(), d.Flag}
	if d.Payee != nil {
		parts = append(parts, quote(*d.Payee))
	}
	parts = append(parts, quote(d.Narration))
	header := strings.Join(parts, " ") + tagsLinks(d.Tags, d.Links)
	b.WriteString(header)
	b.WriteByte('\n')
	writeMeta(b, d.Meta, metaIndent)
	for _, p := range d.Postings {
		writePosting(b, &p)
	}
}

func writePosting(b *strings.Builder, p *model.Posting) {
	b.WriteString(postingIndent)
	if p.Flag != nil {
		b.WriteString(*p.Flag)
		b.WriteByte(' ')
	}
	b.WriteString(p.Account)
	if p.Units != nil {
		b.WriteString("  ")
		b.WriteString(amount(p.Units))
	}
	if cost := costText(p); cost != "" {
		b.WriteString(" {" + cost + "}")
	}
	if p.Price != nil {
		b.WriteString(" @ " + amount(p.Price))
	}
	b.WriteByte('\n')
	writePostingMeta(b, p.Meta)
}

// costText renders whichever cost form the posting carries.
func costText(p *model.Posting) string {
	switch {
	case p.Cost != nil:
		parts := []string{p.Cost.Number.String() + " " + p.Cost.Currency, p.Cost.Date.String()}
		if p.Cost.Label != nil {
			parts = append(parts, quote(*p.Cost.Label))
		}
		return strings.Join(parts, ", ")
	case p.CostSpec != nil:
		var parts []string
		if p.CostSpec.NumberPer != nil || p.CostSpec.NumberTotal != nil || p.CostSpec.Currency != nil {
			parts = append(parts, costSpecAmount(p.CostSpec))
		}
		if p.CostSpec.Date != nil {
			parts = append(parts, p.CostSpec.Date.String())
		}
		if p.CostSpec.Label != nil {
			parts = append(parts, quote(*p.CostSpec.Label))
		}
		if p.CostSpec.Merge != nil && *p.CostSpec.Merge {
			parts = append(parts, "*")
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

func costSpecAmount(cs *model.CostSpec) string {
	var parts []string
	if cs.NumberPer != nil {
		parts = append(parts, cs.NumberPer.String())
	}
	if cs.NumberTotal != nil {
		parts = append(parts, "# "+cs.NumberTotal.String())
	}
	if cs.Currency != nil {
		parts = append(parts, *cs.Currency)
	}
	return strings.Join(parts, " ")
}

func openBody(d *model.Open) string {
	body := "open " + d.Account
	if len(d.Currencies) > 0 {
		body += " " + strings.Join(d.Currencies, ",")
	}
	if d.Booking != nil {
		body += " " + quote(string(*d.Booking))
	}
	return body
}

// balanceAmount renders the asserted amount, with the "~ tolerance"
// clause between number and currency when a tolerance is present.
func balanceAmount(d *model.Balance) string {
	if d.Tolerance == nil {
		return amount(&d.Amount)
	}
	var parts []string
	if d.Amount.Number != nil {
		parts = append(parts, d.Amount.Number.String())
	}
	parts = append(parts, "~", d.Tolerance.String())
	if d.Amount.Currency != nil {
		parts = append(parts, *d.Amount.Currency)
	}
	return strings.Join(parts, " ")
}

func customValues(d *model.Custom) string {
	parts := []string{quote(d.Type)}
	for _, v := range d.Values {
		parts = append(parts, metaValue(v))
	}
	return strings.Join(parts, " ")
}

// amount renders "<number> <currency>", omitting absent parts.
func amount(a *model.Amount) string {
	var parts []string
	if a.Number != nil {
		parts = append(parts, a.Number.String())
	}
	if a.Currency != nil {
		parts = append(parts, *a.Currency)
	}
	return strings.Join(parts, " ")
}

// metaValue renders a metadata or custom value in engine syntax: strings
// quoted, booleans as TRUE/FALSE, numbers and dates in canonical form.
func metaValue(v any) string {
	switch x := v.(type) {
	case string:
		return quote(x)
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case decimal.Decimal:
		return x.String()
	case int:
		return strconv.Itoa(x)
	case native.Date:
		return x.String()
	case model.Amount:
		return amount(&x)
	case *model.Amount:
		return amount(x)
	default:
		return fmt.Sprint(x)
	}
}

// tagsLinks renders "#tag" and "^link" suffixes in the order given.
func tagsLinks(tags, links []string) string {
	var b strings.Builder
	for _, t := range tags {
		b.WriteString(" #")
		b.WriteString(t)
	}
	for _, l := range links {
		b.WriteString(" ^")
		b.WriteString(l)
	}
	return b.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
