package printer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beanbridge-dev/beanbridge/model"
	"github.com/beanbridge-dev/beanbridge/native"
)

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

func date(s string) native.Date {
	d, err := native.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func base(day string) model.Base {
	return model.Base{Date: date(day)}
}

func format(t *testing.T, m model.Model) string {
	t.Helper()
	text, err := Format(m)
	require.NoError(t, err)
	return text
}

func TestFormatBalance(t *testing.T) {
	d := &model.Balance{
		Base:    base("2022-01-01"),
		Account: "Assets:Bank",
		Amount:  model.NewAmount(dec("1000.00"), "USD"),
	}
	assert.Equal(t, "2022-01-01 balance Assets:Bank 1000.00 USD\n", format(t, d))

	d.Tolerance = decp("0.005")
	assert.Equal(t, "2022-01-01 balance Assets:Bank 1000.00 ~ 0.005 USD\n", format(t, d))
}

func TestFormatBalanceToleranceWithPartialAmount(t *testing.T) {
	d := &model.Balance{
		Base:      base("2022-01-01"),
		Account:   "Assets:Bank",
		Amount:    model.Amount{Currency: strp("USD")},
		Tolerance: decp("0.005"),
	}
	assert.Equal(t, "2022-01-01 balance Assets:Bank ~ 0.005 USD\n", format(t, d))

	d.Amount = model.Amount{Number: decp("1000.00")}
	assert.Equal(t, "2022-01-01 balance Assets:Bank 1000.00 ~ 0.005\n", format(t, d))
}

func TestFormatClose(t *testing.T) {
	d := &model.Close{Base: base("2022-12-31"), Account: "Assets:Bank"}
	assert.Equal(t, "2022-12-31 close Assets:Bank\n", format(t, d))
}

func TestFormatCommodity(t *testing.T) {
	d := &model.Commodity{Base: base("2022-01-01"), Currency: "AAPL"}
	assert.Equal(t, "2022-01-01 commodity AAPL\n", format(t, d))
}

func TestFormatCustom(t *testing.T) {
	d := &model.Custom{
		Base:   base("2022-03-01"),
		Type:   "budget",
		Values: []any{"Expenses:Food", dec("400.00")},
	}
	assert.Equal(t, `2022-03-01 custom "budget" "Expenses:Food" 400.00`+"\n", format(t, d))
}

func TestFormatDocument(t *testing.T) {
	d := &model.Document{
		Base:     base("2022-04-05"),
		Account:  "Assets:Bank",
		Filename: "/statements/2022-04.pdf",
	}
	assert.Equal(t, `2022-04-05 document Assets:Bank "/statements/2022-04.pdf"`+"\n", format(t, d))

	d.Tags = []string{"statement"}
	d.Links = []string{"apr"}
	assert.Equal(t, `2022-04-05 document Assets:Bank "/statements/2022-04.pdf" #statement ^apr`+"\n", format(t, d))
}

func TestFormatEvent(t *testing.T) {
	d := &model.Event{Base: base("2022-05-01"), Type: "location", Description: "Berlin"}
	assert.Equal(t, `2022-05-01 event "location" "Berlin"`+"\n", format(t, d))
}

func TestFormatNote(t *testing.T) {
	d := &model.Note{Base: base("2022-06-01"), Account: "Assets:Bank", Comment: "called the bank"}
	assert.Equal(t, `2022-06-01 note Assets:Bank "called the bank"`+"\n", format(t, d))
}

func TestFormatOpen(t *testing.T) {
	d := &model.Open{Base: base("2022-01-01"), Account: "Assets:Bank"}
	assert.Equal(t, "2022-01-01 open Assets:Bank\n", format(t, d))

	booking := model.BookingFIFO
	d.Currencies = []string{"USD", "EUR"}
	d.Booking = &booking
	assert.Equal(t, `2022-01-01 open Assets:Bank USD,EUR "FIFO"`+"\n", format(t, d))
}

func TestFormatPad(t *testing.T) {
	d := &model.Pad{Base: base("2022-01-02"), Account: "Assets:Bank", SourceAccount: "Equity:Opening-Balances"}
	assert.Equal(t, "2022-01-02 pad Assets:Bank Equity:Opening-Balances\n", format(t, d))
}

func TestFormatPrice(t *testing.T) {
	d := &model.Price{
		Base:     base("2022-07-01"),
		Currency: "AAPL",
		Amount:   model.NewAmount(dec("141.33"), "USD"),
	}
	assert.Equal(t, "2022-07-01 price AAPL 141.33 USD\n", format(t, d))
}

func TestFormatQuery(t *testing.T) {
	d := &model.Query{Base: base("2022-01-01"), Name: "cash", QueryString: "SELECT account"}
	assert.Equal(t, `2022-01-01 query "cash" "SELECT account"`+"\n", format(t, d))
}

func TestFormatTransactionMinimal(t *testing.T) {
	usd := "USD"
	out := dec("-32.50")
	in := dec("32.50")
	d := &model.Transaction{
		Base:      base("2022-02-14"),
		Flag:      "*",
		Narration: "Groceries",
		Postings: []model.Posting{
			{Account: "Expenses:Food", Units: &model.Amount{Number: &in, Currency: &usd}},
			{Account: "Assets:Bank", Units: &model.Amount{Number: &out, Currency: &usd}},
		},
	}

	text := format(t, d)
	want := `2022-02-14 * "Groceries"
  Expenses:Food  32.50 USD
  Assets:Bank  -32.50 USD
`
	assert.Equal(t, want, text)
	assert.Len(t, strings.Split(strings.TrimRight(text, "\n"), "\n"), 3)
}

func TestFormatTransactionMetaAddsOneLine(t *testing.T) {
	in := dec("32.50")
	usd := "USD"
	d := &model.Transaction{
		Base:      base("2022-02-14"),
		Flag:      "*",
		Narration: "Groceries",
		Postings: []model.Posting{
			{Account: "Expenses:Food", Units: &model.Amount{Number: &in, Currency: &usd}},
		},
	}

	before := strings.Count(format(t, d), "\n")
	d.Meta = &model.Meta{Extra: map[string]any{"category": "food"}}
	after := format(t, d)
	assert.Equal(t, before+1, strings.Count(after, "\n"))
	assert.Contains(t, after, `  category: "food"`)
}

func TestFormatTransactionFull(t *testing.T) {
	in := dec("2")
	usd := "USD"
	aapl := "AAPL"
	price := dec("141.33")
	d := &model.Transaction{
		Base:      base("2022-02-14"),
		Flag:      "*",
		Payee:     strp("Broker"),
		Narration: "Buy shares",
		Tags:      []string{"invest"},
		Links:     []string{"trade-9"},
		Postings: []model.Posting{
			{
				Account: "Assets:Brokerage",
				Units:   &model.Amount{Number: &in, Currency: &aapl},
				Cost: &model.Cost{
					Number:   dec("520.50"),
					Currency: "USD",
					Date:     date("2021-03-15"),
				},
				Price: &model.Amount{Number: &price, Currency: &usd},
				Meta:  map[string]any{"lot": "a", "filename": "x", "lineno": 3},
			},
		},
	}

	text := format(t, d)
	want := `2022-02-14 * "Broker" "Buy shares" #invest ^trade-9
  Assets:Brokerage  2 AAPL {520.50 USD, 2021-03-15} @ 141.33 USD
    lot: "a"
`
	assert.Equal(t, want, text)
}

func TestFormatSkipsEnginePopulatedMeta(t *testing.T) {
	d := &model.Close{Base: base("2022-12-31"), Account: "Assets:Bank"}
	d.Meta = &model.Meta{
		Filename:   strp("ledger.beancount"),
		Lineno:     intPtr(20),
		Tolerances: map[string]decimal.Decimal{"USD": dec("0.005")},
	}
	assert.Equal(t, "2022-12-31 close Assets:Bank\n", format(t, d))
}

func intPtr(n int) *int { return &n }

func TestFormatMetaKeysSorted(t *testing.T) {
	d := &model.Note{Base: base("2022-06-01"), Account: "Assets:Bank", Comment: "hi"}
	d.Meta = &model.Meta{Extra: map[string]any{"b": "two", "a": "one"}}

	want := `2022-06-01 note Assets:Bank "hi"
  a: "one"
  b: "two"
`
	assert.Equal(t, want, format(t, d))
}

func TestFormatUnsupportedKind(t *testing.T) {
	a := model.NewAmount(dec("1"), "USD")

	_, err := Format(&a)
	var kerr *model.UnsupportedKindError
	require.ErrorAs(t, err, &kerr)
	assert.Equal(t, native.KindAmount, kerr.Kind)
}

func TestFormatAll(t *testing.T) {
	ds := model.Directives{
		&model.Open{Base: base("2022-01-01"), Account: "Assets:Bank"},
		&model.Close{Base: base("2022-12-31"), Account: "Assets:Bank"},
	}

	text, err := FormatAll(ds)
	require.NoError(t, err)
	want := "2022-01-01 open Assets:Bank\n\n2022-12-31 close Assets:Bank\n"
	assert.Equal(t, want, text)
}
