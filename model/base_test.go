package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beanbridge-dev/beanbridge/native"
)

func TestDeriveIDDeterministic(t *testing.T) {
	a, err := ParseOpen(openRec("2022-01-01", "Assets:Bank", 4))
	require.NoError(t, err)
	b, err := ParseOpen(openRec("2022-06-01", "Assets:Other", 4))
	require.NoError(t, err)

	// The id depends only on filename and line number.
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, a.ID, b.ID)

	c, err := ParseOpen(openRec("2022-01-01", "Assets:Bank", 5))
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, c.ID)
}

func TestDeriveIDAbsentMeta(t *testing.T) {
	rec := openRec("2022-01-01", "Assets:Bank", 4)
	rec.Body["meta"] = nil

	d, err := ParseOpen(rec)
	require.NoError(t, err)
	assert.Empty(t, d.ID)
	assert.Nil(t, d.Meta)
}

func TestDeriveIDPartialMeta(t *testing.T) {
	rec := openRec("2022-01-01", "Assets:Bank", 4)
	rec.Body["meta"] = map[string]any{"filename": "ledger.beancount"}

	d, err := ParseOpen(rec)
	require.NoError(t, err)
	assert.Empty(t, d.ID)
}

func TestMetaSplitsKnownKeys(t *testing.T) {
	rec := openRec("2022-01-01", "Assets:Bank", 4)
	rec.Body["meta"] = map[string]any{
		"filename": "ledger.beancount",
		"lineno":   4,
		"note":     "opening balances",
	}

	d, err := ParseOpen(rec)
	require.NoError(t, err)
	require.NotNil(t, d.Meta)
	assert.Equal(t, "ledger.beancount", *d.Meta.Filename)
	assert.Equal(t, 4, *d.Meta.Lineno)
	assert.Equal(t, map[string]any{"note": "opening balances"}, d.Meta.Extra)

	assert.Equal(t, rec, d.Export())
}

func TestMetaDropsMissingTolerance(t *testing.T) {
	rec := openRec("2022-01-01", "Assets:Bank", 4)
	rec.Body["meta"] = map[string]any{
		"filename": "ledger.beancount",
		"lineno":   4,
		"__tolerances__": map[string]decimal.Decimal{
			"USD":             dec("0.005"),
			native.MissingKey: dec("0.5"),
		},
	}

	d, err := ParseOpen(rec)
	require.NoError(t, err)
	assert.Equal(t, map[string]decimal.Decimal{"USD": dec("0.005")}, d.Meta.Tolerances)

	exported := d.Export().Field("meta").(map[string]any)
	tols := exported["__tolerances__"].(map[string]decimal.Decimal)
	assert.NotContains(t, tols, native.MissingKey)
}

func TestMetaJSONFlattened(t *testing.T) {
	m := &Meta{
		Filename:   strp("ledger.beancount"),
		Lineno:     intp(4),
		Tolerances: map[string]decimal.Decimal{"USD": dec("0.005")},
		Extra:      map[string]any{"note": "hello"},
	}

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Equal(t, "ledger.beancount", flat["filename"])
	assert.Equal(t, float64(4), flat["lineno"])
	assert.Equal(t, "hello", flat["note"])
	assert.Contains(t, flat, "__tolerances__")

	var back Meta
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, *m.Filename, *back.Filename)
	assert.Equal(t, *m.Lineno, *back.Lineno)
	assert.True(t, m.Tolerances["USD"].Equal(back.Tolerances["USD"]))
	assert.Equal(t, m.Extra, back.Extra)
}

func TestParseBaseBadDate(t *testing.T) {
	rec := openRec("2022-01-01", "Assets:Bank", 4)
	rec.Body["date"] = "2022-01-01"

	_, err := ParseOpen(rec)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Open.date", verr.Path)
}
