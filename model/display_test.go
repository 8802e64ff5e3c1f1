package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beanbridge-dev/beanbridge/native"
)

func distributionRec(hist map[int]int) *native.Record {
	var h any
	if hist != nil {
		h = hist
	}
	return native.New(native.KindDistribution, map[string]any{"hist": h})
}

func currencyContextRec(hasSign bool, integerMax int) *native.Record {
	return native.New(native.KindCurrencyContext, map[string]any{
		"has_sign":        hasSign,
		"integer_max":     integerMax,
		"fractional_dist": distributionRec(map[int]int{2: 10}),
	})
}

func TestDistributionRoundTrip(t *testing.T) {
	rec := distributionRec(map[int]int{0: 3, 2: 17})

	d, err := ParseDistribution(rec)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{0: 3, 2: 17}, d.Hist)
	assert.Equal(t, rec, d.Export())
}

func TestDistributionNilHist(t *testing.T) {
	rec := distributionRec(nil)

	d, err := ParseDistribution(rec)
	require.NoError(t, err)
	assert.Nil(t, d.Hist)
	assert.Equal(t, rec, d.Export())
}

func TestCurrencyContextRoundTrip(t *testing.T) {
	rec := currencyContextRec(true, 5)

	c, err := ParseCurrencyContext(rec)
	require.NoError(t, err)
	assert.True(t, c.HasSign)
	assert.Equal(t, 5, c.IntegerMax)
	assert.Equal(t, map[int]int{2: 10}, c.FractionalDist.Hist)
	assert.Equal(t, rec, c.Export())
}

func TestDisplayContextRoundTrip(t *testing.T) {
	rec := native.New(native.KindDisplayContext, map[string]any{
		"commas": true,
		"ccontexts": map[string]any{
			"USD": currencyContextRec(true, 5),
			"EUR": currencyContextRec(false, 4),
		},
	})

	d, err := ParseDisplayContext(rec)
	require.NoError(t, err)
	assert.True(t, d.Commas)
	require.Len(t, d.CContexts, 2)
	assert.Equal(t, 4, d.CContexts["EUR"].IntegerMax)
	assert.Equal(t, rec, d.Export())
}

func TestDisplayContextNilContexts(t *testing.T) {
	rec := native.New(native.KindDisplayContext, map[string]any{
		"commas":    false,
		"ccontexts": nil,
	})

	d, err := ParseDisplayContext(rec)
	require.NoError(t, err)
	assert.Nil(t, d.CContexts)
	assert.Equal(t, rec, d.Export())
}

func TestDisplayContextBadEntry(t *testing.T) {
	rec := native.New(native.KindDisplayContext, map[string]any{
		"commas":    false,
		"ccontexts": map[string]any{"USD": "not a context"},
	})

	_, err := ParseDisplayContext(rec)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "DisplayContext.ccontexts", verr.Path)
}
