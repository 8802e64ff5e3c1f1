package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beanbridge-dev/beanbridge/native"
)

func TestMarshalModelDiscriminator(t *testing.T) {
	d, err := ParseClose(closeRec("2022-12-31", "Assets:Bank", 20))
	require.NoError(t, err)

	data, err := MarshalModel(d)
	require.NoError(t, err)

	var probe map[string]any
	require.NoError(t, json.Unmarshal(data, &probe))
	assert.Equal(t, "Close", probe["ty"])
	assert.Equal(t, "Assets:Bank", probe["account"])
}

func TestUnmarshalModelRoundTrip(t *testing.T) {
	d, err := ParseTransaction(txnRec("2022-02-14", "Groceries", 100,
		postingRec("Expenses:Food", "32.50", "USD"),
		postingRec("Assets:Bank", "-32.50", "USD"),
	))
	require.NoError(t, err)

	data, err := MarshalModel(d)
	require.NoError(t, err)

	m, err := UnmarshalModel(data)
	require.NoError(t, err)
	back, ok := m.(*Transaction)
	require.True(t, ok)
	assert.Equal(t, d.Export(), back.Export())
}

func TestUnmarshalModelUnknownKind(t *testing.T) {
	_, err := UnmarshalModel([]byte(`{"ty":"Ledger"}`))
	var kerr *UnsupportedKindError
	require.ErrorAs(t, err, &kerr)
	assert.Equal(t, native.Kind("Ledger"), kerr.Kind)
}

func TestUnmarshalModelValidates(t *testing.T) {
	_, err := UnmarshalModel([]byte(`{"ty":"Open","date":"2022-01-01"}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Path, "Account")
}

func TestUnmarshalModelRejectsBadBooking(t *testing.T) {
	data := []byte(`{"ty":"Open","date":"2022-01-01","account":"Assets:Bank","booking":"NEWEST"}`)

	_, err := UnmarshalModel(data)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Msg, "oneof")
}

func TestDecimalJSONExactness(t *testing.T) {
	a := NewAmount(dec("0.1"), "USD")

	data, err := json.Marshal(&a)
	require.NoError(t, err)
	assert.JSONEq(t, `{"number":"0.1","currency":"USD"}`, string(data))

	var back Amount
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Number.Equal(dec("0.1")))
}
