package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beanbridge-dev/beanbridge/native"
)

func queryResultFixture() *native.QueryResult {
	return &native.QueryResult{
		Columns: []native.Column{
			{Name: "account", Type: "str"},
			{Name: "balance", Type: "Inventory"},
		},
		Rows: []map[string]any{
			{
				"account": "Assets:Bank",
				"balance": inventoryRec(positionRec("1000.00", "USD", nil)),
			},
			{
				"account": "Expenses:Food",
				"balance": inventoryRec(positionRec("32.50", "USD", nil)),
			},
		},
	}
}

func TestQueryResultRoundTrip(t *testing.T) {
	qr := queryResultFixture()

	result, err := ParseQueryResult(qr)
	require.NoError(t, err)
	require.Len(t, result.Columns, 2)
	assert.Equal(t, "account", result.Columns[0].Name)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, "Assets:Bank", result.Rows[0]["account"])
	assert.IsType(t, Inventory{}, result.Rows[0]["balance"])
	assert.Equal(t, qr, result.Export())
}

func TestQueryResultBadCell(t *testing.T) {
	qr := queryResultFixture()
	qr.Rows[1]["balance"] = native.New(native.KindInventory, map[string]any{
		"positions": []any{"bogus"},
	})

	_, err := ParseQueryResult(qr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `row 1, column "balance"`)
}

func TestRowJSONTagsModels(t *testing.T) {
	result, err := ParseQueryResult(queryResultFixture())
	require.NoError(t, err)

	data, err := json.Marshal(result.Rows[0])
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Equal(t, "Assets:Bank", flat["account"])
}
