package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func validInput() ItemInput {
	return ItemInput{
		Name:         "Widget",
		Description:  "A small widget",
		Quantity:     intPtr(10),
		Price:        decimal.NewNullDecimal(decimal.RequireFromString("12.50")),
		ProductID:    intPtr(42),
		RestockLevel: intPtr(3),
		Condition:    ConditionNew,
	}
}

func TestValidCondition(t *testing.T) {
	for _, c := range Conditions {
		assert.True(t, ValidCondition(c), c)
	}
	assert.False(t, ValidCondition("new"))
	assert.False(t, ValidCondition(""))
	assert.False(t, ValidCondition("Broken"))
}

func TestItemInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *ItemInput)
		wantErr string
	}{
		{"valid", func(in *ItemInput) {}, ""},
		{"empty condition", func(in *ItemInput) { in.Condition = "" }, ""},
		{"no restock level", func(in *ItemInput) { in.RestockLevel = nil }, ""},
		{"blank name", func(in *ItemInput) { in.Name = "  " }, "name is required"},
		{"null quantity", func(in *ItemInput) { in.Quantity = nil }, "quantity must be an integer"},
		{"negative quantity", func(in *ItemInput) { in.Quantity = intPtr(-1) }, "quantity must not be negative"},
		{"null price", func(in *ItemInput) { in.Price = decimal.NullDecimal{} }, "price must be a decimal number"},
		{"negative price", func(in *ItemInput) {
			in.Price = decimal.NewNullDecimal(decimal.NewFromInt(-1))
		}, "price must not be negative"},
		{"null product id", func(in *ItemInput) { in.ProductID = nil }, "product_id must be an integer"},
		{"negative restock", func(in *ItemInput) { in.RestockLevel = intPtr(-2) }, "restock_level must not be negative"},
		{"bad condition", func(in *ItemInput) { in.Condition = "Broken" }, `invalid condition "Broken"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			err := in.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestItemInputNullNumbersEncodeAsNull(t *testing.T) {
	in := ItemInput{Name: "Widget", Condition: ConditionUnknown}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "Widget",
		"description": "",
		"quantity": null,
		"price": null,
		"product_id": null,
		"restock_level": null,
		"condition": "Unknown"
	}`, string(data))
}
