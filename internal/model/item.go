package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is a stocked product line as returned by the service.
type InventoryItem struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Quantity        int             `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	ProductID       int             `json:"product_id"`
	RestockLevel    int             `json:"restock_level"`
	Condition       string          `json:"condition"`
	RestockCount    int             `json:"restock_count"`
	FirstEntryDate  *time.Time      `json:"first_entry_date"`
	LastRestockDate *time.Time      `json:"last_restock_date"`
}

// ItemInput is the writable subset of an InventoryItem.
//
// Numeric fields are nullable: a client that could not coerce user input to a
// number sends null and leaves rejection to the service.
type ItemInput struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Quantity     *int                `json:"quantity"`
	Price        decimal.NullDecimal `json:"price"`
	ProductID    *int                `json:"product_id"`
	RestockLevel *int                `json:"restock_level"`
	Condition    string              `json:"condition"`
}

// Item conditions.
const (
	ConditionUnknown  = "Unknown"
	ConditionNew      = "New"
	ConditionOpenBox  = "Open Box"
	ConditionUsed     = "Used"
	ConditionArchived = "Archived"
)

// Conditions lists every accepted condition in display order.
var Conditions = []string{
	ConditionUnknown,
	ConditionNew,
	ConditionOpenBox,
	ConditionUsed,
	ConditionArchived,
}

// ValidCondition reports whether c is one of Conditions.
func ValidCondition(c string) bool {
	for _, known := range Conditions {
		if c == known {
			return true
		}
	}
	return false
}

// Validate checks an ItemInput before it is written. An empty condition is
// accepted and later stored as ConditionUnknown.
func (in *ItemInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("name is required")
	}
	if in.Quantity == nil {
		return errors.New("quantity must be an integer")
	}
	if *in.Quantity < 0 {
		return errors.New("quantity must not be negative")
	}
	if !in.Price.Valid {
		return errors.New("price must be a decimal number")
	}
	if in.Price.Decimal.IsNegative() {
		return errors.New("price must not be negative")
	}
	if in.ProductID == nil {
		return errors.New("product_id must be an integer")
	}
	if in.RestockLevel != nil && *in.RestockLevel < 0 {
		return errors.New("restock_level must not be negative")
	}
	if in.Condition != "" && !ValidCondition(in.Condition) {
		return fmt.Errorf("invalid condition %q", in.Condition)
	}
	return nil
}

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}
