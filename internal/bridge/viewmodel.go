package bridge

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/CSCI-GA-2820-SU24-001/inventory/internal/model"
)

// dateLayout formats read-only dates in the form.
const dateLayout = "2006-01-02 15:04:05"

// StatusKind tells the renderer how to present a status message.
type StatusKind string

// Status kinds.
const (
	StatusNone    StatusKind = ""
	StatusInfo    StatusKind = "info"
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Status is the message area shown above the form.
type Status struct {
	Message string
	Kind    StatusKind
}

// Form holds the edit form exactly as the user sees it, as text.
type Form struct {
	ID           string
	Name         string
	Description  string
	Quantity     string
	Price        string
	ProductID    string
	RestockLevel string
	Condition    string

	// Display only; filled from server responses.
	RestockCount    string
	FirstEntryDate  string
	LastRestockDate string
}

// Results is the table produced by the last Search or List All.
type Results struct {
	Items []model.InventoryItem
	// Message replaces the table when there is nothing to show.
	Message string
}

// Filter holds search options that are not part of the edit form. An
// empty Condition matches every condition.
type Filter struct {
	Condition string
}

// ViewModel is everything a renderer needs to draw the console.
type ViewModel struct {
	Form    Form
	Filter  Filter
	Status  Status
	Results Results
}

// EmptyForm returns a blank form with the default condition.
func EmptyForm() Form {
	return Form{Condition: model.ConditionUnknown}
}

// formFromItem renders an item into form text.
func formFromItem(item *model.InventoryItem) Form {
	f := Form{
		ID:           strconv.FormatInt(item.ID, 10),
		Name:         item.Name,
		Description:  item.Description,
		Quantity:     strconv.Itoa(item.Quantity),
		Price:        item.Price.StringFixed(2),
		ProductID:    strconv.Itoa(item.ProductID),
		RestockLevel: strconv.Itoa(item.RestockLevel),
		Condition:    item.Condition,
		RestockCount: strconv.Itoa(item.RestockCount),
	}
	f.FirstEntryDate = formatDate(item.FirstEntryDate)
	f.LastRestockDate = formatDate(item.LastRestockDate)
	return f
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// input coerces the writable fields into a request body. Text that is not
// a number becomes null and is left for the server to reject.
func (f Form) input() model.ItemInput {
	return model.ItemInput{
		Name:         f.Name,
		Description:  f.Description,
		Quantity:     coerceInt(f.Quantity),
		Price:        coerceDecimal(f.Price),
		ProductID:    coerceInt(f.ProductID),
		RestockLevel: coerceInt(f.RestockLevel),
		Condition:    f.Condition,
	}
}

func coerceInt(s string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &v
}

func coerceDecimal(s string) decimal.NullDecimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// clone copies v so callers cannot reach bridge-owned slices.
func (v ViewModel) clone() ViewModel {
	if v.Results.Items != nil {
		v.Results.Items = append([]model.InventoryItem(nil), v.Results.Items...)
	}
	return v
}
