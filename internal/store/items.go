package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/CSCI-GA-2820-SU24-001/inventory/internal/model"
)

// ErrAlreadyArchived is returned by ArchiveItem for an item that is already
// in the archived condition.
var ErrAlreadyArchived = errors.New("item is already archived")

// ItemFilter narrows ListItems. Zero-valued fields match every item.
type ItemFilter struct {
	ID        int64
	Name      string
	Condition string
}

const itemColumns = `id, name, description, quantity, price, product_id, restock_level,
	condition, restock_count, first_entry_date, last_restock_date`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*model.InventoryItem, error) {
	item := &model.InventoryItem{}
	var description sql.NullString
	err := row.Scan(
		&item.ID, &item.Name, &description, &item.Quantity, &item.Price, &item.ProductID,
		&item.RestockLevel, &item.Condition, &item.RestockCount, &item.FirstEntryDate, &item.LastRestockDate,
	)
	if err != nil {
		return nil, err
	}
	item.Description = description.String
	return item, nil
}

// writeArgs returns the column values shared by inserts and updates, with
// defaults applied for the optional fields.
func writeArgs(in model.ItemInput) (condition string, restockLevel int, price string) {
	condition = in.Condition
	if condition == "" {
		condition = model.ConditionUnknown
	}
	if in.RestockLevel != nil {
		restockLevel = *in.RestockLevel
	}
	return condition, restockLevel, in.Price.Decimal.Round(2).StringFixed(2)
}

// CreateItem inserts a validated item and returns it as stored.
func CreateItem(ctx context.Context, db *sql.DB, in model.ItemInput) (*model.InventoryItem, error) {
	condition, restockLevel, price := writeArgs(in)
	result, err := db.ExecContext(ctx,
		`INSERT INTO inventory_items
		     (name, description, quantity, price, product_id, restock_level, condition, first_entry_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		in.Name, in.Description, *in.Quantity, price, *in.ProductID, restockLevel, condition,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, or nil if it does not exist.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.InventoryItem, error) {
	item, err := scanItem(db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM inventory_items WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns every item matching the filter, ordered by ID.
func ListItems(ctx context.Context, db *sql.DB, f ItemFilter) ([]model.InventoryItem, error) {
	var where []string
	var args []any
	if f.ID != 0 {
		where = append(where, "id = ?")
		args = append(args, f.ID)
	}
	if f.Name != "" {
		where = append(where, "name = ?")
		args = append(args, f.Name)
	}
	if f.Condition != "" {
		where = append(where, "condition = ?")
		args = append(args, f.Condition)
	}

	query := `SELECT ` + itemColumns + ` FROM inventory_items`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateItem replaces an item's writable fields and returns the stored
// result, or nil if the item does not exist. Raising the quantity counts as
// a restock.
func UpdateItem(ctx context.Context, db *sql.DB, id int64, in model.ItemInput) (*model.InventoryItem, error) {
	condition, restockLevel, price := writeArgs(in)
	// Right-hand sides see the row as it was before the update.
	result, err := db.ExecContext(ctx,
		`UPDATE inventory_items SET
		     name = ?, description = ?, price = ?, product_id = ?, restock_level = ?, condition = ?,
		     restock_count = restock_count + CASE WHEN ? > quantity THEN 1 ELSE 0 END,
		     last_restock_date = CASE WHEN ? > quantity THEN CURRENT_TIMESTAMP ELSE last_restock_date END,
		     quantity = ?
		 WHERE id = ?`,
		in.Name, in.Description, price, *in.ProductID, restockLevel, condition,
		*in.Quantity, *in.Quantity, *in.Quantity, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}
	return getAffected(ctx, db, result, id)
}

// DeleteItem removes an item. Deleting a missing item is not an error.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM inventory_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// DecrementItem lowers an item's quantity by one, never below zero.
func DecrementItem(ctx context.Context, db *sql.DB, id int64) (*model.InventoryItem, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE inventory_items SET quantity = MAX(quantity - 1, 0) WHERE id = ?`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("decrementing item: %w", err)
	}
	return getAffected(ctx, db, result, id)
}

// ArchiveItem moves an item to the archived condition.
func ArchiveItem(ctx context.Context, db *sql.DB, id int64) (*model.InventoryItem, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE inventory_items SET condition = ? WHERE id = ? AND condition != ?`,
		model.ConditionArchived, id, model.ConditionArchived,
	)
	if err != nil {
		return nil, fmt.Errorf("archiving item: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("archiving item: %w", err)
	}
	if n == 0 {
		item, err := GetItem(ctx, db, id)
		if err != nil || item == nil {
			return nil, err
		}
		return nil, ErrAlreadyArchived
	}
	return GetItem(ctx, db, id)
}

// getAffected re-reads the item touched by result, or returns nil if no
// row was affected.
func getAffected(ctx context.Context, db *sql.DB, result sql.Result, id int64) (*model.InventoryItem, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return GetItem(ctx, db, id)
}
