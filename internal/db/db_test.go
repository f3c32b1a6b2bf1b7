package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	database, err := Open(filepath.Join(t.TempDir(), "inventory.sqlite3"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, Migrate(ctx, database))
	require.NoError(t, Migrate(ctx, database))

	version, err := SchemaVersion(ctx, database)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
}

func TestSchemaHasRestockColumns(t *testing.T) {
	database := NewTestDB(t)

	_, err := database.Exec(
		`INSERT INTO inventory_items (name, quantity, price, product_id, first_entry_date)
		 VALUES ('Widget', 1, '1.00', 7, CURRENT_TIMESTAMP)`,
	)
	require.NoError(t, err)

	var count int
	var condition string
	err = database.QueryRow(`SELECT restock_count, condition FROM inventory_items`).Scan(&count, &condition)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, "Unknown", condition)
}

func TestSchemaRejectsUnknownCondition(t *testing.T) {
	database := NewTestDB(t)

	_, err := database.Exec(
		`INSERT INTO inventory_items (name, quantity, price, product_id, condition)
		 VALUES ('Widget', 1, '1.00', 7, 'Broken')`,
	)
	assert.Error(t, err)
}

func TestFirstEntryDateIsNullable(t *testing.T) {
	database := NewTestDB(t)

	_, err := database.Exec(
		`INSERT INTO inventory_items (name, quantity, price, product_id) VALUES ('Widget', 1, '1.00', 7)`,
	)
	require.NoError(t, err)

	var first sql.NullString
	require.NoError(t, database.QueryRow(`SELECT first_entry_date FROM inventory_items`).Scan(&first))
	assert.False(t, first.Valid)
}
