// Package schema builds read-only projections of the relational store's
// structure for prompt construction. Projections are read fresh on every call;
// nothing here is cached, so concurrent requests never see a stale schema.
package schema

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Inspector introspects a PostgreSQL database through information_schema.
type Inspector struct {
	pool *pgxpool.Pool
}

func NewInspector(pool *pgxpool.Pool) *Inspector {
	return &Inspector{pool: pool}
}

const tablesQuery = `
SELECT table_name
FROM information_schema.tables
WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
ORDER BY table_name`

const columnsQuery = `
SELECT c.column_name,
       c.data_type,
       COALESCE(col_description(format('%I.%I', c.table_schema, c.table_name)::regclass, c.ordinal_position), '')
FROM information_schema.columns c
WHERE c.table_schema = 'public' AND c.table_name = $1
ORDER BY c.ordinal_position`

const primaryKeysQuery = `
SELECT kcu.column_name
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu
  ON tc.constraint_name = kcu.constraint_name
 AND tc.table_schema = kcu.table_schema
WHERE tc.table_schema = 'public'
  AND tc.table_name = $1
  AND tc.constraint_type = 'PRIMARY KEY'`

const foreignKeysQuery = `
SELECT kcu.column_name, ccu.table_name, ccu.column_name
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu
  ON tc.constraint_name = kcu.constraint_name
 AND tc.table_schema = kcu.table_schema
JOIN information_schema.constraint_column_usage ccu
  ON tc.constraint_name = ccu.constraint_name
 AND tc.table_schema = ccu.table_schema
WHERE tc.table_schema = 'public'
  AND tc.table_name = $1
  AND tc.constraint_type = 'FOREIGN KEY'`

// Describe reads the current schema projection from the store.
func (i *Inspector) Describe(ctx context.Context) (Description, error) {
	conn, err := i.pool.Acquire(ctx)
	if err != nil {
		return Description{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, tablesQuery)
	if err != nil {
		return Description{}, fmt.Errorf("list tables: %w", err)
	}
	var tableNames []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return Description{}, fmt.Errorf("scan table name: %w", err)
		}
		tableNames = append(tableNames, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Description{}, fmt.Errorf("list tables: %w", err)
	}

	desc := Description{}
	for _, name := range tableNames {
		table := Table{Name: name}

		colRows, err := conn.Query(ctx, columnsQuery, name)
		if err != nil {
			return Description{}, fmt.Errorf("columns for %q: %w", name, err)
		}
		for colRows.Next() {
			var col Column
			if err := colRows.Scan(&col.Name, &col.Type, &col.Description); err != nil {
				colRows.Close()
				return Description{}, fmt.Errorf("scan column: %w", err)
			}
			table.Columns = append(table.Columns, col)
		}
		colRows.Close()
		if err := colRows.Err(); err != nil {
			return Description{}, fmt.Errorf("columns for %q: %w", name, err)
		}

		pks, err := primaryKeys(ctx, conn, name)
		if err != nil {
			return Description{}, err
		}
		fks, err := foreignKeys(ctx, conn, name)
		if err != nil {
			return Description{}, err
		}
		for idx := range table.Columns {
			if pks[table.Columns[idx].Name] {
				table.Columns[idx].PrimaryKey = true
			}
			if ref, ok := fks[table.Columns[idx].Name]; ok {
				table.Columns[idx].ForeignKey = ref
			}
		}

		desc.Tables = append(desc.Tables, table)
	}

	return desc, nil
}

func primaryKeys(ctx context.Context, conn *pgxpool.Conn, table string) (map[string]bool, error) {
	rows, err := conn.Query(ctx, primaryKeysQuery, table)
	if err != nil {
		return nil, fmt.Errorf("primary keys for %q: %w", table, err)
	}
	defer rows.Close()

	pks := make(map[string]bool)
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return nil, fmt.Errorf("scan primary key: %w", err)
		}
		pks[col] = true
	}
	return pks, rows.Err()
}

func foreignKeys(ctx context.Context, conn *pgxpool.Conn, table string) (map[string]string, error) {
	rows, err := conn.Query(ctx, foreignKeysQuery, table)
	if err != nil {
		return nil, fmt.Errorf("foreign keys for %q: %w", table, err)
	}
	defer rows.Close()

	fks := make(map[string]string)
	for rows.Next() {
		var col, refTable, refCol string
		if err := rows.Scan(&col, &refTable, &refCol); err != nil {
			return nil, fmt.Errorf("scan foreign key: %w", err)
		}
		fks[col] = refTable + "." + refCol
	}
	return fks, rows.Err()
}
