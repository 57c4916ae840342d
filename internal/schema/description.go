package schema

import (
	"fmt"
	"strings"
)

// Column is one column of a table projection.
type Column struct {
	Name        string
	Type        string
	Description string
	PrimaryKey  bool
	ForeignKey  string // "table.column" when set
}

// Table is one table projection.
type Table struct {
	Name    string
	Columns []Column
}

// Description is a point-in-time projection of the store's structure.
type Description struct {
	Tables []Table
}

// Empty reports whether the projection holds no tables.
func (d Description) Empty() bool { return len(d.Tables) == 0 }

// String renders the projection for embedding in an LLM prompt:
//
//	Table: customer_complaints
//	- id: integer, Primary Key
//	- country: text -- customer country
func (d Description) String() string {
	var sb strings.Builder
	for _, t := range d.Tables {
		fmt.Fprintf(&sb, "Table: %s\n", t.Name)
		for _, c := range t.Columns {
			fmt.Fprintf(&sb, "- %s: %s", c.Name, c.Type)
			if c.PrimaryKey {
				sb.WriteString(", Primary Key")
			}
			if c.ForeignKey != "" {
				fmt.Fprintf(&sb, ", Foreign Key to %s", c.ForeignKey)
			}
			if c.Description != "" {
				fmt.Fprintf(&sb, " -- %s", c.Description)
			}
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	return strings.TrimRight(sb.String(), "\n")
}
