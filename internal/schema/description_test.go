package schema_test

import (
	"strings"
	"testing"

	"github.com/askbridge/askbridge/internal/schema"
)

func TestDescriptionString(t *testing.T) {
	d := schema.Description{
		Tables: []schema.Table{
			{
				Name: "customer_complaints",
				Columns: []schema.Column{
					{Name: "id", Type: "integer", PrimaryKey: true},
					{Name: "customer_id", Type: "integer", ForeignKey: "customers.id"},
					{Name: "country", Type: "text", Description: "customer country"},
				},
			},
			{
				Name:    "customers",
				Columns: []schema.Column{{Name: "id", Type: "integer", PrimaryKey: true}},
			},
		},
	}

	want := strings.Join([]string{
		"Table: customer_complaints",
		"- id: integer, Primary Key",
		"- customer_id: integer, Foreign Key to customers.id",
		"- country: text -- customer country",
		"",
		"Table: customers",
		"- id: integer, Primary Key",
	}, "\n")

	if got := d.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestDescriptionEmpty(t *testing.T) {
	if !(schema.Description{}).Empty() {
		t.Error("zero Description should be empty")
	}
	if got := (schema.Description{}).String(); got != "" {
		t.Errorf("empty String() = %q", got)
	}

	d := schema.Description{Tables: []schema.Table{{Name: "t"}}}
	if d.Empty() {
		t.Error("Description with a table should not be empty")
	}
}
