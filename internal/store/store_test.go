package store_test

import (
	"testing"

	"github.com/askbridge/askbridge/internal/store"
)

func TestIsReadQuery(t *testing.T) {
	cases := []struct {
		sql  string
		want bool
	}{
		{"SELECT * FROM customer_complaints", true},
		{"select 1", true},
		{"Select count(*) FROM t", true},
		{"  \n\tSELECT id FROM t", true},
		{"INSERT INTO t VALUES (1)", false},
		{"UPDATE t SET a = 1", false},
		{"DELETE FROM t", false},
		{"DROP TABLE t", false},
		{"selec", false},
		{"", false},
		{"   ", false},
		// Lexical detection: a CTE that only reads is still treated as a write
		// and routed through a transaction, which is harmless.
		{"WITH x AS (SELECT 1) SELECT * FROM x", false},
	}

	for _, tc := range cases {
		if got := store.IsReadQuery(tc.sql); got != tc.want {
			t.Errorf("IsReadQuery(%q) = %v, want %v", tc.sql, got, tc.want)
		}
	}
}
