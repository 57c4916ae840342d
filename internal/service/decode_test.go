package service

import "testing"

func TestDecodeRoute(t *testing.T) {
	cases := []struct {
		in      string
		want    Route
		wantErr bool
	}{
		{"db", RouteDB, false},
		{"kb", RouteKB, false},
		{"  DB \n", RouteDB, false},
		{`"kb"`, RouteKB, false},
		{"The answer is db.", RouteDB, false},
		{"route: kb", RouteKB, false},
		{"maybe db or kb", "", true},
		{"database", "", true},
		{"", "", true},
		{"I don't know", "", true},
	}

	for _, tc := range cases {
		got, err := decodeRoute(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("decodeRoute(%q) = %q, want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("decodeRoute(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("decodeRoute(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExtractSQLFencedBlock(t *testing.T) {
	in := "Here is the query:\n```sql\nSELECT * FROM customer_complaints\n```\nDone."
	want := "SELECT * FROM customer_complaints"
	if got := extractSQL(in); got != want {
		t.Errorf("extractSQL = %q, want %q", got, want)
	}
}

func TestExtractSQLGenericBlock(t *testing.T) {
	in := "```\nUPDATE customer_complaints SET resolved = true WHERE id = 1;\n```"
	want := "UPDATE customer_complaints SET resolved = true WHERE id = 1"
	if got := extractSQL(in); got != want {
		t.Errorf("extractSQL = %q, want %q", got, want)
	}
}

func TestExtractSQLTaggedBlock(t *testing.T) {
	in := "```postgresql\nSELECT country FROM customer_complaints\n```"
	want := "SELECT country FROM customer_complaints"
	if got := extractSQL(in); got != want {
		t.Errorf("extractSQL = %q, want %q", got, want)
	}
}

func TestExtractSQLRawStatement(t *testing.T) {
	in := "  SELECT count(*) FROM customer_complaints WHERE country LIKE '%PK%';  "
	want := "SELECT count(*) FROM customer_complaints WHERE country LIKE '%PK%'"
	if got := extractSQL(in); got != want {
		t.Errorf("extractSQL = %q, want %q", got, want)
	}
}

func TestExtractSQLNoQuery(t *testing.T) {
	for _, in := range []string{
		"I cannot answer that question.",
		"",
		"The table does not contain that information.",
	} {
		if got := extractSQL(in); got != "" {
			t.Errorf("extractSQL(%q) = %q, want empty", in, got)
		}
	}
}
