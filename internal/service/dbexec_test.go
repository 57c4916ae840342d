package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/askbridge/askbridge/internal/service"
	"github.com/askbridge/askbridge/internal/store"
)

func newDBExecutor(llm *scriptedLLM, st *fakeStore) *service.DBExecutor {
	return service.NewDBExecutor(
		llm,
		&fakeSchema{desc: complaintsSchema()},
		st,
		service.NewEnricher(testSynonyms()),
	)
}

func TestDBExecutorReadSuccess(t *testing.T) {
	llm := &scriptedLLM{replies: []string{
		"```sql\nSELECT name, age FROM customer_complaints\n```",
		"Most complainants are in their thirties.",
	}}
	st := &fakeStore{res: &store.Result{
		Read:    true,
		Columns: []string{"name", "age"},
		Rows: []map[string]interface{}{
			{"name": "Alice", "age": 30},
		},
	}}

	res := newDBExecutor(llm, st).Run(context.Background(), "Who complained?")

	if !res.OK {
		t.Fatalf("expected success, got error %q", res.ErrorMessage)
	}
	if res.GeneratedQuery != "SELECT name, age FROM customer_complaints" {
		t.Errorf("unexpected generated query %q", res.GeneratedQuery)
	}
	if st.gotSQL != res.GeneratedQuery {
		t.Errorf("store received %q, want %q", st.gotSQL, res.GeneratedQuery)
	}
	want := "name, age\nname: Alice, age: 30"
	if res.FormattedResult != want {
		t.Errorf("FormattedResult = %q, want %q", res.FormattedResult, want)
	}
	if res.NarrativeAnswer != "Most complainants are in their thirties." {
		t.Errorf("NarrativeAnswer = %q", res.NarrativeAnswer)
	}
	if len(res.RawRows) != 1 {
		t.Errorf("RawRows length = %d, want 1", len(res.RawRows))
	}
	if llm.calls != 2 {
		t.Errorf("LLM calls = %d, want 2 (generate + summarize)", llm.calls)
	}
}

func TestDBExecutorEmptyResultSkipsSummarization(t *testing.T) {
	llm := &scriptedLLM{replies: []string{
		"SELECT * FROM customer_complaints WHERE id = -1",
	}}
	st := &fakeStore{res: &store.Result{
		Read:    true,
		Columns: []string{"id"},
		Rows:    []map[string]interface{}{},
	}}

	res := newDBExecutor(llm, st).Run(context.Background(), "Anything from Mars?")

	if !res.OK {
		t.Fatalf("expected success, got error %q", res.ErrorMessage)
	}
	if res.FormattedResult != service.NoResultsMessage {
		t.Errorf("FormattedResult = %q, want %q", res.FormattedResult, service.NoResultsMessage)
	}
	if res.NarrativeAnswer != service.NoResultsMessage {
		t.Errorf("NarrativeAnswer = %q, want %q", res.NarrativeAnswer, service.NoResultsMessage)
	}
	if llm.calls != 1 {
		t.Errorf("LLM calls = %d, want 1 (no summarization for empty set)", llm.calls)
	}
}

func TestDBExecutorSummarizationFailureFallsBack(t *testing.T) {
	llm := &scriptedLLM{
		replies: []string{"SELECT country FROM customer_complaints", ""},
		errs:    []error{nil, errors.New("model overloaded")},
	}
	st := &fakeStore{res: &store.Result{
		Read:    true,
		Columns: []string{"country"},
		Rows: []map[string]interface{}{
			{"country": "PK"},
		},
	}}

	res := newDBExecutor(llm, st).Run(context.Background(), "Which countries?")

	if !res.OK {
		t.Fatalf("summarization failure must not fail the request: %q", res.ErrorMessage)
	}
	if res.NarrativeAnswer != res.FormattedResult {
		t.Errorf("NarrativeAnswer = %q, want fallback to %q", res.NarrativeAnswer, res.FormattedResult)
	}
}

func TestDBExecutorGenerationFailure(t *testing.T) {
	llm := &scriptedLLM{errs: []error{errors.New("connection reset")}}
	st := &fakeStore{}

	res := newDBExecutor(llm, st).Run(context.Background(), "How many complaints?")

	if res.OK {
		t.Fatal("expected failure")
	}
	if !strings.HasPrefix(res.ErrorMessage, "Failed to generate SQL: ") {
		t.Errorf("ErrorMessage = %q", res.ErrorMessage)
	}
	if st.calls != 0 {
		t.Errorf("store must not be called after generation failure, got %d calls", st.calls)
	}
}

func TestDBExecutorUnparseableReply(t *testing.T) {
	llm := &scriptedLLM{replies: []string{"I am unable to help with that."}}
	st := &fakeStore{}

	res := newDBExecutor(llm, st).Run(context.Background(), "How many complaints?")

	if res.OK {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.ErrorMessage, "no parseable query") {
		t.Errorf("ErrorMessage = %q", res.ErrorMessage)
	}
	if st.calls != 0 {
		t.Errorf("store must not be called, got %d calls", st.calls)
	}
}

func TestDBExecutorExecutionFailureKeepsQuery(t *testing.T) {
	llm := &scriptedLLM{replies: []string{"SELECT missing FROM customer_complaints"}}
	st := &fakeStore{err: errors.New(`column "missing" does not exist`)}

	res := newDBExecutor(llm, st).Run(context.Background(), "What is missing?")

	if res.OK {
		t.Fatal("expected failure")
	}
	if !strings.HasPrefix(res.ErrorMessage, "Error executing SQL: ") {
		t.Errorf("ErrorMessage = %q", res.ErrorMessage)
	}
	if res.GeneratedQuery != "SELECT missing FROM customer_complaints" {
		t.Errorf("GeneratedQuery = %q, want the failing statement kept", res.GeneratedQuery)
	}
	if res.RawRows == nil || len(res.RawRows) != 0 {
		t.Errorf("RawRows = %v, want empty non-nil slice", res.RawRows)
	}
	if llm.calls != 1 {
		t.Errorf("LLM calls = %d, want 1 (no summarization after failure)", llm.calls)
	}
}

func TestDBExecutorWriteQuery(t *testing.T) {
	llm := &scriptedLLM{replies: []string{
		"UPDATE customer_complaints SET \"Complaint Resolved\" = true WHERE id = 7",
	}}
	st := &fakeStore{res: &store.Result{Read: false, RowsAffected: 1}}

	res := newDBExecutor(llm, st).Run(context.Background(), "Mark complaint 7 resolved")

	if !res.OK {
		t.Fatalf("expected success, got error %q", res.ErrorMessage)
	}
	if res.FormattedResult != service.WriteSuccessMessage {
		t.Errorf("FormattedResult = %q, want %q", res.FormattedResult, service.WriteSuccessMessage)
	}
	if res.NarrativeAnswer != service.WriteSuccessMessage {
		t.Errorf("NarrativeAnswer = %q, want %q", res.NarrativeAnswer, service.WriteSuccessMessage)
	}
	if llm.calls != 1 {
		t.Errorf("LLM calls = %d, want 1 (writes are never summarized)", llm.calls)
	}
	if len(res.RawRows) != 0 {
		t.Errorf("RawRows = %v, want empty", res.RawRows)
	}
}

func TestDBExecutorEnrichmentReachesPrompt(t *testing.T) {
	llm := &scriptedLLM{replies: []string{"SELECT count(*) FROM customer_complaints"}}
	st := &fakeStore{res: &store.Result{
		Read:    true,
		Columns: []string{"count"},
		Rows:    []map[string]interface{}{},
	}}

	newDBExecutor(llm, st).Run(context.Background(), "How many complaints from Pakistan?")

	if len(llm.users) == 0 {
		t.Fatal("generation prompt never sent")
	}
	if !strings.Contains(llm.users[0], "Pakistan or PK or PAK") {
		t.Errorf("expected enriched question in prompt, got %q", llm.users[0])
	}
	if !strings.Contains(llm.systems[0], "customer_complaints") {
		t.Errorf("expected schema in system prompt, got %q", llm.systems[0])
	}
}

func TestFormatRows(t *testing.T) {
	cols := []string{"country", "total"}
	rows := []map[string]interface{}{
		{"country": "PK", "total": 12},
		{"country": "GB", "total": 5},
	}

	want := "country, total\ncountry: PK, total: 12; country: GB, total: 5"
	if got := service.FormatRows(cols, rows); got != want {
		t.Errorf("FormatRows = %q, want %q", got, want)
	}

	if got := service.FormatRows(cols, nil); got != service.NoResultsMessage {
		t.Errorf("FormatRows(empty) = %q, want %q", got, service.NoResultsMessage)
	}
}
