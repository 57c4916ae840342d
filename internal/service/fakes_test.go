package service_test

import (
	"context"

	"github.com/askbridge/askbridge/internal/schema"
	"github.com/askbridge/askbridge/internal/store"
)

// scriptedLLM replies from a fixed script, one entry per call. A nil error
// with an empty reply list yields "".
type scriptedLLM struct {
	replies []string
	errs    []error
	calls   int
	systems []string
	users   []string
}

func (s *scriptedLLM) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	i := s.calls
	s.calls++
	s.systems = append(s.systems, systemPrompt)
	s.users = append(s.users, userPrompt)
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.replies) {
		return s.replies[i], nil
	}
	return "", nil
}

type fakeSchema struct {
	desc schema.Description
	err  error
}

func (f *fakeSchema) Describe(ctx context.Context) (schema.Description, error) {
	return f.desc, f.err
}

type fakeStore struct {
	res    *store.Result
	err    error
	gotSQL string
	calls  int
}

func (f *fakeStore) Execute(ctx context.Context, sql string) (*store.Result, error) {
	f.calls++
	f.gotSQL = sql
	if f.err != nil {
		return nil, f.err
	}
	return f.res, nil
}

func complaintsSchema() schema.Description {
	return schema.Description{
		Tables: []schema.Table{{
			Name: "customer_complaints",
			Columns: []schema.Column{
				{Name: "id", Type: "integer", PrimaryKey: true},
				{Name: "country", Type: "text"},
				{Name: "Complaint Resolved", Type: "boolean"},
			},
		}},
	}
}
