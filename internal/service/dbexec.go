package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/askbridge/askbridge/internal/models"
	"github.com/askbridge/askbridge/internal/store"
	"github.com/rs/zerolog/log"
)

// Fixed strings the caller-facing contract depends on.
const (
	NoResultsMessage    = "No results found."
	WriteSuccessMessage = "Action completed successfully."
)

const sqlSystemPrompt = `You are an assistant that converts natural language questions into SQL queries for a PostgreSQL database.

Schema:
%s

Rules:
- Provide ONLY the SQL query, no explanations.
- Never alter table or column names from the schema.
- Use LIKE statements for partial matches if needed.`

const summarySystemPrompt = `You are a professional analyst. Convert SQL results into a narrative, story-like, executive summary.
Highlight key patterns, trends, duplicates, and actionable insights.`

// StatementRunner executes one SQL statement against the relational store.
type StatementRunner interface {
	Execute(ctx context.Context, sql string) (*store.Result, error)
}

// DBExecutor answers questions by generating and running a SQL statement:
// enrich, generate, execute, then a best-effort narrative summary. Generation
// and execution failures are fatal for the request; summarization failure is
// recovered locally and never surfaced.
type DBExecutor struct {
	llm      Completer
	schema   SchemaSource
	store    StatementRunner
	enricher *Enricher
}

func NewDBExecutor(llm Completer, schemaSrc SchemaSource, st StatementRunner, enricher *Enricher) *DBExecutor {
	return &DBExecutor{llm: llm, schema: schemaSrc, store: st, enricher: enricher}
}

// Run executes the structured-query pipeline for one question.
func (x *DBExecutor) Run(ctx context.Context, question string) models.ExecutionResult {
	enriched := x.enricher.Enrich(question)
	if enriched != question {
		log.Debug().Str("enriched", enriched).Msg("question enriched")
	}

	sql, err := x.generateSQL(ctx, enriched)
	if err != nil {
		return models.Failure("Failed to generate SQL: " + err.Error())
	}
	log.Debug().Str("sql", sql).Msg("generated SQL")

	result := models.ExecutionResult{
		GeneratedQuery: sql,
		RawRows:        []map[string]interface{}{},
	}

	res, err := x.store.Execute(ctx, sql)
	if err != nil {
		result.ErrorMessage = "Error executing SQL: " + err.Error()
		return result
	}

	result.OK = true
	if !res.Read {
		result.FormattedResult = WriteSuccessMessage
		result.NarrativeAnswer = WriteSuccessMessage
		return result
	}

	if res.Rows != nil {
		result.RawRows = res.Rows
	}
	result.FormattedResult = FormatRows(res.Columns, res.Rows)

	if len(res.Rows) == 0 {
		// No model call for an empty result set.
		result.NarrativeAnswer = result.FormattedResult
		return result
	}

	summary, err := x.summarize(ctx, sql, result.FormattedResult)
	if err != nil || strings.TrimSpace(summary) == "" {
		if err != nil {
			log.Warn().Err(err).Msg("summarization failed, falling back to formatted result")
		}
		result.NarrativeAnswer = result.FormattedResult
		return result
	}
	result.NarrativeAnswer = summary
	return result
}

func (x *DBExecutor) generateSQL(ctx context.Context, question string) (string, error) {
	// Schema is read fresh per call, never cached.
	desc, err := x.schema.Describe(ctx)
	if err != nil {
		return "", fmt.Errorf("schema introspection: %w", err)
	}

	reply, err := x.llm.Complete(ctx, fmt.Sprintf(sqlSystemPrompt, desc.String()), "Question: "+question)
	if err != nil {
		return "", err
	}

	sql := extractSQL(reply)
	if sql == "" {
		return "", fmt.Errorf("model returned no parseable query")
	}
	return sql, nil
}

func (x *DBExecutor) summarize(ctx context.Context, sql, formatted string) (string, error) {
	user := fmt.Sprintf("SQL Query:\n%s\nResult:\n%s", sql, formatted)
	return x.llm.Complete(ctx, summarySystemPrompt, user)
}

// FormatRows renders a result set as "<comma-joined columns>\n<row1>; <row2>"
// where each row is "col: value" pairs. An empty set renders as the fixed
// no-results message.
func FormatRows(columns []string, rows []map[string]interface{}) string {
	if len(rows) == 0 {
		return NoResultsMessage
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(columns, ", "))
	sb.WriteByte('\n')
	for i, row := range rows {
		if i > 0 {
			sb.WriteString("; ")
		}
		for j, col := range columns {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s: %v", col, row[col])
		}
	}
	return sb.String()
}
