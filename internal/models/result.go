package models

// ExecutionResult is the unified output of both executors. Every field is
// present regardless of which path ran, so callers can render a response
// without branching on route; fields not applicable to the chosen path are
// empty, never null.
type ExecutionResult struct {
	OK              bool                     `json:"ok"`
	GeneratedQuery  string                   `json:"generated_query"`
	RawRows         []map[string]interface{} `json:"raw_rows"`
	FormattedResult string                   `json:"formatted_result"`
	NarrativeAnswer string                   `json:"narrative_answer"`
	ErrorMessage    string                   `json:"error_message"`
}

// Normalize guarantees no nil collections leak to callers.
func (r *ExecutionResult) Normalize() {
	if r.RawRows == nil {
		r.RawRows = []map[string]interface{}{}
	}
}

// Failure builds a fatal result carrying only an error message.
func Failure(message string) ExecutionResult {
	return ExecutionResult{
		RawRows:      []map[string]interface{}{},
		ErrorMessage: message,
	}
}
