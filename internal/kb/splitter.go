// Package kb implements the knowledge-base retrieval service: plain-text
// document ingestion into Elasticsearch and retrieval-augmented answering.
package kb

import "strings"

const (
	// DefaultChunkSize and DefaultChunkOverlap control how documents are cut
	// before indexing.
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 50
)

// SplitText cuts text into overlapping chunks on rune boundaries. An overlap
// outside [0, size) is treated as zero.
func SplitText(text string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}

	var chunks []string
	step := size - overlap
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}
