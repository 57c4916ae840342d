package service

import "strings"

// Enricher expands recognized entity mentions with their stored variants so
// that generated queries can match abbreviated values (e.g. "Pakistan"
// becomes "Pakistan or PK or PAK"). A pure text transform: unmatched text
// passes through unchanged.
type Enricher struct {
	synonyms map[string][]string
}

func NewEnricher(synonyms map[string][]string) *Enricher {
	return &Enricher{synonyms: synonyms}
}

// Enrich replaces each recognized key with its variant list joined by " or ".
// Text already carrying an expansion is left alone, so applying Enrich twice
// yields the same output as applying it once.
func (e *Enricher) Enrich(question string) string {
	lower := strings.ToLower(question)
	for key, variants := range e.synonyms {
		if len(variants) == 0 {
			continue
		}
		expansion := strings.Join(variants, " or ")
		if strings.Contains(question, expansion) {
			continue
		}
		if strings.Contains(lower, strings.ToLower(key)) {
			question = strings.ReplaceAll(question, key, expansion)
			lower = strings.ToLower(question)
		}
	}
	return question
}
