package config

const (
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 8000
	DefaultEnvironment = "development"
	DefaultAPIPrefix   = "/api/v1"
	DefaultLogLevel    = "info"

	DefaultRateLimitPerMinute = 60

	// Points at the in-process /chatbot endpoint by default; any external
	// service speaking the same {query}->{results} contract can replace it.
	DefaultKBServiceURL = "http://127.0.0.1:8000/chatbot"

	DefaultElasticsearchPort       = 9200
	DefaultElasticsearchScheme     = "http"
	DefaultElasticsearchMaxRetries = 3
	DefaultElasticsearchIndex      = "gen-ai"

	DefaultMaxQuestionLength = 2000
)

var DefaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:8080",
}

// DefaultSynonyms maps entity names to the variants stored data may use.
// Returned fresh so config loading never mutates shared state.
func DefaultSynonyms() map[string][]string {
	return map[string][]string{
		"Pakistan":       {"Pakistan", "PK", "PAK"},
		"United Kingdom": {"United Kingdom", "UK", "GB"},
	}
}
