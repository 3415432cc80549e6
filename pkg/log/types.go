package log

// ZapConfig configures the zap backed logger.
type ZapConfig struct {
	Level        string // debug, info, warn, error
	Mode         string // development / production
	Encoding     string // console / json
	ColorEnabled bool
}

type ctxKey string

const (
	// TraceIDKey is the context key holding the per-request trace ID.
	TraceIDKey ctxKey = "trace_id"

	modeProduction = "production"
	encodingJSON   = "json"
)
