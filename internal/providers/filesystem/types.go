package filesystem

import (
	"strings"
	"sync"

	"github.com/docagent/backend/internal/config"
	"github.com/docagent/backend/internal/logging"
	"github.com/docagent/backend/internal/sandbox"
	"github.com/docagent/backend/internal/types"
)

// Ops provides shared state for all filesystem operation handlers.
type Ops struct {
	Root   *sandbox.Root
	Log    *logging.Logger
	Search config.SearchConfig

	// mu serializes handler bodies for the whole sandbox.
	mu sync.Mutex
}

// ensureMarkdownExt appends .md when the name has no markdown extension.
// Applied to file-name arguments only, never to directory paths.
func ensureMarkdownExt(name string) string {
	if !strings.HasSuffix(name, ".md") {
		return name + ".md"
	}
	return name
}

// requireString extracts a required, non-empty string argument.
func requireString(params map[string]interface{}, name string) (string, error) {
	s, ok := params[name].(string)
	if !ok || s == "" {
		return "", types.InvalidArguments("%s parameter required", name)
	}
	return s, nil
}

// stringParam extracts an optional string argument with a fallback.
func stringParam(params map[string]interface{}, name, fallback string) string {
	if s, ok := params[name].(string); ok && s != "" {
		return s
	}
	return fallback
}

// numberParam extracts an optional numeric argument with a fallback.
// JSON decoding produces float64; direct callers may pass ints.
func numberParam(params map[string]interface{}, name string, fallback float64) float64 {
	switch v := params[name].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	default:
		return fallback
	}
}

// boolParam extracts an optional boolean argument with a fallback.
func boolParam(params map[string]interface{}, name string, fallback bool) bool {
	if b, ok := params[name].(bool); ok {
		return b
	}
	return fallback
}
