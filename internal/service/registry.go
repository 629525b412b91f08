// Package service implements operation registration and dispatch.
//
// Providers register named tools; Execute routes an operation name and
// argument mapping to its handler, validates arguments against the tool
// definition, and normalizes every outcome (including panics) into a
// uniform Result. Nothing escapes the dispatch boundary as an error.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docagent/backend/internal/logging"
	"github.com/docagent/backend/internal/monitoring"
	"github.com/docagent/backend/internal/types"
)

// Provider interface for service implementations
type Provider interface {
	Definition() types.Service
	Execute(ctx context.Context, toolID string, params map[string]interface{}) (map[string]interface{}, error)
}

// Registry manages service discovery and dispatch
type Registry struct {
	services sync.Map
	log      *logging.Logger
	metrics  *monitoring.Metrics
}

// NewRegistry creates a new service registry. Metrics may be nil when
// dispatch accounting is not wanted.
func NewRegistry(log *logging.Logger, metrics *monitoring.Metrics) *Registry {
	if log == nil {
		log = logging.NewNop()
	}
	return &Registry{log: log, metrics: metrics}
}

// Register adds a service provider. Registration is append-only and is
// expected to happen before the registry starts serving requests.
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return fmt.Errorf("service ID cannot be empty")
	}
	r.services.Store(def.ID, provider)
	return nil
}

// Get retrieves a service by ID
func (r *Registry) Get(serviceID string) (Provider, bool) {
	val, ok := r.services.Load(serviceID)
	if !ok {
		return nil, false
	}
	return val.(Provider), true
}

// List returns all registered service definitions
func (r *Registry) List(category *types.Category) []types.Service {
	var services []types.Service
	r.services.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		if category == nil || def.Category == *category {
			services = append(services, def)
		}
		return true
	})
	sort.Slice(services, func(i, j int) bool { return services[i].ID < services[j].ID })
	return services
}

// Operations returns the IDs of every registered tool, sorted. Used for
// discoverability in UnknownOperation failures.
func (r *Registry) Operations() []string {
	var ids []string
	r.services.Range(func(_, value interface{}) bool {
		for _, tool := range value.(Provider).Definition().Tools {
			ids = append(ids, tool.ID)
		}
		return true
	})
	sort.Strings(ids)
	return ids
}

// Execute runs one operation and returns a uniform result. It never
// returns an error to the caller: unknown operations, invalid arguments,
// handler failures, and panics all come back as tagged failure results.
// Each call invokes at most one handler exactly once.
func (r *Registry) Execute(ctx context.Context, toolID string, args map[string]interface{}) *types.Result {
	callID := uuid.NewString()
	start := time.Now()

	result := r.dispatch(ctx, toolID, args)

	duration := time.Since(start)
	if r.metrics != nil {
		r.metrics.RecordDispatch(toolID, result.Status, duration)
	}
	if result.Status == types.StatusError {
		if r.metrics != nil {
			r.metrics.RecordFailure(toolID, string(result.Error.Kind))
		}
		r.log.Warn("operation failed",
			zap.String("call_id", callID),
			zap.String("operation", toolID),
			zap.String("kind", string(result.Error.Kind)),
			zap.String("message", result.Error.Message),
			zap.Duration("duration", duration),
		)
		return result
	}

	r.log.Info("operation completed",
		zap.String("call_id", callID),
		zap.String("operation", toolID),
		zap.Duration("duration", duration),
	)
	return result
}

func (r *Registry) dispatch(ctx context.Context, toolID string, args map[string]interface{}) *types.Result {
	tool, provider, ok := r.lookup(toolID)
	if !ok {
		return types.Failure(toolID, args, types.KindUnknownOperation,
			fmt.Sprintf("unknown operation %q; available operations: %s",
				toolID, strings.Join(r.Operations(), ", ")))
	}

	if err := validateArguments(tool, args); err != nil {
		return types.Failure(toolID, args, err.Kind, err.Message)
	}

	data, err := r.invoke(ctx, provider, toolID, args)
	if err != nil {
		opErr := types.Classify(err)
		return types.Failure(toolID, args, opErr.Kind, opErr.Message)
	}
	return types.Success(toolID, args, data)
}

// lookup finds the tool definition and its provider for a toolID of the
// form "service.tool".
func (r *Registry) lookup(toolID string) (types.Tool, Provider, bool) {
	serviceID, _, found := strings.Cut(toolID, ".")
	if !found {
		return types.Tool{}, nil, false
	}
	provider, ok := r.Get(serviceID)
	if !ok {
		return types.Tool{}, nil, false
	}
	for _, tool := range provider.Definition().Tools {
		if tool.ID == toolID {
			return tool, provider, true
		}
	}
	return types.Tool{}, nil, false
}

// invoke runs the handler inside the failure boundary. A panicking
// handler surfaces as an IOFailure with a sanitized message.
func (r *Registry) invoke(ctx context.Context, provider Provider, toolID string, args map[string]interface{}) (data map[string]interface{}, err error) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("handler panic",
				zap.String("operation", toolID),
				zap.Any("panic", p),
			)
			data = nil
			err = types.NewOpError(types.KindIOFailure, "internal failure during %s", toolID)
		}
	}()
	return provider.Execute(ctx, toolID, args)
}

// Discover finds relevant services for a given intent
func (r *Registry) Discover(intent string, limit int) []types.Service {
	type scored struct {
		service types.Service
		score   float64
	}

	intentLower := strings.ToLower(intent)
	var results []scored

	r.services.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		if score := relevance(intentLower, def); score > 0 {
			results = append(results, scored{service: def, score: score})
		}
		return true
	})

	sort.Slice(results, func(i, j int) bool { return results[i].score > results[j].score })

	output := make([]types.Service, 0, limit)
	for i := 0; i < len(results) && i < limit; i++ {
		output = append(output, results[i].service)
	}
	return output
}

func relevance(intent string, service types.Service) float64 {
	score := 0.0
	if strings.Contains(intent, service.ID) || strings.Contains(intent, strings.ToLower(service.Name)) {
		score += 10.0
	}
	for _, word := range strings.Fields(strings.ToLower(service.Description)) {
		if strings.Contains(intent, word) {
			score += 5.0
		}
	}
	for _, cap := range service.Capabilities {
		if strings.Contains(intent, strings.ReplaceAll(strings.ToLower(cap), "_", " ")) {
			score += 3.0
		}
	}
	if strings.Contains(intent, string(service.Category)) {
		score += 2.0
	}
	return score
}
