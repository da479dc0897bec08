package image

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// EnvDefaultProvider selects the default provider when Get is called with an
// empty identifier.
const EnvDefaultProvider = "IMAGE_PROVIDER"

const fallbackProviderName = "openai"

// Options carries constructor arguments for a provider. String values are
// pulled out by the built-in constructors; anything else is left to custom
// constructors to interpret.
type Options map[string]any

func (o Options) str(key string) string {
	if v, ok := o[key].(string); ok {
		return v
	}
	return ""
}

// Constructor builds a provider from options. Construction errors (for
// example a missing credential) propagate to the Get caller.
type Constructor func(opts Options, logger *zap.Logger) (Provider, error)

// Registry maps lowercase provider identifiers to constructors and caches
// built instances per (identifier, options) pair. It replaces the implicit
// singleton factory: the composition root constructs one Registry and passes
// it to whatever needs provider resolution.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
	cache        map[string]Provider
	logger       *zap.Logger
}

// NewRegistry creates a registry with the built-in providers registered:
// openai, gemini, and gemini-vertex.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		constructors: make(map[string]Constructor),
		cache:        make(map[string]Provider),
		logger:       logger,
	}

	r.Register("openai", func(opts Options, logger *zap.Logger) (Provider, error) {
		return NewOpenAIProvider(OpenAIConfig{
			APIKey:  opts.str("api_key"),
			BaseURL: opts.str("base_url"),
			Model:   opts.str("model"),
		}, logger)
	})
	r.Register("gemini", func(opts Options, logger *zap.Logger) (Provider, error) {
		return NewGeminiProvider(GeminiConfig{
			APIKey: opts.str("api_key"),
			Model:  opts.str("model"),
		}, logger), nil
	})
	r.Register("gemini-vertex", func(opts Options, logger *zap.Logger) (Provider, error) {
		return NewVertexProvider(VertexConfig{
			Project:  opts.str("project"),
			Location: opts.str("location"),
			Model:    opts.str("model"),
		}, logger)
	})

	return r
}

// Get resolves a provider identifier to a cached instance, constructing it
// on first use. An empty name resolves through IMAGE_PROVIDER and falls back
// to "openai". Identifiers are matched case-insensitively.
func (r *Registry) Get(name string, opts Options) (Provider, error) {
	if name == "" {
		name = os.Getenv(EnvDefaultProvider)
	}
	if name == "" {
		name = fallbackProviderName
	}
	name = strings.ToLower(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	ctor, ok := r.constructors[name]
	if !ok {
		return nil, fmt.Errorf("unsupported provider %q (registered: %s)",
			name, strings.Join(r.listLocked(), ", "))
	}

	key := cacheKey(name, opts)
	if p, ok := r.cache[key]; ok {
		return p, nil
	}

	p, err := ctor(opts, r.logger)
	if err != nil {
		return nil, fmt.Errorf("create provider %q: %w", name, err)
	}
	r.cache[key] = p

	r.logger.Info("provider created",
		zap.String("provider", name),
		zap.String("name", p.Name()))
	return p, nil
}

// Register adds or replaces a provider constructor. The identifier is
// lowercased, matching Get's lookup.
func (r *Registry) Register(name string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[strings.ToLower(name)] = ctor
}

// List returns the sorted registered identifiers.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked()
}

func (r *Registry) listLocked() []string {
	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ClearCache drops all cached instances. Registered constructors are kept.
// Intended for test isolation and credential rotation.
func (r *Registry) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]Provider)
}

// cacheKey derives a deterministic key from the identifier and the options.
// A nil and an empty options map produce the same key.
func cacheKey(name string, opts Options) string {
	if len(opts) == 0 {
		return name
	}
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(name)
	for _, k := range keys {
		fmt.Fprintf(&b, "|%s=%v", k, opts[k])
	}
	return b.String()
}
