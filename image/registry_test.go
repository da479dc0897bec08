package image

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubProvider is a minimal Provider for registry tests.
type stubProvider struct {
	name string
}

func (s *stubProvider) Name() string              { return s.name }
func (s *stubProvider) SupportedSizes() []string  { return []string{"1024x1024"} }
func (s *stubProvider) SupportedStyles() []string { return []string{"vivid"} }
func (s *stubProvider) Validate(params GenerationParams) error {
	return validateParams(s, params)
}
func (s *stubProvider) Generate(ctx context.Context, params GenerationParams) GenerationResult {
	return SuccessResult(s.name, "https://example.com/stub.png", "", nil)
}

func TestRegistry_BuiltinsRegistered(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	assert.Equal(t, []string{"gemini", "gemini-vertex", "openai"}, r.List())
}

func TestRegistry_Get_CachesInstances(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	r := NewRegistry(nil)

	first, err := r.Get("openai", nil)
	require.NoError(t, err)
	second, err := r.Get("openai", nil)
	require.NoError(t, err)
	assert.Same(t, first, second, "identical lookups must return the cached instance")

	r.ClearCache()
	third, err := r.Get("openai", nil)
	require.NoError(t, err)
	assert.NotSame(t, first, third, "ClearCache must drop cached instances")
}

func TestRegistry_Get_CaseInsensitive(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	r := NewRegistry(nil)

	lower, err := r.Get("openai", nil)
	require.NoError(t, err)
	upper, err := r.Get("OpenAI", nil)
	require.NoError(t, err)
	assert.Same(t, lower, upper)
}

func TestRegistry_Get_OptionsDistinguishInstances(t *testing.T) {
	constructed := 0
	r := NewRegistry(nil)
	r.Register("counting", func(opts Options, logger *zap.Logger) (Provider, error) {
		constructed++
		return &stubProvider{name: "counting"}, nil
	})

	a, err := r.Get("counting", Options{"model": "a"})
	require.NoError(t, err)
	b, err := r.Get("counting", Options{"model": "b"})
	require.NoError(t, err)
	assert.NotSame(t, a, b)
	assert.Equal(t, 2, constructed)

	// nil and empty options share a cache entry.
	c, err := r.Get("counting", nil)
	require.NoError(t, err)
	d, err := r.Get("counting", Options{})
	require.NoError(t, err)
	assert.Same(t, c, d)
	assert.Equal(t, 3, constructed)
}

func TestRegistry_Get_UnsupportedProvider(t *testing.T) {
	r := NewRegistry(nil)

	_, err := r.Get("unknown", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported provider "unknown"`)
	assert.Contains(t, err.Error(), "gemini, gemini-vertex, openai")
}

func TestRegistry_Get_ConstructionErrorPropagates(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	r := NewRegistry(nil)

	_, err := r.Get("openai", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestRegistry_Get_DefaultFromEnv(t *testing.T) {
	r := NewRegistry(nil)
	r.Register("stub", func(opts Options, logger *zap.Logger) (Provider, error) {
		return &stubProvider{name: "stub"}, nil
	})

	t.Setenv(EnvDefaultProvider, "stub")
	p, err := r.Get("", nil)
	require.NoError(t, err)
	assert.Equal(t, "stub", p.Name())
}

func TestRegistry_Get_FallbackDefault(t *testing.T) {
	t.Setenv(EnvDefaultProvider, "")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	r := NewRegistry(nil)

	p, err := r.Get("", nil)
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())
}

func TestRegistry_Register_Overwrites(t *testing.T) {
	r := NewRegistry(nil)
	r.Register("OpenAI", func(opts Options, logger *zap.Logger) (Provider, error) {
		return &stubProvider{name: "replacement"}, nil
	})

	p, err := r.Get("openai", nil)
	require.NoError(t, err)
	assert.Equal(t, "replacement", p.Name())
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, cacheKey("openai", nil), cacheKey("openai", Options{}))
	assert.Equal(t,
		cacheKey("gemini", Options{"a": 1, "b": "x"}),
		cacheKey("gemini", Options{"b": "x", "a": 1}),
		"key must not depend on map iteration order")
	assert.NotEqual(t,
		cacheKey("gemini", Options{"model": "a"}),
		cacheKey("gemini", Options{"model": "b"}))
}
