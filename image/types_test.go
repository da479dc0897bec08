package image

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuccessResult_Invariants(t *testing.T) {
	res := SuccessResult("openai", "https://example.com/img.png", "revised", nil)

	assert.True(t, res.Success)
	assert.Equal(t, "https://example.com/img.png", res.URL)
	assert.Equal(t, "revised", res.RevisedPrompt)
	assert.Empty(t, res.Error)
	assert.Equal(t, "openai", res.Provider)
	assert.NotNil(t, res.Metadata)
}

func TestFailureResult_Invariants(t *testing.T) {
	res := FailureResult("gemini", "something broke", map[string]any{"model": "imagen"})

	assert.False(t, res.Success)
	assert.Empty(t, res.URL)
	assert.Equal(t, "something broke", res.Error)
	assert.Equal(t, "gemini", res.Provider)
	assert.Equal(t, "imagen", res.Metadata["model"])
}

func TestDefaultParams(t *testing.T) {
	params := DefaultParams("a beach")

	assert.Equal(t, "a beach", params.Prompt)
	assert.Equal(t, "1024x1024", params.Size)
	assert.Equal(t, "standard", params.Quality)
	assert.Equal(t, "vivid", params.Style)
}

func TestParamsMetadata_MergesExtra(t *testing.T) {
	params := DefaultParams("a beach")
	params.Extra = map[string]any{"seed": 42}

	meta := params.metadata()
	assert.Equal(t, "a beach", meta["prompt"])
	assert.Equal(t, "1024x1024", meta["size"])
	assert.Equal(t, 42, meta["seed"])
}
