// Package image provides a unified abstraction over third-party image
// generation backends. Each backend is adapted by a Provider that validates
// a common parameter set, issues a single generation call, and normalizes
// the backend response into a GenerationResult. A Registry resolves provider
// identifiers to cached instances and is the extension point for additional
// backends.
package image
