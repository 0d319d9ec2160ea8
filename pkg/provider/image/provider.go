// Package image defines the Provider interface for illustration-generation
// backends (e.g., a ComfyUI instance or a hosted diffusion API).
//
// Implementations must be safe for concurrent use.
package image

import "context"

// Provider is the abstraction over any illustration backend.
type Provider interface {
	// Generate renders the requested number of candidate images for one
	// scene. The caller picks the best candidate; the provider must not
	// deduplicate or rank them.
	//
	// Returns an error if the backend cannot be reached, the workflow is
	// rejected, or ctx is cancelled. Partial results are discarded on error.
	Generate(ctx context.Context, req Request) ([]Image, error)
}
