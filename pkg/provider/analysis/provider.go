// Package analysis defines the Provider interface for AI narrative-analysis
// backends.
//
// An analysis provider wraps an LLM service (hosted Anthropic API or a
// locally hosted model) and extracts the narrative structure the later
// stages need: scene candidates for illustration, speaker attribution for
// voice casting, and a confidence score that gates auto-approval.
//
// Implementations must be safe for concurrent use.
package analysis

import "context"

// Provider is the abstraction over any narrative-analysis backend.
type Provider interface {
	// Analyze examines one chunk of restored text and returns its narrative
	// structure. Chunks are sized by the processing.chunk_size option; the
	// provider must not assume chunk boundaries align with chapters.
	//
	// Returns an error if the backend cannot be reached or ctx is cancelled.
	// A low-confidence result is not an error; the caller compares
	// Result.Confidence against the configured threshold.
	Analyze(ctx context.Context, req Request) (*Result, error)
}
