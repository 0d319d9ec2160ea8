// Package speech defines the Provider interface for speech-synthesis
// backends.
//
// A speech provider wraps a synthesis service (e.g., ElevenLabs) behind a
// uniform interface. Voices are resolved from the configuration's voice
// catalogue by logical name before reaching the provider, so implementations
// only ever see provider-assigned voice identifiers.
//
// Implementations must be safe for concurrent use.
package speech

import "context"

// Provider is the abstraction over any speech-synthesis backend.
type Provider interface {
	// Synthesize renders text as encoded audio using the given voice
	// profile. The output container and bitrate follow the processing
	// section of the configuration.
	//
	// Returns an error if the backend rejects the request, the voice
	// identifier is unknown to it, or ctx is cancelled.
	Synthesize(ctx context.Context, text string, voice VoiceProfile) ([]byte, error)

	// ListVoices returns the provider's current voice catalogue. Used by
	// operator tooling to verify that configured voice identifiers still
	// exist upstream.
	ListVoices(ctx context.Context) ([]VoiceProfile, error)
}
