package analysis

// Request is one chunk of restored text submitted for analysis.
type Request struct {
	// BookID identifies the work the chunk belongs to.
	BookID string

	// ChunkIndex is the zero-based position of this chunk within the book.
	ChunkIndex int

	// Text is the restored chunk content.
	Text string
}

// Result is the narrative structure extracted from one chunk.
type Result struct {
	// Scenes are illustration candidates found in the chunk, in order of
	// appearance.
	Scenes []Scene

	// Speakers maps dialogue spans to character names for voice casting.
	Speakers []SpeakerSpan

	// Confidence is the provider's self-assessed reliability in [0, 1].
	// Results below the configured threshold go to operator review.
	Confidence float64
}

// Scene is one illustration candidate.
type Scene struct {
	// Summary is a short description of the visual moment.
	Summary string

	// Prompt is the generation-ready prompt for the image stage.
	Prompt string

	// Characters lists the character names present in the scene.
	Characters []string
}

// SpeakerSpan attributes a run of dialogue to a character.
type SpeakerSpan struct {
	// Start and End are rune offsets into the chunk text.
	Start int
	End   int

	// Character is the attributed speaker name.
	Character string
}
