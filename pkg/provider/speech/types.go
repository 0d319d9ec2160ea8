package speech

// VoiceProfile is the provider-facing form of one catalogue voice.
type VoiceProfile struct {
	// ID is the provider-assigned voice identifier.
	ID string

	// Name is the human-readable voice name.
	Name string

	// Stability, SimilarityBoost, and Style are synthesis tuning
	// parameters in [0.0, 1.0]. Style 0 means the provider default.
	Stability       float64
	SimilarityBoost float64
	Style           float64
}
