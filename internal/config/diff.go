package config

import "slices"

// ChangeSet describes which pipeline stages a configuration reload affects,
// so the supervisor can restart only the stages whose settings moved.
type ChangeSet struct {
	AIChanged         bool
	SpeechChanged     bool // provider, key, or model tier, not the catalogue
	VoicesChanged     bool
	VoiceChanges      []VoiceDiff // per-voice diffs, sorted by logical name
	ImageChanged      bool
	StorageChanged    bool
	DatabaseChanged   bool
	ProcessingChanged bool
	CostsChanged      bool
	PathsChanged      bool
}

// Any reports whether anything changed at all.
func (c ChangeSet) Any() bool {
	return c.AIChanged || c.SpeechChanged || c.VoicesChanged || c.ImageChanged ||
		c.StorageChanged || c.DatabaseChanged || c.ProcessingChanged ||
		c.CostsChanged || c.PathsChanged
}

// VoiceDiff describes what changed for a single catalogue voice.
type VoiceDiff struct {
	Name            string
	ProfileChanged  bool // voice_id or display name
	SettingsChanged bool
	Added           bool
	Removed         bool
}

// Diff compares old and new configurations and returns what changed.
func Diff(old, new *Config) ChangeSet {
	c := ChangeSet{}

	c.AIChanged = old.AIProvider.Provider != new.AIProvider.Provider ||
		old.AIProvider.APIKey != new.AIProvider.APIKey ||
		old.AIProvider.Model != new.AIProvider.Model ||
		old.AIProvider.MaxTokens != new.AIProvider.MaxTokens ||
		old.AIProvider.SamplingTemperature() != new.AIProvider.SamplingTemperature()
	c.SpeechChanged = old.SpeechProvider.Provider != new.SpeechProvider.Provider ||
		old.SpeechProvider.APIKey != new.SpeechProvider.APIKey ||
		old.SpeechProvider.FlashModels() != new.SpeechProvider.FlashModels()
	c.ImageChanged = old.ImageGen != new.ImageGen
	c.StorageChanged = old.Storage != new.Storage
	c.DatabaseChanged = old.Database.Host != new.Database.Host ||
		old.Database.Port != new.Database.Port ||
		old.Database.Database != new.Database.Database ||
		old.Database.User != new.Database.User ||
		old.Database.Password != new.Database.Password ||
		old.Database.SSLEnabled() != new.Database.SSLEnabled()
	c.ProcessingChanged = !processingEqual(old.Processing, new.Processing)
	c.CostsChanged = old.Costs != new.Costs
	c.PathsChanged = old.Paths != new.Paths

	// Detect modified and removed voices.
	for name, oldVoice := range old.SpeechProvider.Voices {
		newVoice, exists := new.SpeechProvider.Voices[name]
		if !exists {
			c.VoiceChanges = append(c.VoiceChanges, VoiceDiff{Name: name, Removed: true})
			continue
		}
		vd := diffVoice(name, oldVoice, newVoice)
		if vd.ProfileChanged || vd.SettingsChanged {
			c.VoiceChanges = append(c.VoiceChanges, vd)
		}
	}

	// Detect added voices.
	for name := range new.SpeechProvider.Voices {
		if _, exists := old.SpeechProvider.Voices[name]; !exists {
			c.VoiceChanges = append(c.VoiceChanges, VoiceDiff{Name: name, Added: true})
		}
	}

	slices.SortFunc(c.VoiceChanges, func(a, b VoiceDiff) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	c.VoicesChanged = len(c.VoiceChanges) > 0

	return c
}

// diffVoice compares two catalogue entries with the same logical name.
func diffVoice(name string, old, new VoiceProfile) VoiceDiff {
	vd := VoiceDiff{Name: name}

	if old.VoiceID != new.VoiceID || old.Name != new.Name {
		vd.ProfileChanged = true
	}
	if old.Settings.Stability != new.Settings.Stability ||
		old.Settings.SimilarityBoost != new.Settings.SimilarityBoost ||
		old.Settings.StyleOrZero() != new.Settings.StyleOrZero() {
		vd.SettingsChanged = true
	}
	return vd
}

// processingEqual compares processing tunables field by field; the struct
// holds a map and pointers, so == is not available.
func processingEqual(a, b ProcessingConfig) bool {
	if a.ChunkSize != b.ChunkSize ||
		a.MinConfidence() != b.MinConfidence() ||
		a.AudioFormat != b.AudioFormat ||
		a.AudioBitrate != b.AudioBitrate ||
		a.PausesEnabled() != b.PausesEnabled() ||
		a.ScenesPerBook != b.ScenesPerBook ||
		a.GenerateVariations != b.GenerateVariations {
		return false
	}
	if len(a.OCRFixes) != len(b.OCRFixes) {
		return false
	}
	for k, v := range a.OCRFixes {
		if b.OCRFixes[k] != v {
			return false
		}
	}
	return true
}
