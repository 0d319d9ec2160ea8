// Package config provides the configuration schema, validator, loader, and
// provider registry for the Compel Classics production pipeline.
package config

import "github.com/sean-roth/compel-classics-pipeline/pkg/provider/speech"

// AIBackend selects the narrative-analysis provider implementation.
type AIBackend string

const (
	// AIAnthropic uses the hosted Anthropic API.
	AIAnthropic AIBackend = "anthropic"

	// AILocalLLM uses a locally hosted model server.
	AILocalLLM AIBackend = "local_llm"
)

// IsValid reports whether b is a recognised AI backend.
func (b AIBackend) IsValid() bool {
	return b == AIAnthropic || b == AILocalLLM
}

// SpeechBackend selects the speech-synthesis provider implementation.
type SpeechBackend string

const (
	SpeechElevenLabs SpeechBackend = "elevenlabs"
)

// IsValid reports whether b is a recognised speech backend.
func (b SpeechBackend) IsValid() bool {
	return b == SpeechElevenLabs
}

// ImageBackend selects the illustration-generation provider implementation.
type ImageBackend string

const (
	ImageComfyUI            ImageBackend = "comfyui"
	ImageStableDiffusionAPI ImageBackend = "stable_diffusion_api"
)

// IsValid reports whether b is a recognised image backend.
func (b ImageBackend) IsValid() bool {
	return b == ImageComfyUI || b == ImageStableDiffusionAPI
}

// Config is the root configuration structure for the pipeline. It is loaded
// from a YAML file using [Load] or [LoadFromReader] and is read-only for the
// remainder of the process lifetime.
type Config struct {
	AIProvider     AIProviderConfig     `yaml:"ai_provider"`
	SpeechProvider SpeechProviderConfig `yaml:"speech_provider"`
	ImageGen       ImageGenConfig       `yaml:"image_gen"`
	Storage        StorageConfig        `yaml:"storage"`
	Database       DatabaseConfig       `yaml:"database"`
	Processing     ProcessingConfig     `yaml:"processing"`
	Costs          CostsConfig          `yaml:"costs"`
	Paths          PathsConfig          `yaml:"paths"`
}

// AIProviderConfig holds settings for the narrative-analysis stage.
type AIProviderConfig struct {
	// Provider selects the registered analysis implementation.
	Provider AIBackend `yaml:"provider"`

	// APIKey authenticates against the hosted provider. Required.
	APIKey Secret `yaml:"api_key"`

	// Model selects a specific model within the provider.
	Model string `yaml:"model"`

	// MaxTokens caps the response size per analysis call.
	MaxTokens int `yaml:"max_tokens"`

	// Temperature controls sampling randomness. Lower values give more
	// consistent analysis; an explicit 0 requests deterministic sampling,
	// so nil (not zero) means use the default.
	Temperature *float64 `yaml:"temperature"`
}

// SamplingTemperature returns the sampling temperature, or the default 0.3
// when the key is absent.
func (a AIProviderConfig) SamplingTemperature() float64 {
	if a.Temperature == nil {
		return 0.3
	}
	return *a.Temperature
}

// SpeechProviderConfig holds settings for the speech-synthesis stage,
// including the voice catalogue keyed by logical voice name
// (e.g., "narrator_primary").
type SpeechProviderConfig struct {
	// Provider selects the registered synthesis implementation.
	Provider SpeechBackend `yaml:"provider"`

	// APIKey authenticates against the synthesis provider. Required.
	APIKey Secret `yaml:"api_key"`

	// UseFlashModels selects the provider's cheaper low-latency model tier.
	UseFlashModels *bool `yaml:"use_flash_models"`

	// Voices is the catalogue of narration voices, keyed by logical name.
	// Defined at load time and never mutated afterwards.
	Voices map[string]VoiceProfile `yaml:"voices"`
}

// FlashModels reports whether the cheaper model tier is enabled.
// Defaults to true when the key is absent.
func (s SpeechProviderConfig) FlashModels() bool {
	return s.UseFlashModels == nil || *s.UseFlashModels
}

// Voice resolves a logical voice name from the catalogue into the
// provider-facing profile consumed by the synthesis stage.
func (s SpeechProviderConfig) Voice(name string) (speech.VoiceProfile, bool) {
	v, ok := s.Voices[name]
	if !ok {
		return speech.VoiceProfile{}, false
	}
	return speech.VoiceProfile{
		ID:              v.VoiceID,
		Name:            v.Name,
		Stability:       v.Settings.Stability,
		SimilarityBoost: v.Settings.SimilarityBoost,
		Style:           v.Settings.StyleOrZero(),
	}, true
}

// VoiceProfile is one entry in the voice catalogue.
type VoiceProfile struct {
	// VoiceID is the opaque provider-assigned voice identifier.
	VoiceID string `yaml:"voice_id"`

	// Name is the human-readable display name.
	Name string `yaml:"name"`

	// Settings tunes the synthesis parameters for this voice.
	Settings VoiceSettings `yaml:"settings"`
}

// VoiceSettings are per-voice synthesis parameters. All values are
// constrained to [0.0, 1.0]; out-of-range values are reported by the
// validator, never clamped.
type VoiceSettings struct {
	Stability       float64 `yaml:"stability"`
	SimilarityBoost float64 `yaml:"similarity_boost"`

	// Style is optional; nil means the provider default.
	Style *float64 `yaml:"style"`
}

// StyleOrZero returns the style exaggeration, or 0 when unset.
func (v VoiceSettings) StyleOrZero() float64 {
	if v.Style == nil {
		return 0
	}
	return *v.Style
}

// ImageGenConfig holds settings for the illustration-generation stage.
type ImageGenConfig struct {
	// Provider selects the registered image backend.
	Provider ImageBackend `yaml:"provider"`

	// APIURL is the image backend's HTTP endpoint.
	APIURL string `yaml:"api_url"`

	// WorkflowPath points at the backend workflow definition used for
	// period-appropriate illustration styling.
	WorkflowPath string `yaml:"workflow_path"`

	// Style names the illustration style preset.
	Style string `yaml:"style"`

	// Resolution is the output size as "WIDTHxHEIGHT".
	Resolution string `yaml:"resolution"`

	// Steps is the diffusion step count per image.
	Steps int `yaml:"steps"`

	// CFGScale controls prompt adherence. Zero means use the default.
	CFGScale float64 `yaml:"cfg_scale"`
}

// StorageConfig holds local and cloud archival storage settings.
type StorageConfig struct {
	// LocalArchivePath is the root of the local long-term archive. Required.
	LocalArchivePath string `yaml:"local_archive_path"`

	// WorkingDir holds in-progress stage output.
	WorkingDir string `yaml:"working_dir"`

	// OutputDir holds finished books awaiting archival.
	OutputDir string `yaml:"output_dir"`

	// CloudStorage configures the cloud bucket mirror. Optional.
	CloudStorage CloudStorageConfig `yaml:"cloud_storage"`

	// CDNBaseURL is the public base URL served in front of the bucket.
	CDNBaseURL string `yaml:"cdn_base_url"`
}

// CloudStorageConfig describes the cloud object-storage mirror.
type CloudStorageConfig struct {
	Bucket    string `yaml:"bucket"`
	ProjectID string `yaml:"project_id"`

	// CredentialsFile is the path to the service-account key. Treated as a
	// secret so the path never leaks into logs or findings.
	CredentialsFile Secret `yaml:"credentials_file"`
}

// DatabaseConfig holds connection settings for the companion web database.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password Secret `yaml:"password"`

	// SSL enables TLS for the connection. Defaults to true when absent.
	SSL *bool `yaml:"ssl"`
}

// SSLEnabled reports whether the connection uses TLS.
func (d DatabaseConfig) SSLEnabled() bool {
	return d.SSL == nil || *d.SSL
}

// ProcessingConfig holds tunables shared across pipeline stages.
type ProcessingConfig struct {
	// OCRFixes maps common OCR misreads to their corrections
	// (e.g., "rn" → "m").
	OCRFixes map[string]string `yaml:"ocr_fixes"`

	// ChunkSize is the number of characters sent per analysis call.
	ChunkSize int `yaml:"chunk_size"`

	// ConfidenceThreshold is the minimum analysis confidence to auto-approve
	// a chunk without operator review. An explicit 0 approves everything,
	// so nil (not zero) means use the default.
	ConfidenceThreshold *float64 `yaml:"confidence_threshold"`

	// AudioFormat is the synthesis output container (e.g., "mp3").
	AudioFormat string `yaml:"audio_format"`

	// AudioBitrate is the encoder bitrate (e.g., "128k").
	AudioBitrate string `yaml:"audio_bitrate"`

	// AddPauses inserts a short pause between sentences. Defaults to true.
	AddPauses *bool `yaml:"add_pauses"`

	// ScenesPerBook is the target number of illustrations per book.
	ScenesPerBook int `yaml:"scenes_per_book"`

	// GenerateVariations is how many candidates to render per scene.
	GenerateVariations int `yaml:"generate_variations"`
}

// PausesEnabled reports whether inter-sentence pauses are inserted.
func (p ProcessingConfig) PausesEnabled() bool {
	return p.AddPauses == nil || *p.AddPauses
}

// MinConfidence returns the auto-approval threshold, or the default 0.85
// when the key is absent.
func (p ProcessingConfig) MinConfidence() float64 {
	if p.ConfidenceThreshold == nil {
		return 0.85
	}
	return *p.ConfidenceThreshold
}

// CostsConfig is the rate table used for pre-run cost estimates.
// Rates are informational; nothing in this layer enforces budgets.
type CostsConfig struct {
	SpeechPer1kChars float64 `yaml:"speech_per_1k_chars"`
	ImagePerImage    float64 `yaml:"image_per_image"`
	AIPer1kTokens    float64 `yaml:"ai_per_1k_tokens"`
}

// PathsConfig holds the filesystem layout of a pipeline workspace.
type PathsConfig struct {
	Input    string `yaml:"input"`
	Working  string `yaml:"working"`
	Output   string `yaml:"output"`
	Archive  string `yaml:"archive"`
	Logs     string `yaml:"logs"`
	Database string `yaml:"database"`
}
