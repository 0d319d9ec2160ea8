package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a [Document].
// Loading never judges data quality; run a [Validator] over the result to
// learn whether the pipeline may execute.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	doc, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return doc, nil
}

// LoadFromReader decodes a YAML configuration from r. Useful in tests where
// documents are constructed from string literals.
//
// The loader builds two views of the same bytes: the raw as-supplied tree
// (what the validator inspects, so unknown keys and shape problems are
// preserved) and the typed view (what pipeline stages consume, with
// environment overrides applied and registry defaults merged in). A section
// that fails typed decoding keeps its zero values; the validator reports
// the shape problem and accessors fall back to defaults.
func LoadFromReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("config: read: %w", err)
	}

	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if raw == nil {
		// A null document ("~", "null", a bare "---") decodes the map to
		// nil. Treat it like an empty one so overrides still have a tree
		// to write into.
		raw = map[string]any{}
	}

	cfg := decodeTyped(data)

	if err := applyEnvOverrides(cfg, raw); err != nil {
		return nil, err
	}

	if cfg.Processing.OCRFixes == nil {
		cfg.Processing.OCRFixes = defaultOCRFixes()
	}
	if err := mergo.Merge(cfg, defaultConfig()); err != nil {
		return nil, fmt.Errorf("config: merge defaults: %w", err)
	}

	return &Document{cfg: cfg, raw: raw, schema: DefaultSchema()}, nil
}

// decodeTyped decodes each recognised section independently so one
// malformed section cannot take down the whole typed view.
func decodeTyped(data []byte) *Config {
	cfg := &Config{}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil || len(root.Content) == 0 {
		return cfg
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return cfg
	}

	targets := map[string]any{
		"ai_provider":     &cfg.AIProvider,
		"speech_provider": &cfg.SpeechProvider,
		"image_gen":       &cfg.ImageGen,
		"storage":         &cfg.Storage,
		"database":        &cfg.Database,
		"processing":      &cfg.Processing,
		"costs":           &cfg.Costs,
		"paths":           &cfg.Paths,
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, val := mapping.Content[i], mapping.Content[i+1]
		target, ok := targets[key.Value]
		if !ok {
			continue
		}
		if err := val.Decode(target); err != nil {
			slog.Debug("config: typed decode of section failed; validator will report it",
				"section", key.Value, "err", err)
		}
	}
	return cfg
}

// envOverrides maps environment variables onto the secret-bearing fields.
// Environment values win over the file so credentials can stay out of it.
type envOverrides struct {
	AIAPIKey           string `env:"COMPEL_AI_API_KEY"`
	SpeechAPIKey       string `env:"COMPEL_SPEECH_API_KEY"`
	DBPassword         string `env:"COMPEL_DB_PASSWORD"`
	GCSCredentialsFile string `env:"COMPEL_GCS_CREDENTIALS_FILE"`
}

// applyEnvOverrides writes non-empty environment values into both views, so
// the validator sees exactly what the stages will consume.
func applyEnvOverrides(cfg *Config, raw map[string]any) error {
	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return fmt.Errorf("config: parse environment: %w", err)
	}

	if ov.AIAPIKey != "" {
		cfg.AIProvider.APIKey = Secret(ov.AIAPIKey)
		setRaw(raw, ov.AIAPIKey, "ai_provider", "api_key")
	}
	if ov.SpeechAPIKey != "" {
		cfg.SpeechProvider.APIKey = Secret(ov.SpeechAPIKey)
		setRaw(raw, ov.SpeechAPIKey, "speech_provider", "api_key")
	}
	if ov.DBPassword != "" {
		cfg.Database.Password = Secret(ov.DBPassword)
		setRaw(raw, ov.DBPassword, "database", "password")
	}
	if ov.GCSCredentialsFile != "" {
		cfg.Storage.CloudStorage.CredentialsFile = Secret(ov.GCSCredentialsFile)
		setRaw(raw, ov.GCSCredentialsFile, "storage", "cloud_storage", "credentials_file")
	}
	return nil
}

// setRaw writes value at the given path in the raw tree, creating
// intermediate mappings as needed.
func setRaw(raw map[string]any, value string, path ...string) {
	m := raw
	for _, p := range path[:len(path)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[p] = next
		}
		m = next
	}
	m[path[len(path)-1]] = value
}

// defaultConfig mirrors the defaults declared in [DefaultSchema] as a typed
// value, merged into the loaded view for keys the operator omitted.
// schema_test.go keeps the two in sync.
func defaultConfig() *Config {
	return &Config{
		AIProvider: AIProviderConfig{
			Provider:    AIAnthropic,
			Model:       "claude-sonnet-4.5",
			MaxTokens:   4000,
			Temperature: floatPtr(0.3),
		},
		SpeechProvider: SpeechProviderConfig{
			Provider:       SpeechElevenLabs,
			UseFlashModels: boolPtr(true),
		},
		ImageGen: ImageGenConfig{
			Provider:   ImageComfyUI,
			APIURL:     "http://localhost:8188",
			Style:      "victorian_illustrations",
			Resolution: "1024x1024",
			Steps:      30,
			CFGScale:   7.5,
		},
		Storage: StorageConfig{
			WorkingDir: "./working",
			OutputDir:  "./output",
		},
		Database: DatabaseConfig{
			Port:     5432,
			Database: "compel_english",
			SSL:      boolPtr(true),
		},
		Processing: ProcessingConfig{
			ChunkSize:           5000,
			ConfidenceThreshold: floatPtr(0.85),
			AudioFormat:         "mp3",
			AudioBitrate:        "128k",
			AddPauses:           boolPtr(true),
			ScenesPerBook:       10,
			GenerateVariations:  3,
		},
		Costs: CostsConfig{
			SpeechPer1kChars: 0.20,
			ImagePerImage:    0.75,
			AIPer1kTokens:    0.003,
		},
		Paths: PathsConfig{
			Input:    "./input",
			Working:  "./working",
			Output:   "./output",
			Logs:     "./logs",
			Database: "./pipeline.db",
		},
	}
}

// defaultOCRFixes is applied only when the operator supplies no ocr_fixes
// mapping at all; a supplied mapping replaces the table rather than being
// unioned with it.
func defaultOCRFixes() map[string]string {
	return map[string]string{
		"rn": "m",
		"vv": "w",
		"l1": "ll",
		"cl": "d",
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func floatPtr(f float64) *float64 {
	return &f
}
