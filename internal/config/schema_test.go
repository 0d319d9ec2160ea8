package config_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/sean-roth/compel-classics-pipeline/internal/config"
)

func TestSchema_Describe(t *testing.T) {
	t.Parallel()
	s := config.DefaultSchema()

	keys, err := s.Describe("ai_provider")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"provider", "api_key", "model", "max_tokens", "temperature"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("ai_provider keys:\n got %v\nwant %v", keys, want)
	}
}

func TestSchema_DescribeUnknownSection(t *testing.T) {
	t.Parallel()
	_, err := config.DefaultSchema().Describe("telemetry")
	if !errors.Is(err, config.ErrUnknownSection) {
		t.Fatalf("expected ErrUnknownSection, got: %v", err)
	}
	if !strings.Contains(err.Error(), "telemetry") {
		t.Errorf("error should name the section, got: %v", err)
	}
}

func TestSchema_DefaultFor(t *testing.T) {
	t.Parallel()
	s := config.DefaultSchema()

	def, ok := s.DefaultFor("database", "port")
	if !ok {
		t.Fatal("database.port should have a default")
	}
	if def != 5432 {
		t.Errorf("database.port default: got %v", def)
	}

	if _, ok := s.DefaultFor("ai_provider", "api_key"); ok {
		t.Error("required secrets must not carry defaults")
	}
	if _, ok := s.DefaultFor("storage", "local_archive_path"); ok {
		t.Error("storage.local_archive_path must not carry a default")
	}
	if _, ok := s.DefaultFor("nonexistent", "key"); ok {
		t.Error("undeclared pair must not report a default")
	}
}

func TestSchema_TypeOf(t *testing.T) {
	t.Parallel()
	s := config.DefaultSchema()

	cases := []struct {
		section, key string
		want         config.Kind
	}{
		{"ai_provider", "provider", config.KindEnum},
		{"ai_provider", "api_key", config.KindString},
		{"ai_provider", "max_tokens", config.KindNumber},
		{"speech_provider", "use_flash_models", config.KindBool},
		{"speech_provider", "voices", config.KindMapping},
		{"processing", "ocr_fixes", config.KindMapping},
		{"storage", "cloud_storage", config.KindMapping},
	}
	for _, c := range cases {
		got, ok := s.TypeOf(c.section, c.key)
		if !ok {
			t.Errorf("%s.%s: not declared", c.section, c.key)
			continue
		}
		if got != c.want {
			t.Errorf("%s.%s: got %v, want %v", c.section, c.key, got, c.want)
		}
	}

	if _, ok := s.TypeOf("ai_provider", "nonexistent"); ok {
		t.Error("undeclared key must not report a kind")
	}
}

func TestSchema_SectionsMatchRequirements(t *testing.T) {
	t.Parallel()
	s := config.DefaultSchema()
	sections := s.Sections()

	// Every requirement must point at a declared (section, key) pair.
	for _, req := range config.Requirements {
		found := false
		for _, name := range sections {
			if name == req.Section {
				found = true
			}
		}
		if !found {
			t.Errorf("requirement %s.%s: section not declared", req.Section, req.Key)
			continue
		}
		if _, ok := s.TypeOf(req.Section, req.Key); !ok {
			t.Errorf("requirement %s.%s: key not declared", req.Section, req.Key)
		}
	}
}

// The typed defaults merged by the loader must agree with the schema table;
// this pins the two declarations together.
func TestSchema_DefaultsMatchTypedView(t *testing.T) {
	doc := load(t, "{}")
	cfg := doc.Config()
	s := config.DefaultSchema()

	cases := []struct {
		section, key string
		got          any
	}{
		{"ai_provider", "provider", string(cfg.AIProvider.Provider)},
		{"ai_provider", "model", cfg.AIProvider.Model},
		{"ai_provider", "max_tokens", cfg.AIProvider.MaxTokens},
		{"ai_provider", "temperature", cfg.AIProvider.SamplingTemperature()},
		{"speech_provider", "use_flash_models", cfg.SpeechProvider.FlashModels()},
		{"image_gen", "api_url", cfg.ImageGen.APIURL},
		{"image_gen", "steps", cfg.ImageGen.Steps},
		{"image_gen", "cfg_scale", cfg.ImageGen.CFGScale},
		{"storage", "working_dir", cfg.Storage.WorkingDir},
		{"database", "port", cfg.Database.Port},
		{"database", "database", cfg.Database.Database},
		{"database", "ssl", cfg.Database.SSLEnabled()},
		{"processing", "chunk_size", cfg.Processing.ChunkSize},
		{"processing", "confidence_threshold", cfg.Processing.MinConfidence()},
		{"processing", "audio_format", cfg.Processing.AudioFormat},
		{"costs", "speech_per_1k_chars", cfg.Costs.SpeechPer1kChars},
		{"costs", "ai_per_1k_tokens", cfg.Costs.AIPer1kTokens},
		{"paths", "logs", cfg.Paths.Logs},
		{"paths", "database", cfg.Paths.Database},
	}
	for _, c := range cases {
		def, ok := s.DefaultFor(c.section, c.key)
		if !ok {
			t.Errorf("%s.%s: schema has no default but the typed view sets one", c.section, c.key)
			continue
		}
		if !reflect.DeepEqual(def, c.got) {
			t.Errorf("%s.%s: schema default %v, typed view %v", c.section, c.key, def, c.got)
		}
	}
}
