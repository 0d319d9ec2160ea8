package config_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sean-roth/compel-classics-pipeline/internal/config"
	"github.com/sean-roth/compel-classics-pipeline/pkg/provider/analysis"
	"github.com/sean-roth/compel-classics-pipeline/pkg/provider/archive"
	"github.com/sean-roth/compel-classics-pipeline/pkg/provider/image"
	"github.com/sean-roth/compel-classics-pipeline/pkg/provider/speech"
)

type stubAnalysis struct{ model string }

func (s *stubAnalysis) Analyze(ctx context.Context, req analysis.Request) (*analysis.Result, error) {
	return &analysis.Result{}, nil
}

type stubSpeech struct{}

func (s *stubSpeech) Synthesize(ctx context.Context, text string, voice speech.VoiceProfile) ([]byte, error) {
	return nil, nil
}

func (s *stubSpeech) ListVoices(ctx context.Context) ([]speech.VoiceProfile, error) {
	return nil, nil
}

type stubImage struct{}

func (s *stubImage) Generate(ctx context.Context, req image.Request) ([]image.Image, error) {
	return nil, nil
}

type stubStore struct{ base string }

func (s *stubStore) Put(ctx context.Context, key string, r io.Reader) error { return nil }
func (s *stubStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, errors.New("not found")
}
func (s *stubStore) URL(key string) string { return s.base + "/" + key }

func TestRegistry_CreateAnalysis(t *testing.T) {
	t.Parallel()
	r := config.NewRegistry()
	r.RegisterAnalysis("anthropic", func(cfg config.AIProviderConfig) (analysis.Provider, error) {
		return &stubAnalysis{model: cfg.Model}, nil
	})

	p, err := r.CreateAnalysis(config.AIProviderConfig{Provider: config.AIAnthropic, Model: "claude-sonnet-4.5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stub, ok := p.(*stubAnalysis)
	if !ok {
		t.Fatalf("unexpected provider type %T", p)
	}
	if stub.model != "claude-sonnet-4.5" {
		t.Errorf("factory did not receive the section: got %q", stub.model)
	}
}

func TestRegistry_CreateSpeech(t *testing.T) {
	t.Parallel()
	r := config.NewRegistry()
	r.RegisterSpeech("elevenlabs", func(cfg config.SpeechProviderConfig) (speech.Provider, error) {
		return &stubSpeech{}, nil
	})

	p, err := r.CreateSpeech(config.SpeechProviderConfig{Provider: config.SpeechElevenLabs})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*stubSpeech); !ok {
		t.Errorf("unexpected provider type %T", p)
	}
}

func TestRegistry_UnregisteredProvider(t *testing.T) {
	t.Parallel()
	r := config.NewRegistry()

	_, err := r.CreateAnalysis(config.AIProviderConfig{Provider: "openai"})
	if !errors.Is(err, config.ErrProviderNotRegistered) {
		t.Fatalf("expected ErrProviderNotRegistered, got: %v", err)
	}

	_, err = r.CreateSpeech(config.SpeechProviderConfig{Provider: "azure"})
	if !errors.Is(err, config.ErrProviderNotRegistered) {
		t.Fatalf("expected ErrProviderNotRegistered, got: %v", err)
	}

	_, err = r.CreateImage(config.ImageGenConfig{Provider: "dall-e"})
	if !errors.Is(err, config.ErrProviderNotRegistered) {
		t.Fatalf("expected ErrProviderNotRegistered, got: %v", err)
	}

	_, err = r.CreateArchive("s3", config.StorageConfig{})
	if !errors.Is(err, config.ErrProviderNotRegistered) {
		t.Fatalf("expected ErrProviderNotRegistered, got: %v", err)
	}
}

func TestRegistry_FactoryErrorPassthrough(t *testing.T) {
	t.Parallel()
	sentinel := errors.New("missing credentials file")

	r := config.NewRegistry()
	r.RegisterArchive("gcs", func(cfg config.StorageConfig) (archive.Store, error) {
		return nil, sentinel
	})

	_, err := r.CreateArchive("gcs", config.StorageConfig{})
	if !errors.Is(err, sentinel) {
		t.Fatalf("factory error should pass through, got: %v", err)
	}
}

func TestRegistry_ReRegisterOverwrites(t *testing.T) {
	t.Parallel()
	r := config.NewRegistry()
	r.RegisterImage("comfyui", func(cfg config.ImageGenConfig) (image.Provider, error) {
		return nil, errors.New("old factory")
	})
	r.RegisterImage("comfyui", func(cfg config.ImageGenConfig) (image.Provider, error) {
		return &stubImage{}, nil
	})

	p, err := r.CreateImage(config.ImageGenConfig{Provider: config.ImageComfyUI})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*stubImage); !ok {
		t.Errorf("re-registration did not overwrite: got %T", p)
	}
}

func TestRegistry_ArchiveBackendSelection(t *testing.T) {
	t.Parallel()
	r := config.NewRegistry()
	r.RegisterArchive("local", func(cfg config.StorageConfig) (archive.Store, error) {
		return &stubStore{base: cfg.LocalArchivePath}, nil
	})
	r.RegisterArchive("gcs", func(cfg config.StorageConfig) (archive.Store, error) {
		return &stubStore{base: "gs://" + cfg.CloudStorage.Bucket}, nil
	})

	cfg := config.StorageConfig{
		LocalArchivePath: "/mnt/archive",
		CloudStorage:     config.CloudStorageConfig{Bucket: "compel-classics"},
	}

	local, err := r.CreateArchive("local", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := local.URL("book-42/audio.mp3"); got != "/mnt/archive/book-42/audio.mp3" {
		t.Errorf("local url: got %q", got)
	}

	cloud, err := r.CreateArchive("gcs", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cloud.URL("book-42/audio.mp3"); got != "gs://compel-classics/book-42/audio.mp3" {
		t.Errorf("cloud url: got %q", got)
	}
}
