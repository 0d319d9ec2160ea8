package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sean-roth/compel-classics-pipeline/pkg/provider/analysis"
	"github.com/sean-roth/compel-classics-pipeline/pkg/provider/archive"
	"github.com/sean-roth/compel-classics-pipeline/pkg/provider/image"
	"github.com/sean-roth/compel-classics-pipeline/pkg/provider/speech"
)

// ErrProviderNotRegistered is returned by Create* methods when no factory
// has been registered under the requested provider name.
var ErrProviderNotRegistered = errors.New("config: provider not registered")

// Registry maps provider names to their constructor functions for each
// pipeline stage kind. Each factory receives only the configuration section
// relevant to its stage. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	analysis map[string]func(AIProviderConfig) (analysis.Provider, error)
	speech   map[string]func(SpeechProviderConfig) (speech.Provider, error)
	image    map[string]func(ImageGenConfig) (image.Provider, error)
	archive  map[string]func(StorageConfig) (archive.Store, error)
}

// NewRegistry returns an empty, ready-to-use [Registry].
func NewRegistry() *Registry {
	return &Registry{
		analysis: make(map[string]func(AIProviderConfig) (analysis.Provider, error)),
		speech:   make(map[string]func(SpeechProviderConfig) (speech.Provider, error)),
		image:    make(map[string]func(ImageGenConfig) (image.Provider, error)),
		archive:  make(map[string]func(StorageConfig) (archive.Store, error)),
	}
}

// RegisterAnalysis registers a narrative-analysis provider factory under
// name. Subsequent calls with the same name overwrite the previous
// registration.
func (r *Registry) RegisterAnalysis(name string, factory func(AIProviderConfig) (analysis.Provider, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.analysis[name] = factory
}

// RegisterSpeech registers a speech-synthesis provider factory under name.
func (r *Registry) RegisterSpeech(name string, factory func(SpeechProviderConfig) (speech.Provider, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.speech[name] = factory
}

// RegisterImage registers an illustration provider factory under name.
func (r *Registry) RegisterImage(name string, factory func(ImageGenConfig) (image.Provider, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.image[name] = factory
}

// RegisterArchive registers an archival storage backend factory under name
// (e.g., "local", "gcs").
func (r *Registry) RegisterArchive(name string, factory func(StorageConfig) (archive.Store, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.archive[name] = factory
}

// CreateAnalysis instantiates the analysis provider named by cfg.Provider.
// Returns [ErrProviderNotRegistered] if no factory is registered for it.
func (r *Registry) CreateAnalysis(cfg AIProviderConfig) (analysis.Provider, error) {
	r.mu.RLock()
	factory, ok := r.analysis[string(cfg.Provider)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: analysis/%q", ErrProviderNotRegistered, cfg.Provider)
	}
	return factory(cfg)
}

// CreateSpeech instantiates the synthesis provider named by cfg.Provider.
func (r *Registry) CreateSpeech(cfg SpeechProviderConfig) (speech.Provider, error) {
	r.mu.RLock()
	factory, ok := r.speech[string(cfg.Provider)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: speech/%q", ErrProviderNotRegistered, cfg.Provider)
	}
	return factory(cfg)
}

// CreateImage instantiates the illustration provider named by cfg.Provider.
func (r *Registry) CreateImage(cfg ImageGenConfig) (image.Provider, error) {
	r.mu.RLock()
	factory, ok := r.image[string(cfg.Provider)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: image/%q", ErrProviderNotRegistered, cfg.Provider)
	}
	return factory(cfg)
}

// CreateArchive instantiates the storage backend registered under name. The
// storage section carries both local and cloud settings, so the backend is
// selected explicitly rather than from a section key.
func (r *Registry) CreateArchive(name string, cfg StorageConfig) (archive.Store, error) {
	r.mu.RLock()
	factory, ok := r.archive[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: archive/%q", ErrProviderNotRegistered, name)
	}
	return factory(cfg)
}
