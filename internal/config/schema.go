package config

import "errors"

// ErrUnknownSection is returned when code asks the schema about a section
// that was never declared. This is a programmer error, not a data problem,
// so it surfaces immediately instead of becoming a finding.
var ErrUnknownSection = errors.New("config: unknown section")

// Kind classifies the expected shape of a configuration value.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindEnum
	KindMapping
	KindSequence
)

// String returns the kind name as used in finding messages.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindEnum:
		return "enum"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	}
	return "unknown"
}

// keySpec declares one recognised option: its kind, optional default,
// optional enum value set, optional numeric range, and whether its value is
// secret (and therefore never rendered in findings).
type keySpec struct {
	key    string
	kind   Kind
	def    any
	secret bool
	enum   []string
	min    float64
	max    float64
	ranged bool

	// sub declares the keys of a nested mapping (depth 3 in the document
	// tree, e.g. storage → cloud_storage → bucket).
	sub []keySpec

	// voices marks the speech voice catalogue, whose entries follow the
	// fixed profile shape instead of a flat key list.
	voices bool
}

// sectionSpec declares one top-level section and its keys, in declaration
// order. Declaration order fixes the order of type-check findings.
type sectionSpec struct {
	name string
	keys []keySpec
}

// Schema is the registry of recognised sections, keys, value kinds, and
// defaults. It is immutable after construction and safe for concurrent use.
type Schema struct {
	sections []sectionSpec
}

// Requirement names one (section, key) pair that must resolve to a
// non-empty value before the pipeline may run.
type Requirement struct {
	Section string
	Key     string
}

// Requirements lists the fields that must resolve non-empty before any
// pipeline stage runs. Evaluated in this order, and the names are part of
// the interoperability contract with other tooling.
var Requirements = []Requirement{
	{Section: "ai_provider", Key: "api_key"},
	{Section: "speech_provider", Key: "api_key"},
	{Section: "storage", Key: "local_archive_path"},
}

// DefaultSchema declares every recognised section and key of the pipeline
// configuration, mirroring the shipped configuration template.
func DefaultSchema() *Schema {
	return &Schema{sections: []sectionSpec{
		{name: "ai_provider", keys: []keySpec{
			{key: "provider", kind: KindEnum, def: string(AIAnthropic), enum: []string{string(AIAnthropic), string(AILocalLLM)}},
			{key: "api_key", kind: KindString, secret: true},
			{key: "model", kind: KindString, def: "claude-sonnet-4.5"},
			{key: "max_tokens", kind: KindNumber, def: 4000},
			{key: "temperature", kind: KindNumber, def: 0.3, min: 0, max: 2, ranged: true},
		}},
		{name: "speech_provider", keys: []keySpec{
			{key: "provider", kind: KindEnum, def: string(SpeechElevenLabs), enum: []string{string(SpeechElevenLabs)}},
			{key: "api_key", kind: KindString, secret: true},
			{key: "use_flash_models", kind: KindBool, def: true},
			{key: "voices", kind: KindMapping, voices: true},
		}},
		{name: "image_gen", keys: []keySpec{
			{key: "provider", kind: KindEnum, def: string(ImageComfyUI), enum: []string{string(ImageComfyUI), string(ImageStableDiffusionAPI)}},
			{key: "api_url", kind: KindString, def: "http://localhost:8188"},
			{key: "workflow_path", kind: KindString},
			{key: "style", kind: KindString, def: "victorian_illustrations"},
			{key: "resolution", kind: KindString, def: "1024x1024"},
			{key: "steps", kind: KindNumber, def: 30},
			{key: "cfg_scale", kind: KindNumber, def: 7.5},
		}},
		{name: "storage", keys: []keySpec{
			{key: "local_archive_path", kind: KindString},
			{key: "working_dir", kind: KindString, def: "./working"},
			{key: "output_dir", kind: KindString, def: "./output"},
			{key: "cloud_storage", kind: KindMapping, sub: []keySpec{
				{key: "bucket", kind: KindString},
				{key: "project_id", kind: KindString},
				{key: "credentials_file", kind: KindString, secret: true},
			}},
			{key: "cdn_base_url", kind: KindString},
		}},
		{name: "database", keys: []keySpec{
			{key: "host", kind: KindString},
			{key: "port", kind: KindNumber, def: 5432},
			{key: "database", kind: KindString, def: "compel_english"},
			{key: "user", kind: KindString},
			{key: "password", kind: KindString, secret: true},
			{key: "ssl", kind: KindBool, def: true},
		}},
		{name: "processing", keys: []keySpec{
			{key: "ocr_fixes", kind: KindMapping, def: map[string]string{
				"rn": "m",
				"vv": "w",
				"l1": "ll",
				"cl": "d",
			}},
			{key: "chunk_size", kind: KindNumber, def: 5000},
			{key: "confidence_threshold", kind: KindNumber, def: 0.85, min: 0, max: 1, ranged: true},
			{key: "audio_format", kind: KindString, def: "mp3"},
			{key: "audio_bitrate", kind: KindString, def: "128k"},
			{key: "add_pauses", kind: KindBool, def: true},
			{key: "scenes_per_book", kind: KindNumber, def: 10},
			{key: "generate_variations", kind: KindNumber, def: 3},
		}},
		{name: "costs", keys: []keySpec{
			{key: "speech_per_1k_chars", kind: KindNumber, def: 0.20},
			{key: "image_per_image", kind: KindNumber, def: 0.75},
			{key: "ai_per_1k_tokens", kind: KindNumber, def: 0.003},
		}},
		{name: "paths", keys: []keySpec{
			{key: "input", kind: KindString, def: "./input"},
			{key: "working", kind: KindString, def: "./working"},
			{key: "output", kind: KindString, def: "./output"},
			{key: "archive", kind: KindString},
			{key: "logs", kind: KindString, def: "./logs"},
			{key: "database", kind: KindString, def: "./pipeline.db"},
		}},
	}}
}

// Sections returns the declared section names in declaration order.
func (s *Schema) Sections() []string {
	names := make([]string, len(s.sections))
	for i, sec := range s.sections {
		names[i] = sec.name
	}
	return names
}

// Describe returns the recognised option names of a section, in declaration
// order. Returns [ErrUnknownSection] for an undeclared section.
func (s *Schema) Describe(section string) ([]string, error) {
	sec, ok := s.section(section)
	if !ok {
		return nil, errUnknownSection(section)
	}
	keys := make([]string, len(sec.keys))
	for i, k := range sec.keys {
		keys[i] = k.key
	}
	return keys, nil
}

// DefaultFor returns the default value for (section, key). The second return
// is false when the key has no default or is not declared.
func (s *Schema) DefaultFor(section, key string) (any, bool) {
	ks, ok := s.keySpec(section, key)
	if !ok || ks.def == nil {
		return nil, false
	}
	return ks.def, true
}

// TypeOf returns the declared kind of (section, key). The second return is
// false when the pair is not declared; callers report that as an
// unknown-key warning, not an error.
func (s *Schema) TypeOf(section, key string) (Kind, bool) {
	ks, ok := s.keySpec(section, key)
	if !ok {
		return 0, false
	}
	return ks.kind, true
}

func (s *Schema) section(name string) (*sectionSpec, bool) {
	for i := range s.sections {
		if s.sections[i].name == name {
			return &s.sections[i], true
		}
	}
	return nil, false
}

func (s *Schema) keySpec(section, key string) (*keySpec, bool) {
	sec, ok := s.section(section)
	if !ok {
		return nil, false
	}
	for i := range sec.keys {
		if sec.keys[i].key == key {
			return &sec.keys[i], true
		}
	}
	return nil, false
}

func errUnknownSection(name string) error {
	return &unknownSectionError{name: name}
}

// unknownSectionError carries the offending section name while matching
// [ErrUnknownSection] under errors.Is.
type unknownSectionError struct {
	name string
}

func (e *unknownSectionError) Error() string {
	return "config: unknown section " + `"` + e.name + `"`
}

func (e *unknownSectionError) Is(target error) bool {
	return target == ErrUnknownSection
}
