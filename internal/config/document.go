package config

// Document is a loaded configuration: the typed view with defaults applied,
// plus the raw as-supplied tree the validator inspects. A Document is
// immutable after [Load] returns; hot reloads replace the whole Document
// rather than mutating it, so concurrent readers never need coordination.
type Document struct {
	cfg    *Config
	raw    map[string]any
	schema *Schema
}

// Config returns the typed view with registry defaults applied.
func (d *Document) Config() *Config {
	return d.cfg
}

// Section returns a read-only resolved view of one section: the registry
// defaults overlaid with the values the operator supplied, including any
// keys the schema does not recognise (forward compatibility). Each pipeline
// stage reads only its own section through this accessor.
//
// Returns an error matching [ErrUnknownSection] when the section was never
// declared; requesting an undeclared section is a bug in the caller.
func (d *Document) Section(name string) (map[string]any, error) {
	sec, ok := d.schema.section(name)
	if !ok {
		return nil, errUnknownSection(name)
	}

	resolved := make(map[string]any, len(sec.keys))
	for _, ks := range sec.keys {
		if ks.def != nil {
			resolved[ks.key] = ks.def
		}
	}
	if supplied, ok := d.raw[name].(map[string]any); ok {
		for k, v := range supplied {
			if !isEmptyValue(v) {
				resolved[k] = v
			}
		}
	}
	return resolved, nil
}

// Per-stage typed accessors. Each stage takes only its own section and must
// not reach into the others.

func (d *Document) AIProvider() AIProviderConfig         { return d.cfg.AIProvider }
func (d *Document) SpeechProvider() SpeechProviderConfig { return d.cfg.SpeechProvider }
func (d *Document) ImageGen() ImageGenConfig             { return d.cfg.ImageGen }
func (d *Document) Storage() StorageConfig               { return d.cfg.Storage }
func (d *Document) Database() DatabaseConfig             { return d.cfg.Database }
func (d *Document) Processing() ProcessingConfig         { return d.cfg.Processing }
func (d *Document) Costs() CostsConfig                   { return d.cfg.Costs }
func (d *Document) Paths() PathsConfig                   { return d.cfg.Paths }

// isEmptyValue reports whether a raw document value counts as absent for
// resolution purposes: nil, the empty string, or a zero-length collection.
func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	}
	return false
}
