package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// FindingKind classifies one reported problem from a validation pass.
type FindingKind int

const (
	// MissingRequiredField means a required (section, key) pair resolved
	// empty.
	// Always fatal for execution readiness.
	MissingRequiredField FindingKind = iota

	// TypeMismatch means a supplied value disagrees with the declared kind,
	// enum set, or numeric range. Severity is caller policy.
	TypeMismatch

	// UnknownKeyWarning means a supplied section or key is not declared in
	// the schema. Informational only; never blocks validity.
	UnknownKeyWarning
)

// String returns the kind name used in logs.
func (k FindingKind) String() string {
	switch k {
	case MissingRequiredField:
		return "missing_required_field"
	case TypeMismatch:
		return "type_mismatch"
	case UnknownKeyWarning:
		return "unknown_key"
	}
	return "unknown"
}

// Finding is a single reported problem. Findings name fields, never field
// values of secret-bearing keys.
type Finding struct {
	Section string

	// Key is the option name, possibly dotted for nested entries
	// (e.g. "voices.narrator_primary.settings.stability"). Empty for
	// section-level findings.
	Key string

	Kind FindingKind

	// Expected and Actual describe a type mismatch; empty otherwise.
	Expected string
	Actual   string
}

// Path returns "section" or "section.key".
func (f Finding) Path() string {
	if f.Key == "" {
		return f.Section
	}
	return f.Section + "." + f.Key
}

// String renders the finding in the CLI's one-per-line format.
func (f Finding) String() string {
	switch f.Kind {
	case MissingRequiredField:
		return f.Path() + ": missing required value"
	case TypeMismatch:
		return fmt.Sprintf("%s: expected %s, got %s", f.Path(), f.Expected, f.Actual)
	case UnknownKeyWarning:
		if f.Key == "" {
			return f.Path() + ": unrecognized section (ignored)"
		}
		return f.Path() + ": unrecognized key (ignored)"
	}
	return f.Path() + ": unknown finding"
}

// Result is the outcome of one validation pass. Findings are accumulated,
// never short-circuited: a single pass reports every problem so operators
// can fix the whole file in one round.
type Result struct {
	Findings []Finding
}

// Valid reports execution readiness: no required field resolved empty.
// Unknown-key warnings never block validity; type mismatches are judged
// separately via [Result.Clean] so callers can set their own policy.
func (r Result) Valid() bool {
	return len(r.byKind(MissingRequiredField)) == 0
}

// Clean reports whether the document is both valid and free of type
// mismatches.
func (r Result) Clean() bool {
	return r.Valid() && len(r.byKind(TypeMismatch)) == 0
}

// Warnings returns the informational findings only.
func (r Result) Warnings() []Finding {
	return r.byKind(UnknownKeyWarning)
}

func (r Result) byKind(kind FindingKind) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// Validator checks a Document against the schema and the required fields.
// It holds no per-document state, so one Validator can check any number of
// candidate documents without cross-contamination.
type Validator struct {
	schema       *Schema
	requirements []Requirement
}

// NewValidator returns a Validator for the given schema. With no explicit
// requirements it uses the package-level [Requirements].
func NewValidator(schema *Schema, reqs ...Requirement) *Validator {
	if schema == nil {
		schema = DefaultSchema()
	}
	if len(reqs) == 0 {
		reqs = Requirements
	}
	return &Validator{schema: schema, requirements: reqs}
}

// Validate runs one full pass over doc and returns every finding. The pass
// is pure: same document in, same result out, no side effects.
//
// Finding order is deterministic: [Requirements] order first, then
// type-check findings in schema declaration order, with unknown keys and
// sections sorted lexicographically at the end of their scope.
func (v *Validator) Validate(doc *Document) Result {
	var findings []Finding

	// Required fields, in declared order. A value counts as present when
	// the document supplies it non-empty or the schema carries a default.
	for _, req := range v.requirements {
		val := rawValue(doc.raw, req.Section, req.Key)
		if !isEmptyValue(val) {
			continue
		}
		if def, ok := v.schema.DefaultFor(req.Section, req.Key); ok && !isEmptyValue(def) {
			continue
		}
		findings = append(findings, Finding{
			Section: req.Section,
			Key:     req.Key,
			Kind:    MissingRequiredField,
		})
	}

	// Type scan over everything the document supplies.
	for _, sec := range v.schema.sections {
		supplied, present := doc.raw[sec.name]
		if !present || supplied == nil {
			continue
		}
		m, ok := supplied.(map[string]any)
		if !ok {
			findings = append(findings, Finding{
				Section:  sec.name,
				Kind:     TypeMismatch,
				Expected: KindMapping.String(),
				Actual:   describeValue(supplied, false),
			})
			continue
		}

		for i := range sec.keys {
			ks := &sec.keys[i]
			val, ok := m[ks.key]
			if !ok || val == nil {
				continue
			}
			findings = append(findings, checkValue(sec.name, ks.key, ks, val)...)
		}
		findings = append(findings, unknownKeys(sec.name, "", m, declaredKeys(sec))...)
	}

	// Sections the schema has never heard of.
	var extra []string
	for name := range doc.raw {
		if _, ok := v.schema.section(name); !ok {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	for _, name := range extra {
		findings = append(findings, Finding{
			Section: name,
			Kind:    UnknownKeyWarning,
		})
	}

	return Result{Findings: findings}
}

// checkValue type-checks one supplied value against its key spec and
// returns any findings, recursing into declared sub-mappings and the voice
// catalogue.
func checkValue(section, path string, ks *keySpec, val any) []Finding {
	mismatch := func(expected string) []Finding {
		return []Finding{{
			Section:  section,
			Key:      path,
			Kind:     TypeMismatch,
			Expected: expected,
			Actual:   describeValue(val, ks.secret),
		}}
	}

	switch ks.kind {
	case KindString:
		if _, ok := val.(string); !ok {
			return mismatch(KindString.String())
		}
	case KindBool:
		if _, ok := val.(bool); !ok {
			return mismatch(KindBool.String())
		}
	case KindNumber:
		f, ok := toFloat(val)
		if !ok {
			return mismatch(numberLabel(ks))
		}
		if ks.ranged && (f < ks.min || f > ks.max) {
			return mismatch(numberLabel(ks))
		}
	case KindEnum:
		s, ok := val.(string)
		if !ok || !slices.Contains(ks.enum, s) {
			return mismatch("one of " + strings.Join(ks.enum, ", "))
		}
	case KindSequence:
		if _, ok := val.([]any); !ok {
			return mismatch(KindSequence.String())
		}
	case KindMapping:
		m, ok := val.(map[string]any)
		if !ok {
			return mismatch(KindMapping.String())
		}
		if ks.voices {
			return checkVoices(section, path, m)
		}
		if len(ks.sub) > 0 {
			var findings []Finding
			for i := range ks.sub {
				sub := &ks.sub[i]
				v, ok := m[sub.key]
				if !ok || v == nil {
					continue
				}
				findings = append(findings, checkValue(section, path+"."+sub.key, sub, v)...)
			}
			known := make([]string, len(ks.sub))
			for i, sub := range ks.sub {
				known[i] = sub.key
			}
			return append(findings, unknownKeys(section, path, m, known)...)
		}
		// Open mapping (e.g. ocr_fixes, provider-specific options):
		// entries are intentionally unchecked for forward compatibility.
	}
	return nil
}

// voiceSettingKeys are the recognised per-voice synthesis parameters, all
// constrained to [0.0, 1.0]. Out-of-range values are findings, not clamped.
var voiceSettingKeys = []string{"stability", "similarity_boost", "style"}

// checkVoices validates the shape of each voice catalogue entry. Entries
// are visited in sorted name order so findings stay deterministic.
func checkVoices(section, path string, voices map[string]any) []Finding {
	var findings []Finding

	names := make([]string, 0, len(voices))
	for name := range voices {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		entryPath := path + "." + name
		entry, ok := voices[name].(map[string]any)
		if !ok {
			findings = append(findings, Finding{
				Section:  section,
				Key:      entryPath,
				Kind:     TypeMismatch,
				Expected: KindMapping.String(),
				Actual:   describeValue(voices[name], false),
			})
			continue
		}

		for _, field := range []string{"voice_id", "name"} {
			v, ok := entry[field]
			if !ok || v == nil {
				continue
			}
			if _, ok := v.(string); !ok {
				findings = append(findings, Finding{
					Section:  section,
					Key:      entryPath + "." + field,
					Kind:     TypeMismatch,
					Expected: KindString.String(),
					Actual:   describeValue(v, false),
				})
			}
		}

		if rawSettings, ok := entry["settings"]; ok && rawSettings != nil {
			settings, ok := rawSettings.(map[string]any)
			if !ok {
				findings = append(findings, Finding{
					Section:  section,
					Key:      entryPath + ".settings",
					Kind:     TypeMismatch,
					Expected: KindMapping.String(),
					Actual:   describeValue(rawSettings, false),
				})
			} else {
				for _, param := range voiceSettingKeys {
					v, ok := settings[param]
					if !ok || v == nil {
						continue
					}
					f, isNum := toFloat(v)
					if !isNum || f < 0 || f > 1 {
						findings = append(findings, Finding{
							Section:  section,
							Key:      entryPath + ".settings." + param,
							Kind:     TypeMismatch,
							Expected: "number[0,1]",
							Actual:   describeValue(v, false),
						})
					}
				}
				findings = append(findings, unknownKeys(section, entryPath+".settings", settings, voiceSettingKeys)...)
			}
		}

		findings = append(findings, unknownKeys(section, entryPath, entry, []string{"voice_id", "name", "settings"})...)
	}
	return findings
}

// unknownKeys emits sorted unknown-key warnings for keys of m not in known.
func unknownKeys(section, path string, m map[string]any, known []string) []Finding {
	var extra []string
	for k := range m {
		if !slices.Contains(known, k) {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)

	findings := make([]Finding, 0, len(extra))
	for _, k := range extra {
		key := k
		if path != "" {
			key = path + "." + k
		}
		findings = append(findings, Finding{
			Section: section,
			Key:     key,
			Kind:    UnknownKeyWarning,
		})
	}
	return findings
}

// declaredKeys returns the key names of a section spec.
func declaredKeys(sec sectionSpec) []string {
	keys := make([]string, len(sec.keys))
	for i, ks := range sec.keys {
		keys[i] = ks.key
	}
	return keys
}

// rawValue resolves (section, key) in the as-supplied tree, or nil.
func rawValue(raw map[string]any, section, key string) any {
	m, ok := raw[section].(map[string]any)
	if !ok {
		return nil
	}
	return m[key]
}

// toFloat widens any YAML numeric scalar to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}

// numberLabel renders the expected type of a numeric key, including its
// range when one is declared (e.g. "number[0,1]").
func numberLabel(ks *keySpec) string {
	if !ks.ranged {
		return KindNumber.String()
	}
	return "number[" + formatFloat(ks.min) + "," + formatFloat(ks.max) + "]"
}

// describeValue renders a supplied value for the Actual side of a mismatch.
// Secret-bearing keys render only the value's shape, never its content.
func describeValue(v any, secret bool) string {
	kind := func() string {
		switch v.(type) {
		case nil:
			return "null"
		case string:
			return KindString.String()
		case bool:
			return KindBool.String()
		case map[string]any:
			return KindMapping.String()
		case []any:
			return KindSequence.String()
		}
		if _, ok := toFloat(v); ok {
			return KindNumber.String()
		}
		return "unknown"
	}()

	if secret {
		return kind
	}

	switch t := v.(type) {
	case string:
		return strconv.Quote(t)
	case bool:
		return strconv.FormatBool(t)
	case map[string]any, []any, nil:
		return kind
	}
	if f, ok := toFloat(v); ok {
		return formatFloat(f)
	}
	return kind
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
