package config

import (
	"encoding/json"
	"log/slog"
)

// redactedPlaceholder replaces secret values in every textual output path.
const redactedPlaceholder = "[redacted]"

// Secret is a string whose value must never appear in logs, findings, or
// serialised output. Credential-bearing fields (API keys, the database
// password, the cloud credentials path) use this type so accidental
// emission is prevented at the type level; code that genuinely needs the
// value must call [Secret.Reveal].
type Secret string

// IsSet reports whether the secret has a non-empty value.
func (s Secret) IsSet() bool {
	return s != ""
}

// Reveal returns the underlying value. Call sites are the audit surface for
// secret usage; keep them confined to client construction.
func (s Secret) Reveal() string {
	return string(s)
}

// String returns a placeholder instead of the value, so %v/%s formatting
// cannot leak it. An unset secret renders as the empty string.
func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return redactedPlaceholder
}

// GoString guards the %#v verb as well.
func (s Secret) GoString() string {
	return "config.Secret(" + s.String() + ")"
}

// LogValue implements [slog.LogValuer] so structured logging redacts the value.
func (s Secret) LogValue() slog.Value {
	return slog.StringValue(s.String())
}

// MarshalYAML redacts the value when a configuration is re-serialised.
func (s Secret) MarshalYAML() (any, error) {
	return s.String(), nil
}

// MarshalJSON redacts the value in JSON output.
func (s Secret) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
