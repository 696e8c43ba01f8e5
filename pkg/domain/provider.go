package domain

import "strings"

const (
	// IdentifierPlaceholder is substituted with the scanned identifier in a provider URL template.
	IdentifierPlaceholder = "{identifier}"
	// LegacyPlaceholder is the placeholder used by older configuration files.
	LegacyPlaceholder = "{username}"
)

// Provider is one external endpoint checked for the presence of an identifier.
type Provider struct {
	// Name is the human-readable provider name reported in scan results.
	Name string `json:"name" yaml:"name"`
	// URLTemplate is the profile URL with a placeholder for the identifier.
	URLTemplate string `json:"urlTemplate" yaml:"url"`
	// Disabled providers are kept in configuration but never probed.
	Disabled bool `json:"-" yaml:"disabled"`
}

// URL returns the probe target for the given identifier. The identifier is
// substituted verbatim; callers are responsible for sanitizing it.
func (p Provider) URL(identifier string) string {
	return strings.NewReplacer(
		IdentifierPlaceholder, identifier,
		LegacyPlaceholder, identifier,
	).Replace(p.URLTemplate)
}

// HasPlaceholder reports whether the template contains an identifier placeholder.
func (p Provider) HasPlaceholder() bool {
	return strings.Contains(p.URLTemplate, IdentifierPlaceholder) ||
		strings.Contains(p.URLTemplate, LegacyPlaceholder)
}
