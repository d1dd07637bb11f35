// Package identifier parses and renders dataset references of the form
// team/dataset:version.
package identifier

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedReference is returned when a dataset reference does not
// follow the [team/]dataset[:version] grammar.
var ErrMalformedReference = errors.New("malformed dataset reference")

// Identifier addresses a dataset, optionally pinned to a release version.
// Team may be empty until resolved against the configured default team;
// remote operations require it to be populated.
type Identifier struct {
	Team    string
	Dataset string
	Version string
}

// Parse builds an Identifier from a reference string.
// Grammar: [team "/"] dataset [":" version]. Parsing is pure: no
// network, no filesystem, no defaulting of the team.
func Parse(reference string) (Identifier, error) {
	var id Identifier

	rest := reference
	if strings.Count(rest, "/") > 1 {
		return id, fmt.Errorf("%w: %q has more than one '/'", ErrMalformedReference, reference)
	}
	if strings.Count(rest, ":") > 1 {
		return id, fmt.Errorf("%w: %q has more than one ':'", ErrMalformedReference, reference)
	}

	if team, after, ok := strings.Cut(rest, "/"); ok {
		if team == "" {
			return id, fmt.Errorf("%w: %q has an empty team slug", ErrMalformedReference, reference)
		}
		if strings.Contains(team, ":") {
			return id, fmt.Errorf("%w: %q has a version before the team separator", ErrMalformedReference, reference)
		}
		id.Team = team
		rest = after
	}
	if dataset, version, ok := strings.Cut(rest, ":"); ok {
		if !ValidVersion(version) {
			return id, fmt.Errorf("%w: %q has an invalid version", ErrMalformedReference, reference)
		}
		id.Version = version
		rest = dataset
	}
	if rest == "" {
		return id, fmt.Errorf("%w: %q has an empty dataset slug", ErrMalformedReference, reference)
	}
	id.Dataset = rest

	return id, nil
}

// String renders the canonical form, omitting the team and version parts
// when absent. Parse(id.String()) reproduces id for any parsed identifier.
func (id Identifier) String() string {
	var b strings.Builder
	if id.Team != "" {
		b.WriteString(id.Team)
		b.WriteByte('/')
	}
	b.WriteString(id.Dataset)
	if id.Version != "" {
		b.WriteByte(':')
		b.WriteString(id.Version)
	}
	return b.String()
}

// WithVersion returns a copy of id pinned to the given version. Used when
// "latest" has been resolved to a concrete release name.
func (id Identifier) WithVersion(version string) Identifier {
	id.Version = version
	return id
}

// ValidVersion reports whether s is a legal release name: non-empty,
// alphanumeric plus '-' and '_'. The name is used verbatim as a path
// segment, so path separators are rejected here.
func ValidVersion(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}
