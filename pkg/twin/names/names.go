// Package names normalizes user-entered thing identifiers into the
// canonical resource names that twin documents are stored under.
package names

import "strings"

// CanonicalPrefix is prepended to every generated resource name.
// Fixed deployment convention; downstream tooling quotes literal names
// built with it, so it must not change.
const CanonicalPrefix = "ems-iodt2-"

// Normalized is the result of breaking a raw identifier down.
type Normalized struct {
	// CleanID is the identifier with any tenant prefix cut off.
	CleanID string

	// Slug is CleanID lowered and restricted to [a-z0-9-].
	Slug string
}

// Normalize splits a raw identifier into its clean id and slug.
//
// Text before the first ":" is taken as a tenant prefix the user typed
// and is discarded from CleanID as-is, without checking it against any
// actual tenant. Total over all inputs: nothing errors, empty input
// yields empty output.
func Normalize(rawID string) Normalized {
	cleanID := rawID
	if _, after, found := strings.Cut(rawID, ":"); found {
		cleanID = after
	}

	return Normalized{CleanID: cleanID, Slug: slugify(cleanID)}
}

// slugify lowers s and replaces every rune outside [a-z0-9-] with "-".
// Runes are replaced, never dropped, so "!!!" becomes "---".
func slugify(s string) string {
	lowered := strings.ToLower(s)

	sb := new(strings.Builder)
	sb.Grow(len(lowered))
	for _, r := range lowered {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') || r == '-' {
			sb.WriteRune(r)
			continue
		}
		sb.WriteRune('-')
	}
	return sb.String()
}

// CanonicalName derives the stored resource name for a raw identifier.
func CanonicalName(rawID string) string {
	return CanonicalPrefix + Normalize(rawID).Slug
}

// TenantQualified renders the "what will be saved" preview of an
// identifier: "{tenant}:{id}" when a tenant is selected and the id
// carries no prefix of its own. The identifier itself is never
// rewritten; prefixing for real happens server-side.
func TenantQualified(tenantID, rawID string) string {
	if tenantID == "" || strings.Contains(rawID, ":") {
		return rawID
	}
	return tenantID + ":" + rawID
}
