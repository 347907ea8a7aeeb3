// Package mailaddr normalizes free-form email "From" headers into a
// canonical address and a best-effort display name.
package mailaddr

import (
	"regexp"
	"strings"
)

// UnknownAddress is returned when no address can be extracted at all.
const UnknownAddress = "unknown@unknown.com"

// UnknownName is returned when no display name can be extracted at all.
const UnknownName = "Unknown"

var addressPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// ExtractEmailAddress returns the canonical lower-cased address from a raw
// "From" header. Preference order: the part inside angle brackets, then the
// first address-shaped substring anywhere in the input, then the trimmed
// lower-cased input itself.
func ExtractEmailAddress(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return UnknownAddress
	}

	if start := strings.Index(raw, "<"); start >= 0 {
		if end := strings.Index(raw[start:], ">"); end > 0 {
			inner := strings.TrimSpace(raw[start+1 : start+end])
			if inner != "" {
				return strings.ToLower(inner)
			}
		}
	}

	if match := addressPattern.FindString(raw); match != "" {
		return strings.ToLower(match)
	}

	return strings.ToLower(raw)
}

// ExtractDisplayName returns the display-name segment before the first '<',
// with surrounding quotes stripped. Falls back to the normalized address when
// the header carries no name segment.
func ExtractDisplayName(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return UnknownName
	}

	if idx := strings.Index(raw, "<"); idx > 0 {
		name := strings.TrimSpace(raw[:idx])
		name = strings.Trim(name, `"'`)
		name = strings.TrimSpace(name)
		if name != "" {
			return name
		}
	}

	return ExtractEmailAddress(raw)
}
