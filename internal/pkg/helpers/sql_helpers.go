package helpers

import "strings"

// NullIfEmpty returns nil for an empty (or all-space) string, so optional unique
// columns are written as NULL rather than "".
func NullIfEmpty(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// StringValue dereferences p, returning "" for nil.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// TrimmedPtr trims p and collapses blank values to nil.
func TrimmedPtr(p *string) *string {
	if p == nil {
		return nil
	}
	return NullIfEmpty(strings.TrimSpace(*p))
}

// EscapeLike escapes LIKE wildcards so a search term matches literally.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
