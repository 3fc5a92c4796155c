package assets

import "strings"

// PublicIDFromURL derives the asset-store public id from a stored image
// URL: the final path segment, truncated at the first dot, under the
// upload folder. This must stay exactly as is so ids resolve against
// assets uploaded before this service existed.
//
// Known fragility: a segment containing a dot loses everything after
// it, and a query string ends up inside the id. uploadPublicID mints
// dot-free ids so URLs stored by this service always round-trip, but
// foreign URLs can produce ids that delete nothing.
func PublicIDFromURL(url string) string {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return ""
	}

	segment := trimmed
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		segment = trimmed[idx+1:]
	}
	if idx := strings.Index(segment, "."); idx >= 0 {
		segment = segment[:idx]
	}
	if segment == "" {
		return ""
	}

	return UploadFolder + "/" + segment
}
