package util

import (
	"strings"

	"github.com/google/uuid"
)

// Slugify derives a URL-safe slug from a human-readable name: lowercase,
// alphanumerics kept, everything else collapsed to single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// SlugSuffix returns a random 8-character token for slug collision
// resolution. Unique per attempt by construction, so collision retries
// terminate even under adversarial repeated identical names.
func SlugSuffix() string {
	return uuid.New().String()[:8]
}
