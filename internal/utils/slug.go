package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// Slugify derives a URL-safe slug from a display name. Apostrophes are
// dropped rather than hyphenated so "Bob Smith's Organization" becomes
// "bob-smiths-organization".
func Slugify(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "'", "")

	var b strings.Builder
	lastHyphen := true
	for _, r := range name {
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

// RandomSuffix generates a short random hex suffix used to disambiguate
// colliding slugs.
func RandomSuffix() (string, error) {
	bytes := make([]byte, 3)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
