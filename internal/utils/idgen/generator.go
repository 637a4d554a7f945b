// Package idgen produces the prefixed identifiers used for calls,
// transfers, FAQs and appointments.
package idgen

import (
	"crypto/rand"
	"fmt"
)

const charset = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateSecureID returns "<prefix>_<suffix>" where the suffix is a
// cryptographically random alphanumeric string of the given length.
func GenerateSecureID(prefix string, length int) (string, error) {
	raw := make([]byte, length)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	suffix := make([]byte, length)
	for i, b := range raw {
		suffix[i] = charset[int(b)%len(charset)]
	}
	return fmt.Sprintf("%s_%s", prefix, suffix), nil
}
