// Package token generates random URL-safe slugs for shareable game links
package token

import (
	"crypto/rand"
	"encoding/base64"
)

// ShareSlugLength is the length of the slug embedded in a share URL
const ShareSlugLength = 12

// Generate returns a crypto-secure random string of length n
// The string contains the following characters:
// ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_
func Generate(n int) (string, error) {
	// base64 expands by ~33%, so n source bytes always cover n characters
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b)[0:n], nil
}

// GenerateShareSlug returns a slug suitable for a tokenized share link
func GenerateShareSlug() (string, error) {
	return Generate(ShareSlugLength)
}
