// Package randid provides random ID generation utilities.
package randid

import "math/rand/v2"

const chars = "abcdefghijklmnopqrstuvwxyz0123456789"

// DefaultLength is the length of IDs returned by New.
const DefaultLength = 8

// Generate creates a random alphanumeric ID of the specified length.
func Generate(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = chars[rand.IntN(len(chars))]
	}
	return string(b)
}

// New returns a song ID of DefaultLength.
func New() string {
	return Generate(DefaultLength)
}
