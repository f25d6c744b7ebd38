package utils

import (
	"math/rand"
)

const nameAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomString returns a random name of the given size, used when an
// identity provider sends back no display name
func RandomString(size int) string {
	b := make([]byte, size)
	for i := range b {
		b[i] = nameAlphabet[rand.Intn(len(nameAlphabet))]
	}
	return string(b)
}

// TruncateString cuts s at length runes and marks the cut with an ellipsis
func TruncateString(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	return string(runes[:length]) + "..."
}
