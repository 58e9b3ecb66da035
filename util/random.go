package util

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// RandomInt generates a random integer between min and max.
func RandomInt(min, max int64) int64 {
	return min + rand.Int64N(max-min+1)
}

// RandomString generates a random string of length n.
func RandomString(n int) string {
	var sb strings.Builder
	k := len(alphabet)

	for range n {
		c := alphabet[rand.IntN(k)]
		sb.WriteByte(c)
	}

	return sb.String()
}

// RandomURL generates a random https URL.
func RandomURL() string {
	return fmt.Sprintf("https://%s.com/%s", RandomString(8), RandomString(6))
}

// RandomFileName generates a random file name with the extension.
func RandomFileName(ext string) string {
	return RandomString(8) + "." + ext
}
