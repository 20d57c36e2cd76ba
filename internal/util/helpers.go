package util

import (
	"crypto/sha256"
	"encoding/hex"
	"unicode/utf8"
)

// HashStrings returns the hex SHA-256 of the given strings, each terminated
// by a NUL so that boundaries cannot collide.
func HashStrings(parts []string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// TruncateRunes cuts a string to at most n runes, for log lines.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	rs := []rune(s)
	return string(rs[:n])
}
