package services

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	FeedCodeLength   = 6
	feedCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	feedCodeAttempts = 5
)

// GenerateFeedCode returns a random invite code of upper-case letters and digits.
func GenerateFeedCode() (string, error) {
	var b strings.Builder
	b.Grow(FeedCodeLength)
	size := big.NewInt(int64(len(feedCodeAlphabet)))
	for i := 0; i < FeedCodeLength; i++ {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", err
		}
		b.WriteByte(feedCodeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// NormalizeFeedCode makes join codes case- and whitespace-insensitive.
func NormalizeFeedCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
