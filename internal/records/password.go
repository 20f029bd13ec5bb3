package records

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// Character pools
const (
	charsetLowercase = "abcdefghijklmnopqrstuvwxyz"
	charsetUppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	charsetDigits    = "0123456789"
	charsetSymbols   = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// Alphabet is the fixed pool generated passwords draw from: the 94
// printable ASCII characters other than space.
const Alphabet = charsetLowercase + charsetUppercase + charsetDigits + charsetSymbols

// AlphabetSize is the longest password GeneratePassword can produce
const AlphabetSize = len(Alphabet)

var (
	ErrRange         = errors.New("password length out of range")
	ErrInvalidLength = errors.New("password length is not a number")
)

// GeneratePassword samples length distinct characters from Alphabet
// without replacement, using crypto/rand
func GeneratePassword(length int) (string, error) {
	if length < 0 || length > AlphabetSize {
		return "", fmt.Errorf("%w: %d not in [0, %d]", ErrRange, length, AlphabetSize)
	}

	pool := []byte(Alphabet)
	// Partial Fisher-Yates: the first length positions end up a uniform sample
	for i := 0; i < length; i++ {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(len(pool)-i)))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		k := i + int(j.Int64())
		pool[i], pool[k] = pool[k], pool[i]
	}

	return string(pool[:length]), nil
}
