package random

import (
	"math/rand"
	"time"
)

// Alphabet used for referral codes. Lowercase only so codes survive
// case-insensitive channels (email clients, chat apps) unchanged.
const codeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewRandomCode returns a random string of the given length drawn
// uniformly from the code alphabet.
func NewRandomCode(length int) string {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	b := make([]byte, length)
	for i := range b {
		b[i] = codeAlphabet[rnd.Intn(len(codeAlphabet))]
	}

	return string(b)
}
