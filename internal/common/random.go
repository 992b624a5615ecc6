package common

import (
	"crypto/rand"
	"math/big"
)

// ShareHashAlphabet omits characters that are easy to confuse when read
// aloud or copied by hand (0/O, 1/l/I).
const ShareHashAlphabet = "23456789abcdefghjkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"

// ShareHashLength is the length of a generated share hash.
const ShareHashLength = 10

// RandomString returns n characters drawn uniformly from alphabet using
// crypto/rand.
func RandomString(n int, alphabet string) (string, error) {
	if n <= 0 || alphabet == "" {
		return "", nil
	}

	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = alphabet[idx.Int64()]
	}
	return string(b), nil
}

// NewShareHash generates a fresh share hash.
func NewShareHash() (string, error) {
	return RandomString(ShareHashLength, ShareHashAlphabet)
}
