package random

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// GetUUID generates a UUID and returns it as a string without hyphens.
func GetUUID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

const keyNumbers = "0123456789"

// GetRandomNumberString generates a random string of the specified length
// using only numeric characters (0-9).
func GetRandomNumberString(length int) string {
	key := make([]byte, length)
	for i := range length {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(keyNumbers))))
		if err != nil {
			// crypto/rand does not fail on supported platforms
			panic(err)
		}
		key[i] = keyNumbers[n.Int64()]
	}
	return string(key)
}
