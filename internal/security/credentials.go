package security

import (
	"crypto/rand"
	"math/big"
)

// tempPasswordAlphabet avoids ambiguous characters so credentials survive
// being retyped from an email.
const tempPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789"

// TempPasswordLength is the length of generated temporary credentials.
const TempPasswordLength = 12

// GenerateTempPassword returns a random temporary credential. The caller
// is responsible for hashing it before storage; the plaintext should only
// ever appear in the activation email.
func GenerateTempPassword() (string, error) {
	buf := make([]byte, TempPasswordLength)
	max := big.NewInt(int64(len(tempPasswordAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = tempPasswordAlphabet[n.Int64()]
	}
	return string(buf), nil
}
