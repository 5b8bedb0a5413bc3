// Package otp generates short-lived numeric login codes and temporary
// passwords. Both use crypto/rand; math/rand is never acceptable here.
package otp

import (
	"crypto/rand"
	"math/big"
)

// CodeGenerator produces fixed-length numeric codes whose first digit is
// never zero, so a code survives round trips through systems that strip
// leading zeros.
type CodeGenerator struct {
	length int
}

// NewCodeGenerator returns a generator for codes of the given length. Any
// positive length is honored; zero and negative fall back to 6.
func NewCodeGenerator(length int) *CodeGenerator {
	if length < 1 {
		length = 6
	}

	return &CodeGenerator{length: length}
}

// Generate returns a new numeric code.
func (g *CodeGenerator) Generate() (string, error) {
	code := make([]byte, g.length)

	first, err := randIntStrict(9)
	if err != nil {
		return "", err
	}
	code[0] = byte('1' + first)

	for i := 1; i < g.length; i++ {
		n, err := randIntStrict(10)
		if err != nil {
			return "", err
		}
		code[i] = byte('0' + n)
	}

	return string(code), nil
}

func randIntStrict(max int64) (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return 0, err
	}

	return n.Int64(), nil
}
