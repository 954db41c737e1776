package controller

import "math/rand/v2"

const (
	SecretLength = 40

	// printable ASCII, space excluded
	minSecretChar = 33
	maxSecretChar = 126
)

// Source supplies uniform integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// GenerateSecret returns SecretLength characters drawn independently and
// uniformly from ASCII [33, 126]. The source is not cryptographic; a nil
// src uses the math/rand/v2 global generator.
func GenerateSecret(src Source) string {
	if src == nil {
		src = globalSource{}
	}

	b := make([]byte, SecretLength)
	for i := range b {
		b[i] = byte(minSecretChar + src.IntN(maxSecretChar-minSecretChar+1))
	}
	return string(b)
}
