package controller

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSource int

func (f fixedSource) IntN(n int) int { return int(f) % n }

func TestGenerateSecret_Alphabet(t *testing.T) {
	for i := 0; i < 200; i++ {
		s := GenerateSecret(nil)
		require.Len(t, s, SecretLength)
		for j := 0; j < len(s); j++ {
			require.GreaterOrEqual(t, s[j], byte(33))
			require.LessOrEqual(t, s[j], byte(126))
		}
	}
}

func TestGenerateSecret_Bounds(t *testing.T) {
	low := GenerateSecret(fixedSource(0))
	high := GenerateSecret(fixedSource(93))

	for i := 0; i < SecretLength; i++ {
		assert.Equal(t, byte('!'), low[i])
		assert.Equal(t, byte('~'), high[i])
	}
}

func TestGenerateSecret_Deterministic(t *testing.T) {
	a := GenerateSecret(rand.New(rand.NewPCG(7, 7)))
	b := GenerateSecret(rand.New(rand.NewPCG(7, 7)))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, GenerateSecret(rand.New(rand.NewPCG(8, 8))))
}

func TestScreenFor(t *testing.T) {
	c, _ := newTestController(t)
	assert.Equal(t, ScreenSetup, c.Screen())
	assert.Equal(t, "setup", ScreenSetup.String())
	assert.Equal(t, "login", ScreenLogin.String())
	assert.Equal(t, "secret", ScreenSecret.String())
	assert.Equal(t, "unknown", Screen(42).String())
}
