package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeGenerator_Generate(t *testing.T) {
	t.Run("codes have the configured length", func(t *testing.T) {
		gen := NewCodeGenerator(6)

		for i := 0; i < 100; i++ {
			code, err := gen.Generate()

			require.NoError(t, err)
			assert.Len(t, code, 6)
		}
	})

	t.Run("first digit is never zero", func(t *testing.T) {
		gen := NewCodeGenerator(6)

		for i := 0; i < 500; i++ {
			code, err := gen.Generate()

			require.NoError(t, err)
			assert.NotEqual(t, byte('0'), code[0])
		}
	})

	t.Run("codes are numeric", func(t *testing.T) {
		gen := NewCodeGenerator(8)

		for i := 0; i < 100; i++ {
			code, err := gen.Generate()

			require.NoError(t, err)
			for _, c := range code {
				assert.GreaterOrEqual(t, c, '0')
				assert.LessOrEqual(t, c, '9')
			}
		}
	})

	t.Run("length one is honored", func(t *testing.T) {
		gen := NewCodeGenerator(1)

		code, err := gen.Generate()

		require.NoError(t, err)
		assert.Len(t, code, 1)
		assert.NotEqual(t, byte('0'), code[0])
	})

	t.Run("non-positive lengths fall back to six", func(t *testing.T) {
		gen := NewCodeGenerator(0)

		code, err := gen.Generate()

		require.NoError(t, err)
		assert.Len(t, code, 6)
	})
}

func TestGenerateTempPassword(t *testing.T) {
	hasClass := func(s, class string) bool {
		for _, c := range s {
			for _, want := range class {
				if c == want {
					return true
				}
			}
		}

		return false
	}

	for i := 0; i < 100; i++ {
		pw, err := GenerateTempPassword(12)

		require.NoError(t, err)
		assert.Len(t, pw, 12)
		assert.True(t, hasClass(pw, passwordLetters), "missing letter: %s", pw)
		assert.True(t, hasClass(pw, passwordDigits), "missing digit: %s", pw)
		assert.True(t, hasClass(pw, passwordSymbols), "missing symbol: %s", pw)
	}

	t.Run("short lengths are raised to twelve", func(t *testing.T) {
		pw, err := GenerateTempPassword(3)

		require.NoError(t, err)
		assert.Len(t, pw, 12)
	})
}
