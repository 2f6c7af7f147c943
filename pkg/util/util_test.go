package util

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestRemoveDuplicateStrings(t *testing.T) {
	result := RemoveDuplicateStrings([]string{"a", "b", "a", "", "c", "b"}, []string{"c"})

	assert.Equal(t, []string{"a", "b"}, result)
}

func TestTrimString(t *testing.T) {
	assert.Equal(t, "abc", TrimString("abcdef", 3))
	assert.Equal(t, "ab", TrimString("ab", 3))

	// "ó" is two bytes, cutting inside it drops the whole rune
	assert.Equal(t, "Estaci", TrimString("Estación", 7))
	assert.Equal(t, "Estació", TrimString("Estación", 8))
	assert.True(t, utf8.ValidString(TrimString("ñññ", 5)))
}

func TestGetEnvironmentFloat(t *testing.T) {
	t.Setenv("TRANSITLINE_TEST_FLOAT", "12.5")
	value, err := GetEnvironmentFloat("TEST_FLOAT", 1)
	assert.NoError(t, err)
	assert.Equal(t, 12.5, value)

	value, err = GetEnvironmentFloat("TEST_FLOAT_UNSET", 3)
	assert.NoError(t, err)
	assert.Equal(t, 3.0, value)

	t.Setenv("TRANSITLINE_TEST_FLOAT", "abc")
	_, err = GetEnvironmentFloat("TEST_FLOAT", 1)
	assert.Error(t, err)
}
