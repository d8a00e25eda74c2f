package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	s, err := Generate(0)
	require.NoError(t, err)
	assert.Len(t, s, DefaultLength)
	for _, r := range s {
		assert.True(t, strings.ContainsRune(alphabet, r))
	}
}

func TestGenerateIsUnique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		s, err := NewPreventiveID()
		require.NoError(t, err)
		_, dup := seen[s]
		require.False(t, dup, "duplicate id %s", s)
		seen[s] = struct{}{}
	}
}

func TestValidatePrefix(t *testing.T) {
	cal, err := NewCalibrationID()
	require.NoError(t, err)

	assert.NoError(t, ValidatePrefix(cal, PrefixCalibration))
	assert.Error(t, ValidatePrefix(cal, PrefixPreventive))
	assert.Error(t, ValidatePrefix("cal_", PrefixCalibration))
	assert.Error(t, ValidatePrefix("nounderscore", PrefixCalibration))
}
