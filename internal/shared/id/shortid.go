// Package id generates prefixed, URL-safe identifiers such as "pm_7Hc2kQ9xLm3A".
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the length of the random part of an ID.
	DefaultLength = 12
)

// Entity prefixes.
const (
	PrefixMachine     = "mch"
	PrefixInstrument  = "ins"
	PrefixUser        = "usr"
	PrefixBreakdown   = "bd"
	PrefixPreventive  = "pm"
	PrefixCalibration = "cal"
)

// Generate creates a cryptographically random base62 string.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[n.Int64()]
	}
	return string(result), nil
}

// GenerateWithPrefix creates an ID in the form "prefix_random".
func GenerateWithPrefix(prefix string) (string, error) {
	s, err := Generate(DefaultLength)
	if err != nil {
		return "", err
	}
	return prefix + "_" + s, nil
}

// ValidatePrefix checks that prefixedID is well formed and carries expectedPrefix.
func ValidatePrefix(prefixedID, expectedPrefix string) error {
	prefix, rest, ok := strings.Cut(prefixedID, "_")
	if !ok || rest == "" {
		return fmt.Errorf("invalid prefixed ID format: %s", prefixedID)
	}
	if prefix != expectedPrefix {
		return fmt.Errorf("invalid prefix: expected %s, got %s", expectedPrefix, prefix)
	}
	return nil
}

func NewMachineID() (string, error)     { return GenerateWithPrefix(PrefixMachine) }
func NewInstrumentID() (string, error)  { return GenerateWithPrefix(PrefixInstrument) }
func NewUserID() (string, error)        { return GenerateWithPrefix(PrefixUser) }
func NewBreakdownID() (string, error)   { return GenerateWithPrefix(PrefixBreakdown) }
func NewPreventiveID() (string, error)  { return GenerateWithPrefix(PrefixPreventive) }
func NewCalibrationID() (string, error) { return GenerateWithPrefix(PrefixCalibration) }
