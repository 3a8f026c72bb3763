// Package validation provides input validation for Sentinel.
package validation

import (
	"errors"
	"strings"
)

// ValidateAddress validates an EVM account address (0x + 40 hex chars).
// The check is purely syntactic; whether the address exists on-chain is
// discovered downstream when the explorer lookup returns no source.
func ValidateAddress(addr string) error {
	if len(addr) != 42 {
		return errors.New("invalid address length: must be 42 characters (0x + 40 hex)")
	}
	if !strings.HasPrefix(addr, "0x") {
		return errors.New("invalid address: must start with 0x")
	}
	for _, c := range addr[2:] {
		isDigit := c >= '0' && c <= '9'
		isLowerHex := c >= 'a' && c <= 'f'
		isUpperHex := c >= 'A' && c <= 'F'
		if !isDigit && !isLowerHex && !isUpperHex {
			return errors.New("invalid address: contains non-hex characters")
		}
	}
	return nil
}

// NormalizeAddress trims surrounding whitespace from a candidate address.
// Validation happens separately; this only cleans up copy-paste artifacts.
func NormalizeAddress(addr string) string {
	return strings.TrimSpace(addr)
}
