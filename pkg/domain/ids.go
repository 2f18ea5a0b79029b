// Package domain holds the typed identifiers shared across the issuance
// packages. Parsing happens at trust boundaries (HTTP, persistence) so the
// rest of the code can assume well-formed values.
package domain

import (
	"strconv"
	"strings"

	dErrors "mintgate/pkg/domain-errors"
)

// maxPrincipalLength bounds identities accepted from callers.
const maxPrincipalLength = 256

// zeroAddress is the null account identity used by ledger-style callers.
const zeroAddress = "0x0000000000000000000000000000000000000000"

// Principal is an opaque caller identity such as an account address.
// The empty value and the all-zero address are both the zero identity.
type Principal string

// ParsePrincipal trims s and rejects zero, oversized, or control-character
// identities.
func ParsePrincipal(s string) (Principal, error) {
	p := Principal(strings.TrimSpace(s))
	if p.IsZero() {
		return "", dErrors.New(dErrors.CodeInvalidArgument, "principal cannot be the zero identity")
	}
	if len(p) > maxPrincipalLength {
		return "", dErrors.New(dErrors.CodeInvalidArgument, "principal is too long")
	}
	for _, r := range p {
		if r < 0x20 || r == 0x7f {
			return "", dErrors.New(dErrors.CodeInvalidArgument, "principal contains control characters")
		}
	}
	return p, nil
}

// IsZero reports whether p is the null identity.
func (p Principal) IsZero() bool {
	s := strings.TrimSpace(string(p))
	return s == "" || strings.EqualFold(s, zeroAddress)
}

// Normalize returns p without surrounding whitespace. Stores key principals
// by their normalized form.
func (p Principal) Normalize() Principal {
	return Principal(strings.TrimSpace(string(p)))
}

func (p Principal) String() string {
	return string(p)
}

// AssetID is the creation-order position of an asset in the registry.
type AssetID int

// ParseAssetID parses a decimal, non-negative asset id.
func ParseAssetID(s string) (AssetID, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, dErrors.New(dErrors.CodeInvalidArgument, "asset id must be a non-negative integer")
	}
	return AssetID(n), nil
}

func (a AssetID) String() string {
	return strconv.Itoa(int(a))
}

// SequenceNumber numbers the records of one asset starting at 1.
type SequenceNumber uint64

// ParseSequenceNumber parses a positive decimal sequence number.
func ParseSequenceNumber(s string) (SequenceNumber, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || n == 0 {
		return 0, dErrors.New(dErrors.CodeInvalidArgument, "sequence number must be a positive integer")
	}
	return SequenceNumber(n), nil
}

func (s SequenceNumber) String() string {
	return strconv.FormatUint(uint64(s), 10)
}
