// Package explorer resolves verified contract source code through a
// chain-explorer API (Etherscan-family services).
package explorer

import "context"

// Outcome is the result category of a source lookup.
type Outcome string

const (
	// OutcomeVerified means the provider holds verified source for the address.
	OutcomeVerified Outcome = "verified"
	// OutcomeUnverified means the provider answered but has no source on file.
	OutcomeUnverified Outcome = "unverified"
	// OutcomeProviderError means the provider failed or could not be reached.
	OutcomeProviderError Outcome = "provider_error"
)

// ErrorKind classifies provider failures.
type ErrorKind string

const (
	ErrKindInvalidKey  ErrorKind = "invalid_key"
	ErrKindRateLimited ErrorKind = "rate_limited"
	ErrKindUnreachable ErrorKind = "unreachable"
	ErrKindUnknown     ErrorKind = "unknown"
)

// SourceLookup is the uniform outcome of a source-code lookup. Exactly one
// case is populated: SourceText only when Outcome is OutcomeVerified,
// ErrKind/Detail only when Outcome is OutcomeProviderError.
type SourceLookup struct {
	Outcome      Outcome
	SourceText   string
	ContractName string
	ErrKind      ErrorKind
	Detail       string
}

// SourceProvider resolves a validated address into a SourceLookup. A provider
// issues exactly one outbound request per call; callers decide retry policy.
// Swapping provider implementations must not change downstream behavior.
type SourceProvider interface {
	Lookup(ctx context.Context, address string) (*SourceLookup, error)
}

// Verified builds a verified lookup result.
func Verified(sourceText, contractName string) *SourceLookup {
	return &SourceLookup{Outcome: OutcomeVerified, SourceText: sourceText, ContractName: contractName}
}

// Unverified builds an unverified lookup result.
func Unverified() *SourceLookup {
	return &SourceLookup{Outcome: OutcomeUnverified}
}

// ProviderError builds a provider-error lookup result.
func ProviderError(kind ErrorKind, detail string) *SourceLookup {
	return &SourceLookup{Outcome: OutcomeProviderError, ErrKind: kind, Detail: detail}
}
