package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/pendergraft/sentinel/internal/completion"
	"github.com/pendergraft/sentinel/internal/explorer"
	"github.com/pendergraft/sentinel/internal/validation"
)

// Errors returned by the audit service. ErrModelInvocation is returned
// alongside a renderable SystemError assessment so transport can pick the
// status code while clients still get a payload they can display.
var (
	ErrInvalidAddress  = errors.New("invalid contract address")
	ErrModelInvocation = errors.New("model invocation failed")
)

// Options holds the configuration the orchestrator needs. Keys are checked
// up front, before any outbound call, so a misconfigured deployment answers
// immediately instead of burning provider quota.
type Options struct {
	ExplorerKeySet   bool
	CompletionKeySet bool
	MaxSourceChars   int
}

type service struct {
	provider  explorer.SourceProvider
	completer completion.Completer
	opts      Options
}

// NewService creates the audit orchestrator. All collaborators are injected;
// the service holds no mutable state and is safe for concurrent use.
func NewService(provider explorer.SourceProvider, completer completion.Completer, opts Options) *service {
	return &service{
		provider:  provider,
		completer: completer,
		opts:      opts,
	}
}

// Audit runs one address through the pipeline: validate, resolve source,
// build prompt, invoke the model, validate its output. Every exceptional
// state except a syntactically invalid address maps to a fully-formed
// RiskAssessment, so clients render a result without branching on status.
// Each request makes exactly one attempt; nothing is retried.
func (s *service) Audit(ctx context.Context, address string) (*RiskAssessment, error) {
	address = validation.NormalizeAddress(address)
	if err := validation.ValidateAddress(address); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}

	if !s.opts.ExplorerKeySet {
		return systemError("The explorer API key is not configured. Contact the operator."), nil
	}
	if !s.opts.CompletionKeySet {
		return systemError("The completion service API key is not configured. Contact the operator."), nil
	}

	lookup, err := s.provider.Lookup(ctx, address)
	if err != nil {
		return systemError(fmt.Sprintf("Source lookup failed: %v.", err)), nil
	}

	switch lookup.Outcome {
	case explorer.OutcomeProviderError:
		return systemError(fmt.Sprintf("The source provider reported an error: %s.", lookup.Detail)), nil
	case explorer.OutcomeUnverified:
		return unverifiedAssessment(), nil
	}

	prompt := BuildPrompt(lookup.SourceText, s.opts.MaxSourceChars)

	raw, err := s.completer.Complete(ctx, prompt.System, prompt.User)
	if err != nil {
		assessment := systemError("The risk audit could not be completed. Please try again later.")
		return assessment, fmt.Errorf("%w: %v", ErrModelInvocation, err)
	}

	assessment := ParseAssessment(raw)
	return &assessment, nil
}

// unverifiedAssessment is the terminal outcome for contracts with no
// verified source: unreadable code is itself reported as maximal risk.
func unverifiedAssessment() *RiskAssessment {
	return &RiskAssessment{
		RiskScore: 100,
		RiskLevel: RiskUnknown,
		Summary:   "Contract source code is not verified on the explorer. The code cannot be read, which is a high risk factor.",
		KeyIssues: []string{"Unverified Code", "Potential Hidden Malicious Logic"},
	}
}

func systemError(summary string) *RiskAssessment {
	return &RiskAssessment{
		RiskScore: neutralScore,
		RiskLevel: RiskSystemError,
		Summary:   summary,
		KeyIssues: []string{},
	}
}
