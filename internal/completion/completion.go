// Package completion invokes an OpenAI-compatible chat-completion service.
package completion

import "context"

// Completer sends a two-message exchange (system rubric + user content) to a
// completion service and returns the raw completion text. Implementations
// make exactly one attempt; callers decide retry policy.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
