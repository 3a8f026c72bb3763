package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pendergraft/sentinel/internal/observability/metrics"
)

// Config holds settings for an Etherscan-family client.
type Config struct {
	APIKey     string
	BaseURL    string
	APIVersion string // "v1" or "v2"
	ChainID    int
	Timeout    time.Duration
	RPS        int
}

// New creates a SourceProvider for the configured explorer API version.
// The explorer ecosystem migrated from per-chain hosts ("v1") to a unified
// multichain endpoint ("v2"); both speak the same envelope.
func New(cfg Config) (SourceProvider, error) {
	base := newBaseClient(cfg)
	switch cfg.APIVersion {
	case "", "v1":
		return &LegacyClient{base: base}, nil
	case "v2":
		return &UnifiedClient{base: base}, nil
	default:
		return nil, fmt.Errorf("unsupported explorer API version: %q", cfg.APIVersion)
	}
}

// LegacyClient speaks the per-chain v1 endpoint shape
// (e.g. https://api.polygonscan.com/api?module=contract&action=getsourcecode).
type LegacyClient struct {
	base *baseClient
}

// Lookup implements SourceProvider.
func (c *LegacyClient) Lookup(ctx context.Context, address string) (*SourceLookup, error) {
	q := url.Values{}
	q.Set("module", "contract")
	q.Set("action", "getsourcecode")
	q.Set("address", address)
	q.Set("apikey", c.base.cfg.APIKey)
	return c.base.lookup(ctx, "/api", q)
}

// UnifiedClient speaks the multichain v2 endpoint shape
// (e.g. https://api.etherscan.io/v2/api?chainid=137&module=contract&...).
type UnifiedClient struct {
	base *baseClient
}

// Lookup implements SourceProvider.
func (c *UnifiedClient) Lookup(ctx context.Context, address string) (*SourceLookup, error) {
	q := url.Values{}
	q.Set("chainid", strconv.Itoa(c.base.cfg.ChainID))
	q.Set("module", "contract")
	q.Set("action", "getsourcecode")
	q.Set("address", address)
	q.Set("apikey", c.base.cfg.APIKey)
	return c.base.lookup(ctx, "/v2/api", q)
}

// envelope is the Etherscan-family response wrapper. Result is a list of
// source records on success and a plain error string on failure, so it is
// decoded lazily.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// sourceRecord is one entry of a successful getsourcecode result.
type sourceRecord struct {
	SourceCode   string `json:"SourceCode"`
	ContractName string `json:"ContractName"`
	ABI          string `json:"ABI"`
}

type baseClient struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

func newBaseClient(cfg Config) *baseClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}
	var limiter *rate.Limiter
	if cfg.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), 1)
	}
	return &baseClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: limiter,
	}
}

// lookup issues a single getsourcecode request and interprets the envelope.
// Transport failures map to a ProviderError outcome rather than an error so
// downstream code handles exactly one result shape.
func (b *baseClient) lookup(ctx context.Context, path string, q url.Values) (result *SourceLookup, err error) {
	defer func() {
		if result != nil {
			metrics.ExplorerLookup(string(result.Outcome))
		}
	}()

	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			return ProviderError(ErrKindUnreachable, err.Error()), nil
		}
	}

	endpoint := strings.TrimRight(b.cfg.BaseURL, "/") + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building explorer request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return ProviderError(ErrKindUnreachable, err.Error()), nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ProviderError(ErrKindUnreachable, "reading explorer response: "+err.Error()), nil
	}

	if resp.StatusCode != http.StatusOK {
		detail := fmt.Sprintf("explorer returned HTTP %d: %s", resp.StatusCode, snippet(body))
		if resp.StatusCode == http.StatusTooManyRequests {
			return ProviderError(ErrKindRateLimited, detail), nil
		}
		return ProviderError(ErrKindUnknown, detail), nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ProviderError(ErrKindUnknown, "decoding explorer response: "+err.Error()), nil
	}

	return interpretEnvelope(&env), nil
}

// interpretEnvelope maps the status/message/result triple onto the
// SourceLookup taxonomy.
func interpretEnvelope(env *envelope) *SourceLookup {
	if env.Status != "1" {
		detail := resultString(env.Result)
		if detail == "" {
			detail = env.Message
		}
		// Some chains report a missing source as a failure status instead of
		// an empty record.
		if strings.Contains(strings.ToLower(detail), "not verified") {
			return Unverified()
		}
		return ProviderError(classifyFailure(detail), detail)
	}

	var records []sourceRecord
	if err := json.Unmarshal(env.Result, &records); err != nil || len(records) == 0 {
		return Unverified()
	}
	first := records[0]
	if strings.TrimSpace(first.SourceCode) == "" {
		return Unverified()
	}
	return Verified(first.SourceCode, first.ContractName)
}

// classifyFailure pattern-matches a provider failure message onto a known
// ErrorKind. Unrecognized messages stay Unknown.
func classifyFailure(detail string) ErrorKind {
	lower := strings.ToLower(detail)
	switch {
	case strings.Contains(lower, "invalid api key"):
		return ErrKindInvalidKey
	case strings.Contains(lower, "rate limit"):
		return ErrKindRateLimited
	default:
		return ErrKindUnknown
	}
}

// resultString extracts the result field when the provider sent it as a
// plain string (the failure shape).
func resultString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func snippet(body []byte) string {
	const max = 512
	s := string(body)
	if len(s) > max {
		s = s[:max]
	}
	return s
}
