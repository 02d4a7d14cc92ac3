package traffic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"smart-route-optimizer/internal/domain"
	"smart-route-optimizer/internal/platform/obs"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

var (
	ErrTransport         = errors.New("traffic provider transport failure")
	ErrUnexpectedStatus  = errors.New("traffic provider returned a non-success status")
	ErrMalformedResponse = errors.New("traffic provider returned a malformed response")
)

// Config carries the provider credential and endpoint.
// The key is passed in explicitly; nothing is read from process globals.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Provider implements ports.RouteProvider against a traffic-data HTTP API.
//
// One FetchCandidates call issues exactly one GET {BaseURL}/route request.
// There are no retries. The provider is safe for concurrent use.
type Provider struct {
	session *http.Client
	apiKey  string
	baseURL string
	log     *zap.Logger
}

func NewProvider(cfg Config, log *zap.Logger) (*Provider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("traffic provider api key is empty")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("traffic provider base url is empty")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	if log == nil {
		log = zap.NewNop()
	}

	provider := &Provider{
		session: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		log:     log,
	}

	return provider, nil
}

// candidateResponse mirrors one element of the provider's JSON array.
// Metrics are pointers so a missing field can be told apart from zero.
type candidateResponse struct {
	Start    string   `json:"start"`
	End      string   `json:"end"`
	Duration *float64 `json:"duration"`
	Distance *float64 `json:"distance"`
}

// FetchCandidates retrieves every candidate route for the query.
func (p *Provider) FetchCandidates(
	ctx context.Context,
	query domain.RouteQuery,
) (_ []domain.RouteCandidate, err error) {
	defer obs.Time(ctx, p.log, "traffic.FetchCandidates")(&err)

	req, err := p.newRequest(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}

	resp, err := p.do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates %q -> %q: %w", query.Start, query.End, err)
	}
	defer resp.Body.Close()

	candidates, err := decodeCandidates(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("fetch candidates %q -> %q: %w", query.Start, query.End, err)
	}

	return candidates, nil
}

func decodeCandidates(r io.Reader) ([]domain.RouteCandidate, error) {
	dec := json.NewDecoder(r)

	var decoded *[]candidateResponse
	if err := dec.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: decode body: %w", ErrMalformedResponse, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("%w: body must contain a single JSON array", ErrMalformedResponse)
	}

	// A literal null decodes without error but leaves the pointer unset.
	if decoded == nil {
		return nil, fmt.Errorf("%w: body is null, expected an array", ErrMalformedResponse)
	}

	out := make([]domain.RouteCandidate, 0, len(*decoded))
	for i, c := range *decoded {
		if c.Duration == nil {
			return nil, fmt.Errorf("%w: candidate %d is missing duration", ErrMalformedResponse, i)
		}
		if c.Distance == nil {
			return nil, fmt.Errorf("%w: candidate %d is missing distance", ErrMalformedResponse, i)
		}

		out = append(out, domain.RouteCandidate{
			Start:           domain.Location(c.Start),
			End:             domain.Location(c.End),
			DurationMinutes: *c.Duration,
			DistanceKm:      *c.Distance,
		})
	}

	return out, nil
}
