package traffic

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"smart-route-optimizer/internal/domain"
	"strings"
)

// StatusError reports a non-2xx provider response.
// It matches ErrUnexpectedStatus under errors.Is.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("code %d: %s", e.Code, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

func (p *Provider) newRequest(ctx context.Context, query domain.RouteQuery) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/route", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	q := req.URL.Query()
	q.Set("start", string(query.Start))
	q.Set("end", string(query.End))
	q.Set("key", p.apiKey)
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Accept", "application/json")

	return req, nil
}

// do executes req and converts transport failures and non-2xx responses
// into ErrTransport and *StatusError. On success the caller owns resp.Body.
func (p *Provider) do(req *http.Request) (*http.Response, error) {
	resp, err := p.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, redactKey(err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		resp.Body.Close()
		return nil, &StatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}

	return resp, nil
}

// redactKey masks the key query parameter in the URL carried by client errors.
func redactKey(err error) error {
	uerr, ok := err.(*url.Error)
	if !ok {
		return err
	}

	u, perr := url.Parse(uerr.URL)
	if perr != nil {
		return err
	}
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
		u.RawQuery = q.Encode()
	}

	redacted := *uerr
	redacted.URL = u.String()
	return &redacted
}
