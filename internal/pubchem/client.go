package pubchem

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sorin-tanasa/Drug-analyzer/internal/config"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// ErrNotFound reports a successful response that does not contain the
// requested property value.
var ErrNotFound = errors.New("pubchem: property not found in response")

// StatusError is returned when PubChem answers with a non-200 status.
type StatusError struct {
	Code int
	// Fault is PubChem's error message, if the body carried one.
	Fault string
}

func (e *StatusError) Error() string {
	if e.Fault != "" {
		return fmt.Sprintf("pubchem: unexpected status %d: %s", e.Code, e.Fault)
	}
	return fmt.Sprintf("pubchem: unexpected status %d", e.Code)
}

// propertyResponse is the body of a successful property lookup.
type propertyResponse struct {
	PropertyTable struct {
		Properties []map[string]any `json:"Properties"`
	} `json:"PropertyTable"`
}

// faultResponse is the body PubChem sends with error statuses.
type faultResponse struct {
	Fault struct {
		Code    string   `json:"Code"`
		Message string   `json:"Message"`
		Details []string `json:"Details"`
	} `json:"Fault"`
}

// Client looks up compound properties. It is not safe for concurrent use:
// request pacing assumes one caller.
type Client struct {
	baseURL  string
	client   *http.Client
	interval time.Duration
	last     time.Time
	now      func() time.Time // injectable for deterministic tests
}

// New builds a Client from cfg. The HTTP client is built once and reused.
func New(cfg config.PubChemConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("pubchem: base url is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("pubchem: parse base url: %w", err)
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		client:   buildHTTPClient(cfg),
		interval: cfg.RequestInterval,
		now:      time.Now,
	}, nil
}

// userAgentRoundTripper sets the User-Agent header on every outgoing request.
type userAgentRoundTripper struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.userAgent != "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}
	return t.base.RoundTrip(req)
}

// buildHTTPClient constructs the http.Client for the configured TLS and timeout.
func buildHTTPClient(cfg config.PubChemConfig) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: cfg.TLS.InsecureSkipVerify, //nolint:gosec // user-configured
	}
	return &http.Client{
		Transport: &userAgentRoundTripper{base: transport, userAgent: cfg.UserAgent},
		Timeout:   cfg.Timeout,
	}
}

// PropertyURL returns the lookup URL for one compound property.
// The compound name is path-escaped; names with spaces or slashes are common.
func (c *Client) PropertyURL(compound, property string) string {
	return fmt.Sprintf("%s/compound/name/%s/property/%s/JSON",
		c.baseURL, url.PathEscape(compound), url.PathEscape(property))
}

// Property fetches a single property of a single compound and returns the
// raw decoded value: a json.Number, a string, or nil.
func (c *Client) Property(ctx context.Context, compound, property string) (any, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.PropertyURL(compound, property), nil)
	if err != nil {
		return nil, fmt.Errorf("pubchem: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pubchem: http get: %w", err)
	}
	defer resp.Body.Close()

	body := io.LimitReader(resp.Body, maxBodyBytes)
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Fault: readFault(body)}
	}
	return extract(body, property)
}

// wait blocks until interval has elapsed since the previous request.
func (c *Client) wait(ctx context.Context) error {
	if c.interval > 0 && !c.last.IsZero() {
		if d := c.interval - c.now().Sub(c.last); d > 0 {
			t := time.NewTimer(d)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
			}
		}
	}
	c.last = c.now()
	return nil
}

// extract decodes a property table from r and returns the first record's
// value for property.
func extract(r io.Reader, property string) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var pr propertyResponse
	if err := dec.Decode(&pr); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrNotFound, err)
	}
	props := pr.PropertyTable.Properties
	if len(props) == 0 {
		return nil, fmt.Errorf("%w: empty property table", ErrNotFound)
	}
	v, ok := props[0][property]
	if !ok {
		return nil, fmt.Errorf("%w: no %q in first record", ErrNotFound, property)
	}
	switch v.(type) {
	case json.Number, string, nil:
		return v, nil
	default:
		return nil, fmt.Errorf("%w: %q has unexpected type %T", ErrNotFound, property, v)
	}
}

// readFault returns PubChem's fault message from an error body, or "".
func readFault(r io.Reader) string {
	var fr faultResponse
	if err := json.NewDecoder(r).Decode(&fr); err != nil {
		return ""
	}
	return fr.Fault.Message
}
