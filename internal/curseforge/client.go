// SPDX-License-Identifier: MPL-2.0

package curseforge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// DefaultEndpoint is the Minecraft deployment of the Upload API.
	// Other games expose the same contract on their own hosts.
	DefaultEndpoint = "https://minecraft.curseforge.com"

	// apiTokenHeader carries the API key on every request.
	apiTokenHeader = "X-Api-Token"

	// defaultTimeout bounds a single round trip. Uploads can be large,
	// so this is generous. There are no retries.
	defaultTimeout = 60 * time.Second

	// maxJSONResponseBytes is the upper bound on JSON API response size (10 MB).
	// Prevents unbounded memory consumption from malicious or malformed responses.
	maxJSONResponseBytes = 10 << 20
)

type (
	// Client talks to a CurseForge Upload API deployment. Responses are
	// returned as parsed JSON without interpretation; the caller decides
	// what success means.
	Client struct {
		httpClient *http.Client
		endpoint   string // API base URL (default: DefaultEndpoint, overridable per game or for tests)
		apiKey     string // API token created under the account's API Tokens page
		userAgent  string // User-Agent header value
		logger     *log.Logger
	}

	// ClientOption configures a Client during construction.
	ClientOption func(*Client)
)

// WithHTTPClient sets a custom HTTP client, useful for tests or proxy configurations.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cf *Client) {
		cf.httpClient = c
	}
}

// WithEndpoint overrides the API base URL. CurseForge runs one deployment
// per game, so uploads for games other than Minecraft need this.
func WithEndpoint(endpoint string) ClientOption {
	return func(cf *Client) {
		cf.endpoint = strings.TrimRight(endpoint, "/")
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(cf *Client) {
		cf.userAgent = ua
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *log.Logger) ClientOption {
	return func(cf *Client) {
		cf.logger = logger
	}
}

// NewClient creates a Client authenticated with the given API key.
// Defaults: endpoint=DefaultEndpoint, userAgent="curseupload/dev",
// httpClient with a 60s timeout.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		endpoint:   DefaultEndpoint,
		apiKey:     apiKey,
		userAgent:  "curseupload/dev",
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the API base URL the client targets.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// GameVersions fetches the game version catalog from GET /api/game/versions.
// Catalog order is preserved as returned by the API; ResolveVersions depends on it.
func (c *Client) GameVersions(ctx context.Context) ([]GameVersion, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/game/versions", "", nil)
	if err != nil {
		return nil, fmt.Errorf("fetching game versions: %w", err)
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching game versions: unexpected status %d", resp.StatusCode)
	}

	var catalog []GameVersion
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJSONResponseBytes)).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("fetching game versions: decoding response: %w", err)
	}

	c.logger.Debug("fetched game version catalog", "entries", len(catalog))
	return catalog, nil
}

// GameDependencies fetches the dependency-type catalog from
// GET /api/game/dependencies. The payload is passed through untyped.
func (c *Client) GameDependencies(ctx context.Context) (json.RawMessage, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/game/dependencies", "", nil)
	if err != nil {
		return nil, fmt.Errorf("fetching game dependencies: %w", err)
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching game dependencies: unexpected status %d", resp.StatusCode)
	}

	raw, err := readJSON(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetching game dependencies: %w", err)
	}
	return raw, nil
}

// doRequest creates and executes an HTTP request against the API. The path
// is appended to the configured endpoint. A non-nil body is sent with the
// given content type.
func (c *Client) doRequest(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	if body == nil {
		body = http.NoBody
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set(apiTokenHeader, c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.logger.Debug("calling upload API", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	return resp, nil
}

// readJSON reads a response body and returns it as raw JSON, rejecting
// bodies that are not syntactically valid JSON.
func readJSON(body io.Reader) (json.RawMessage, error) {
	data, err := io.ReadAll(io.LimitReader(body, maxJSONResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("response is not valid JSON")
	}
	return json.RawMessage(data), nil
}
