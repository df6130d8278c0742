// Package archive is the HTTP client for the alert archive's display API.
// All responses are decoded with integer precision preserved: struct fields
// use int64 and free-form rows surface json.Number, because diaSourceId and
// friends routinely exceed 2^53.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"alertscope/internal/model"
)

const defaultTimeout = 30 * time.Second

// Client talks to one archive instance.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (used in tests and for
// custom transports).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger attaches a logger; requests are logged at debug level.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a client for the archive at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured archive base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Alert fetches a single alert packet, cutouts included.
func (c *Client) Alert(ctx context.Context, diaSourceID int64) (*model.Alert, error) {
	return getJSON[*model.Alert](ctx, c, fmt.Sprintf("/display/alert/%d", diaSourceID))
}

// rouletteResponse is the body of GET /display/roulette.
type rouletteResponse struct {
	DiaSourceID int64 `json:"diaSourceId"`
}

// Roulette returns a randomly sampled alert identifier.
func (c *Client) Roulette(ctx context.Context) (int64, error) {
	resp, err := getJSON[rouletteResponse](ctx, c, "/display/roulette")
	if err != nil {
		return 0, err
	}
	return resp.DiaSourceID, nil
}

// SummaryPlots fetches the lightcurve and centroid series for an object.
func (c *Client) SummaryPlots(ctx context.Context, diaObjectID int64) (*model.SummaryPlots, error) {
	return getJSON[*model.SummaryPlots](ctx, c, fmt.Sprintf("/display/diaobject/%d/summaryplots", diaObjectID))
}

// Templates fetches the per-band template images for an object.
func (c *Client) Templates(ctx context.Context, diaObjectID int64) (*model.TemplateImages, error) {
	return getJSON[*model.TemplateImages](ctx, c, fmt.Sprintf("/display/diaobject/%d/templates", diaObjectID))
}

// SSObject fetches a solar-system object record.
func (c *Client) SSObject(ctx context.Context, ssObjectID int64) (*model.SSObject, error) {
	return getJSON[*model.SSObject](ctx, c, fmt.Sprintf("/display/ssobject/%d", ssObjectID))
}

// Nights fetches the list of observing-night summaries.
func (c *Client) Nights(ctx context.Context) ([]model.NightSummary, error) {
	return getJSON[[]model.NightSummary](ctx, c, "/display/nights/list")
}

// QueryAlerts runs a filtered column query over the alert table.
func (c *Client) QueryAlerts(ctx context.Context, q model.AlertQuery) ([]model.Row, error) {
	return postJSON[[]model.Row](ctx, c, "/display/alerts/query", q)
}

func getJSON[T any](ctx context.Context, c *Client, path string) (T, error) {
	return doJSON[T](ctx, c, http.MethodGet, path, nil)
}

func postJSON[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	var zero T
	payload, err := json.Marshal(body)
	if err != nil {
		return zero, &RequestError{Kind: KindDecode, URL: c.baseURL + path, Err: err}
	}
	return doJSON[T](ctx, c, http.MethodPost, path, payload)
}

func doJSON[T any](ctx context.Context, c *Client, method, path string, body []byte) (T, error) {
	var zero T
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return zero, &RequestError{Kind: KindNetwork, URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("archive request failed", zap.String("url", url), zap.Error(err))
		return zero, &RequestError{Kind: KindNetwork, URL: url, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug("archive request",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return zero, &RequestError{
			Kind:   KindStatus,
			URL:    url,
			Status: resp.StatusCode,
			Detail: readDetail(resp.Body),
		}
	}

	out, err := decodeBody[T](resp.Body)
	if err != nil {
		return zero, &RequestError{Kind: KindDecode, URL: url, Err: err}
	}
	return out, nil
}

// readDetail extracts a human-readable message from an error response body.
// The archive wraps errors as {"detail": {"msg": ...}} or {"detail": ...}.
func readDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Detail == nil {
		return strings.TrimSpace(string(raw))
	}
	var msg struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &msg); err == nil && msg.Msg != "" {
		return msg.Msg
	}
	var plain string
	if err := json.Unmarshal(envelope.Detail, &plain); err == nil {
		return plain
	}
	return strings.TrimSpace(string(envelope.Detail))
}
