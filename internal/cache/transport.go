package cache

import (
	"bytes"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// Transport is an http.RoundTripper that serves GET responses from the store
// when a fresh entry exists and fills the store from successful fetches.
// Display entities are immutable once written, so a fresh cache hit is as
// good as the archive's answer.
type Transport struct {
	Base  http.RoundTripper
	Store *Store
	Log   *zap.Logger
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *Transport) log() *zap.Logger {
	if t.Log != nil {
		return t.Log
	}
	return zap.NewNop()
}

// RoundTrip serves req from the cache when possible. Only GET requests are
// cached; queries are POSTs and always go to the archive.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet || t.Store == nil {
		return t.base().RoundTrip(req)
	}

	endpoint := req.URL.Path
	key := req.URL.RawQuery

	body, hit, err := t.Store.Get(req.Context(), endpoint, key)
	if err != nil {
		t.log().Warn("cache lookup failed", zap.String("endpoint", endpoint), zap.Error(err))
	} else if hit {
		t.log().Debug("cache hit", zap.String("endpoint", endpoint))
		return &http.Response{
			Status:        http.StatusText(http.StatusOK),
			StatusCode:    http.StatusOK,
			Proto:         "HTTP/1.1",
			ProtoMajor:    1,
			ProtoMinor:    1,
			Header:        http.Header{"Content-Type": []string{"application/json"}},
			Body:          io.NopCloser(bytes.NewReader(body)),
			ContentLength: int64(len(body)),
			Request:       req,
		}, nil
	}

	resp, err := t.base().RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}

	payload, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	if putErr := t.Store.Put(req.Context(), endpoint, key, payload); putErr != nil {
		t.log().Warn("cache store failed", zap.String("endpoint", endpoint), zap.Error(putErr))
	}
	resp.Body = io.NopCloser(bytes.NewReader(payload))
	resp.ContentLength = int64(len(payload))
	return resp, nil
}
