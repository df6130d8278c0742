package cache

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportCachesGetResponses(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"diaSourceId": 9007199254740999}`))
	}))
	defer server.Close()

	store := openTestStore(t, time.Hour)
	client := &http.Client{Transport: &Transport{Store: store}}

	for i := 0; i < 3; i++ {
		resp, err := client.Get(server.URL + "/display/alert/9007199254740999")
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		assert.Equal(t, `{"diaSourceId": 9007199254740999}`, string(body))
	}
	assert.Equal(t, 1, hits, "only the first request reaches the archive")
}

func TestTransportSkipsPostAndErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Write([]byte(`[]`))
			return
		}
		http.Error(w, `{"detail":{"msg":"no such alert"}}`, http.StatusNotFound)
	}))
	defer server.Close()

	store := openTestStore(t, time.Hour)
	client := &http.Client{Transport: &Transport{Store: store}}

	// POST bypasses the cache entirely.
	resp, err := client.Post(server.URL+"/display/alerts/query", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	_, ok, err := store.Get(resp.Request.Context(), "/display/alerts/query", "")
	require.NoError(t, err)
	assert.False(t, ok)

	// Non-200 responses are never stored.
	resp, err = client.Get(server.URL + "/display/alert/1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_, ok, err = store.Get(resp.Request.Context(), "/display/alert/1", "")
	require.NoError(t, err)
	assert.False(t, ok)
}
