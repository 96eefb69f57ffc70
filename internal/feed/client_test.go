package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedsFixture = `{
	"channel": {"id": 123456, "field1": "Temperatura", "field2": "Umidade"},
	"feeds": [
		{"created_at": "2026-08-01T12:00:00Z", "entry_id": 41, "field1": "25.50", "field2": "60.00"},
		{"created_at": "2026-08-01T12:01:00Z", "entry_id": 42, "field1": "32.10", "field2": "50.00"}
	]
}`

func TestFetchLatest(t *testing.T) {
	t.Run("parses the newest entries", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/channels/123456/feeds.json", r.URL.Path)
			assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
			assert.Equal(t, "2", r.URL.Query().Get("results"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(feedsFixture))
		}))
		defer server.Close()

		client := NewClient(server.URL, "123456", "test-key", time.Second)
		samples, err := client.FetchLatest(context.Background())
		require.NoError(t, err)
		require.Len(t, samples, 2)

		assert.Equal(t, int64(42), samples[1].EntryID)
		assert.Equal(t, 32.1, samples[1].Temperature)
		assert.Equal(t, 50.0, samples[1].Humidity)
		assert.Equal(t, time.Date(2026, 8, 1, 12, 1, 0, 0, time.UTC), samples[1].CreatedAt)
	})

	t.Run("skips entries with unparsable fields", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"feeds": [
					{"created_at": "2026-08-01T12:00:00Z", "entry_id": 41, "field1": "", "field2": "60.00"},
					{"created_at": "2026-08-01T12:01:00Z", "entry_id": 42, "field1": "32.10", "field2": "50.00"}
				]
			}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "123456", "test-key", time.Second)
		samples, err := client.FetchLatest(context.Background())
		require.NoError(t, err)
		require.Len(t, samples, 1)
		assert.Equal(t, int64(42), samples[0].EntryID)
	})

	t.Run("empty feed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"feeds": []}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "123456", "test-key", time.Second)
		samples, err := client.FetchLatest(context.Background())
		require.NoError(t, err)
		assert.Empty(t, samples)
	})

	t.Run("error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		client := NewClient(server.URL, "123456", "bad-key", time.Second)
		_, err := client.FetchLatest(context.Background())
		assert.ErrorContains(t, err, "status 400")
	})
}
