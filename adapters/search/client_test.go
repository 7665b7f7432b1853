package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "namecheck/internal/errors"
)

func TestSearchParsesOrganicResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))

		var body struct {
			Q   string `json:"q"`
			Num int    `json:"num"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "acme", body.Q)
		assert.Equal(t, 3, body.Num)

		w.Write([]byte(`{"organic": [
			{"title": "Acme Inc", "link": "https://acme.com", "snippet": "We make anvils."},
			{"title": "Acme wiki", "link": "https://en.wikipedia.org/wiki/Acme", "snippet": "..."}
		]}`))
	}))
	defer srv.Close()

	c := New(Config{APIKey: "test-key", Endpoint: srv.URL, Timeout: time.Second})
	results, err := c.Search(context.Background(), "acme", 3)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Acme Inc", results[0].Title)
	assert.Equal(t, "https://acme.com", results[0].URL)
}

func TestSearchTruncatesToLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"organic": [
			{"title": "a", "link": "https://a.com"},
			{"title": "b", "link": "https://b.com"},
			{"title": "c", "link": "https://c.com"}
		]}`))
	}))
	defer srv.Close()

	c := New(Config{APIKey: "k", Endpoint: srv.URL})
	results, err := c.Search(context.Background(), "acme", 2)

	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearchRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(Config{APIKey: "k", Endpoint: srv.URL})
	_, err := c.Search(context.Background(), "acme", 3)

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeRateLimited, apperrors.GetCode(err))
}

func TestSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(Config{APIKey: "k", Endpoint: srv.URL})
	_, err := c.Search(context.Background(), "acme", 3)

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeExternalService, apperrors.GetCode(err))
}

func TestSearchUnconfigured(t *testing.T) {
	c := New(Config{})

	assert.False(t, c.Configured())

	_, err := c.Search(context.Background(), "acme", 3)
	assert.True(t, apperrors.IsNotConfigured(err))
}
