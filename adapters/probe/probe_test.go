package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"namecheck/domain/verdict"
)

func TestDNSProberNXDomain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "acme.com", r.URL.Query().Get("name"))
		w.Write([]byte(`{"Status": 3}`))
	}))
	defer srv.Close()

	p := NewDNSProber(srv.URL, time.Second)
	res, err := p.Probe(context.Background(), "acme.com")

	require.NoError(t, err)
	require.NotNil(t, res.Exists)
	assert.False(t, *res.Exists)
	assert.Equal(t, verdict.ConfidenceMedium, res.Confidence)
}

func TestDNSProberNoErrorWithRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Status": 0, "Answer": [{"name": "acme.com", "type": 1, "data": "93.184.216.34"}]}`))
	}))
	defer srv.Close()

	p := NewDNSProber(srv.URL, time.Second)
	res, err := p.Probe(context.Background(), "acme.com")

	require.NoError(t, err)
	require.NotNil(t, res.Exists)
	assert.True(t, *res.Exists)
	assert.Equal(t, verdict.ConfidenceHigh, res.Confidence)
}

func TestDNSProberNoErrorWithoutRecordsIsInconclusive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Status": 0}`))
	}))
	defer srv.Close()

	p := NewDNSProber(srv.URL, time.Second)
	res, err := p.Probe(context.Background(), "acme.com")

	require.NoError(t, err)
	assert.Nil(t, res.Exists)
	assert.Equal(t, verdict.ConfidenceLow, res.Confidence)
}

func TestDNSProberServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewDNSProber(srv.URL, time.Second)
	res, err := p.Probe(context.Background(), "acme.com")

	assert.Error(t, err)
	assert.Nil(t, res.Exists)
}

func TestHTTPProber404(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	p := NewHTTPProber(time.Second)
	res, err := p.Probe(context.Background(), srv.URL+"/acme")

	require.NoError(t, err)
	require.NotNil(t, res.Exists)
	assert.False(t, *res.Exists)
	assert.Equal(t, 404, res.StatusCode)
}

func TestHTTPProber200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("profile page"))
	}))
	defer srv.Close()

	p := NewHTTPProber(time.Second)
	res, err := p.Probe(context.Background(), srv.URL+"/acme")

	require.NoError(t, err)
	require.NotNil(t, res.Exists)
	assert.True(t, *res.Exists)
}

func TestHTTPProberDoesNotFollowRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "https://example.com/login", http.StatusFound)
	}))
	defer srv.Close()

	p := NewHTTPProber(time.Second)
	res, err := p.Probe(context.Background(), srv.URL+"/acme")

	require.NoError(t, err)
	assert.Equal(t, 302, res.StatusCode)
	assert.Equal(t, "https://example.com/login", res.RedirectTo)
	assert.Nil(t, res.Exists)
}

func TestHTTPProberConnectionError(t *testing.T) {
	p := NewHTTPProber(100 * time.Millisecond)

	_, err := p.Probe(context.Background(), "http://127.0.0.1:1/nothing")
	assert.Error(t, err)
}
