package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogServer(t *testing.T, known map[string]bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if known[r.URL.Path] {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":1}`))
			return
		}
		http.Error(w, "not found", http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExists_Found(t *testing.T) {
	srv := newCatalogServer(t, map[string]bool{"/api/users/7": true, "/api/courts/3": true})
	c := NewExistenceClient(srv.URL+"/api/users/", srv.URL+"/api/courts", time.Second)

	assert.True(t, c.Exists(context.Background(), KindUser, 7))
	assert.True(t, c.Exists(context.Background(), KindCourt, 3))
}

func TestExists_NotFoundStatus(t *testing.T) {
	srv := newCatalogServer(t, map[string]bool{})
	c := NewExistenceClient(srv.URL+"/api/users", srv.URL+"/api/courts", time.Second)

	ok, err := c.Lookup(context.Background(), KindUser, 99)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, c.Exists(context.Background(), KindCourt, 99))
}

func TestExists_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	c := NewExistenceClient(srv.URL, srv.URL, time.Second)

	assert.False(t, c.Exists(context.Background(), KindUser, 1))
}

func TestExists_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	c := NewExistenceClient(srv.URL, srv.URL, 50*time.Millisecond)

	ok, err := c.Lookup(context.Background(), KindCourt, 1)
	assert.Error(t, err)
	assert.False(t, ok)
	assert.False(t, c.Exists(context.Background(), KindCourt, 1))
}

func TestExists_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c := NewExistenceClient(url, url, time.Second)

	ok, err := c.Lookup(context.Background(), KindUser, 1)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestExists_CancelledContext(t *testing.T) {
	srv := newCatalogServer(t, map[string]bool{"/1": true})
	c := NewExistenceClient(srv.URL, srv.URL, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, c.Exists(ctx, KindUser, 1))
}

func TestLookup_UnknownKind(t *testing.T) {
	c := NewExistenceClient("http://localhost", "http://localhost", time.Second)

	_, err := c.Lookup(context.Background(), Kind("club"), 1)

	assert.ErrorContains(t, err, "unknown entity kind")
}
