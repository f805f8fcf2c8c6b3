package restclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"example.com/backstage/services/console/config"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(config.BackendConfig{
		BaseURL:   srv.URL,
		AuthToken: "test-token",
		Timeout:   5 * time.Second,
	})
	return c, srv
}

func TestGetBuildsRequest(t *testing.T) {
	var gotPath, gotAuth, gotAccept, gotQuery string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"ok": true}`))
	})

	resp, err := c.Get(context.Background(), "/delivery/admin/deliveries", PageQuery(2, 20))

	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "/delivery/admin/deliveries", gotPath)
	require.Equal(t, "Bearer test-token", gotAuth)
	require.Equal(t, "application/json", gotAccept)
	require.Equal(t, "page=2&per_page=20", gotQuery)
}

func TestPostEncodesBody(t *testing.T) {
	var gotBody map[string]interface{}
	var gotContentType string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	})

	resp, err := c.Post(context.Background(), "/delivery/admin/assign", map[string]int64{"order_id": 9})

	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "application/json", gotContentType)
	require.Equal(t, float64(9), gotBody["order_id"])
}

func TestNonTwoHundredIsNotAnError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": "already assigned"}`))
	})

	resp, err := c.Get(context.Background(), "/delivery/admin/pool", nil)

	require.NoError(t, err)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.JSONEq(t, `{"detail": "already assigned"}`, string(resp.Body))
}

func TestTransportFailureReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(config.BackendConfig{BaseURL: srv.URL, Timeout: time.Second})

	resp, err := c.Get(context.Background(), "/anything", nil)

	require.Error(t, err)
	require.Nil(t, resp)
}

func TestContextCancellation(t *testing.T) {
	block := make(chan struct{})
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-block
	})
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Get(ctx, "/slow", nil)
	require.Error(t, err)
}

func TestTrailingSlashTrimmed(t *testing.T) {
	c := New(config.BackendConfig{BaseURL: "http://backend.local/"})
	require.Equal(t, "http://backend.local", c.BaseURL())
}

func TestPageQueryOmitsZeroValues(t *testing.T) {
	q := PageQuery(0, 0)
	require.Empty(t, q.Encode())

	q = PageQuery(1, 0)
	require.Equal(t, "page=1", q.Encode())
}
