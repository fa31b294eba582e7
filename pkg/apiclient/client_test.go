package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	auth   string
	body   map[string]any
}

func newRecordingServer(t *testing.T, status int, reply string) (*httptest.Server, func() []recorded) {
	t.Helper()

	var (
		mu   sync.Mutex
		reqs []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.Path, auth: r.Header.Get("Authorization")}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&rec.body)
		}
		mu.Lock()
		reqs = append(reqs, rec)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)

	return srv, func() []recorded {
		mu.Lock()
		defer mu.Unlock()
		return append([]recorded(nil), reqs...)
	}
}

func TestClient_SetToken_AttachesBearerHeader(t *testing.T) {
	t.Parallel()

	srv, reqs := newRecordingServer(t, http.StatusOK, `{}`)
	c := New(srv.URL + "/api")
	ctx := context.Background()

	for _, tok := range []string{"t1", "t2", "eyJhbGciOi.x.y"} {
		c.SetToken(tok)
		require.NoError(t, c.Get(ctx, "/products", nil))
	}

	got := reqs()
	require.Len(t, got, 3)
	assert.Equal(t, "Bearer t1", got[0].auth)
	assert.Equal(t, "Bearer t2", got[1].auth)
	assert.Equal(t, "Bearer eyJhbGciOi.x.y", got[2].auth)
	assert.Equal(t, "/api/products", got[0].path)
}

func TestClient_ClearedToken_SendsNoHeader(t *testing.T) {
	t.Parallel()

	srv, reqs := newRecordingServer(t, http.StatusOK, `{}`)
	c := New(srv.URL)
	ctx := context.Background()

	require.NoError(t, c.Get(ctx, "/categories", nil))
	c.SetToken("secret")
	require.NoError(t, c.Get(ctx, "/categories", nil))
	c.SetToken("")
	require.NoError(t, c.Get(ctx, "/categories", nil))
	c.SetToken("again")
	c.ClearToken()
	require.NoError(t, c.Get(ctx, "/categories", nil))

	got := reqs()
	require.Len(t, got, 4)
	assert.Empty(t, got[0].auth)
	assert.Equal(t, "Bearer secret", got[1].auth)
	assert.Empty(t, got[2].auth)
	assert.Empty(t, got[3].auth)
	assert.Empty(t, c.Token())
}

func TestClient_InFlightRequestKeepsItsToken(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		close(started)
		<-release
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	c.SetToken("before")

	done := make(chan error, 1)
	go func() { done <- c.Get(context.Background(), "/auth/me", nil) }()

	<-started
	sent := seen
	c.SetToken("after")
	close(release)

	require.NoError(t, <-done)
	assert.Equal(t, "Bearer before", sent)
}

func TestClient_Post_EncodesAndDecodesJSON(t *testing.T) {
	t.Parallel()

	srv, reqs := newRecordingServer(t, http.StatusCreated, `{"_id":"c1","categoryName":"Tea"}`)
	c := New(srv.URL + "/")

	var out struct {
		ID   string `json:"_id"`
		Name string `json:"categoryName"`
	}
	require.NoError(t, c.Post(context.Background(), "categories", map[string]string{"categoryName": "Tea"}, &out))

	assert.Equal(t, "c1", out.ID)
	assert.Equal(t, "Tea", out.Name)
	got := reqs()
	require.Len(t, got, 1)
	assert.Equal(t, http.MethodPost, got[0].method)
	assert.Equal(t, "/categories", got[0].path)
	assert.Equal(t, "Tea", got[0].body["categoryName"])
}

func TestClient_Non2xx_ReturnsAPIError(t *testing.T) {
	t.Parallel()

	srv, _ := newRecordingServer(t, http.StatusBadRequest, `{"message":"Product already in cart"}`)
	c := New(srv.URL)

	err := c.Post(context.Background(), "/carts/add", map[string]any{"productId": "p1", "quantity": 1}, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Product already in cart", apiErr.Message)
	assert.Equal(t, "Product already in cart", MessageOr(err, "fallback"))
	assert.Equal(t, http.StatusBadRequest, StatusCode(err))
	assert.False(t, IsUnauthorized(err))
}

func TestClient_Non2xx_WithoutMessage(t *testing.T) {
	t.Parallel()

	srv, _ := newRecordingServer(t, http.StatusUnauthorized, `not json`)
	c := New(srv.URL)

	err := c.Get(context.Background(), "/auth/me", nil)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "could not load profile", MessageOr(err, "could not load profile"))
	assert.Contains(t, err.Error(), "401")
}

func TestClient_MalformedBody(t *testing.T) {
	t.Parallel()

	srv, _ := newRecordingServer(t, http.StatusOK, `{"cartItems": [`)
	c := New(srv.URL)

	var out map[string]any
	err := c.Get(context.Background(), "/carts", &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestClient_TransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url)
	err := c.Get(context.Background(), "/products", nil)
	require.Error(t, err)
	assert.Zero(t, StatusCode(err))
	assert.Contains(t, err.Error(), "do request")
	assert.Equal(t, "offline", MessageOr(err, "offline"))
}

func TestClient_ContextDeadline(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c := New(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := c.Get(ctx, "/orders/my-orders", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWithHTTPClient_StillInjectsToken(t *testing.T) {
	t.Parallel()

	srv, reqs := newRecordingServer(t, http.StatusOK, `{}`)
	c := New(srv.URL, WithHTTPClient(&http.Client{Timeout: time.Second}))
	c.SetToken("abc")

	require.NoError(t, c.Delete(context.Background(), "/favorites/remove/p1", nil))
	got := reqs()
	require.Len(t, got, 1)
	assert.Equal(t, "Bearer abc", got[0].auth)
	assert.Equal(t, http.MethodDelete, got[0].method)
}
