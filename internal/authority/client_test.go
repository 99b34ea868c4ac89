package authority_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordcodes/session-gateway/internal/authority"
	"github.com/nordcodes/session-gateway/internal/config"
)

const testToken = "0123456789ABCDEF0123456789ABCDEF"

func newTestClient(t *testing.T, handler http.Handler) (*authority.Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := authority.NewClient(config.Authority{
		BaseURL:    srv.URL,
		AuthPath:   "/auth",
		ActionPath: "/doAction",
		Timeout:    time.Second,
	}, srv.Client())
	require.NoError(t, err)

	return client, srv
}

func TestNewClient(t *testing.T) {
	t.Run("rejects an unparsable base URL", func(t *testing.T) {
		_, err := authority.NewClient(config.Authority{BaseURL: "://nope"}, nil)
		assert.Error(t, err)
	})

	t.Run("builds a default http client from the configured timeout", func(t *testing.T) {
		client, err := authority.NewClient(config.Authority{
			BaseURL: "http://localhost:8888",
			Timeout: time.Second,
		}, nil)
		require.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{name: "200 approves", status: http.StatusOK, want: true},
		{name: "400 denies", status: http.StatusBadRequest, want: false},
		{name: "401 denies", status: http.StatusUnauthorized, want: false},
		{name: "500 denies", status: http.StatusInternalServerError, want: false},
		{name: "204 denies, only 200 approves", status: http.StatusNoContent, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("{}"))
			}))

			assert.Equal(t, tt.want, client.Authenticate(t.Context(), testToken))
			assert.Equal(t, tt.want, client.AuthorizeAction(t.Context(), testToken))
		})
	}
}

func TestClient_RequestShape(t *testing.T) {
	var gotPath, gotMethod, gotContentType, gotToken string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotToken = r.PostFormValue("token")
		w.WriteHeader(http.StatusOK)
	}))

	require.True(t, client.Authenticate(t.Context(), testToken))

	assert.Equal(t, "/auth", gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, testToken, gotToken)

	require.True(t, client.AuthorizeAction(t.Context(), testToken))
	assert.Equal(t, "/doAction", gotPath)
}

func TestClient_SingleAttempt(t *testing.T) {
	var calls atomic.Int64

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	assert.False(t, client.Authenticate(t.Context(), testToken))
	assert.Equal(t, int64(1), calls.Load())
}

func TestClient_FailsClosed(t *testing.T) {
	t.Run("unreachable service denies", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close() // nothing listens anymore

		client, err := authority.NewClient(config.Authority{
			BaseURL:    srv.URL,
			AuthPath:   "/auth",
			ActionPath: "/doAction",
			Timeout:    time.Second,
		}, nil)
		require.NoError(t, err)

		assert.False(t, client.Authenticate(t.Context(), testToken))
		assert.False(t, client.AuthorizeAction(t.Context(), testToken))
	})

	t.Run("slow service denies after the timeout instead of hanging", func(t *testing.T) {
		release := make(chan struct{})

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			<-release
			w.WriteHeader(http.StatusOK)
		}))
		t.Cleanup(srv.Close)
		t.Cleanup(func() { close(release) })

		client, err := authority.NewClient(config.Authority{
			BaseURL:    srv.URL,
			AuthPath:   "/auth",
			ActionPath: "/doAction",
			Timeout:    50 * time.Millisecond,
		}, nil)
		require.NoError(t, err)

		start := time.Now()
		assert.False(t, client.Authenticate(t.Context(), testToken))
		assert.Less(t, time.Since(start), 5*time.Second)
	})
}
