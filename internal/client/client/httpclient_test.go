package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	method      string
	path        string
	contentType string
	requestID   string
	body        loginRequest
}

func newTestServer(t *testing.T, status int, contentType, body string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	got := &capturedRequest{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.Path
		got.contentType = r.Header.Get("Content-Type")
		got.requestID = r.Header.Get("X-Request-ID")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &got.body)

		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts, got
}

func TestNewHTTPClient_ValidatesURL(t *testing.T) {
	for _, raw := range []string{"", "ftp://example.com/user/login", "http://", "::bad"} {
		_, err := NewHTTPClient(raw)
		require.Error(t, err, raw)
	}

	c, err := NewHTTPClient("https://api.example.com/user/login?x=1")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/ping", c.pingURL)
}

func TestAuthenticate_SendsJSONBody(t *testing.T) {
	ts, got := newTestServer(t, http.StatusOK, "application/json", `{"token":"abc"}`)
	c, err := NewHTTPClient(ts.URL + "/user/login")
	require.NoError(t, err)

	c.Authenticate(context.Background(), "user@example.com", "pw")

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/user/login", got.path)
	assert.Equal(t, "application/json", got.contentType)
	assert.Equal(t, loginRequest{Email: "user@example.com", Password: "pw"}, got.body)
	_, err = uuid.Parse(got.requestID)
	assert.NoError(t, err, "request id must be a uuid")
}

func TestAuthenticate_ResultMapping(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		check       func(t *testing.T, res AuthResult)
	}{
		{
			name: "200 with JSON object", status: http.StatusOK, contentType: "application/json",
			body: `{"token":"abc","name":"Ann"}`,
			check: func(t *testing.T, res AuthResult) {
				ok, is := res.(Authenticated)
				require.True(t, is, "got %#v", res)
				assert.Equal(t, map[string]any{"token": "abc", "name": "Ann", "status": 200}, ok.Profile)
			},
		},
		{
			name: "200 overrides server status key", status: http.StatusOK,
			body: `{"status":"ignored"}`,
			check: func(t *testing.T, res AuthResult) {
				ok, is := res.(Authenticated)
				require.True(t, is, "got %#v", res)
				assert.Equal(t, 200, ok.Profile["status"])
			},
		},
		{
			name: "200 with malformed body", status: http.StatusOK, body: `not json`,
			check: func(t *testing.T, res AuthResult) {
				nf, is := res.(NetworkFailure)
				require.True(t, is, "got %#v", res)
				assert.ErrorIs(t, nf.Cause, ErrMalformedResponse)
			},
		},
		{
			name: "200 with JSON array", status: http.StatusOK, body: `[1,2]`,
			check: func(t *testing.T, res AuthResult) {
				nf, is := res.(NetworkFailure)
				require.True(t, is, "got %#v", res)
				assert.ErrorIs(t, nf.Cause, ErrMalformedResponse)
			},
		},
		{
			name: "200 with null", status: http.StatusOK, body: `null`,
			check: func(t *testing.T, res AuthResult) {
				nf, is := res.(NetworkFailure)
				require.True(t, is, "got %#v", res)
				assert.ErrorIs(t, nf.Cause, ErrMalformedResponse)
			},
		},
		{
			name: "400 plain text", status: http.StatusBadRequest, contentType: "text/plain",
			body: "Invalid email or password\n",
			check: func(t *testing.T, res AuthResult) {
				assert.Equal(t, Rejected{Reason: "Invalid email or password"}, res)
			},
		},
		{
			name: "400 JSON body kept verbatim", status: http.StatusBadRequest,
			body: `{"error":"bad creds"}`,
			check: func(t *testing.T, res AuthResult) {
				assert.Equal(t, Rejected{Reason: `{"error":"bad creds"}`}, res)
			},
		},
		{
			name: "401", status: http.StatusUnauthorized, body: "nope",
			check: func(t *testing.T, res AuthResult) {
				assert.Equal(t, Rejected{Reason: "nope"}, res)
			},
		},
		{
			name: "500", status: http.StatusInternalServerError, body: "boom",
			check: func(t *testing.T, res AuthResult) {
				nf, is := res.(NetworkFailure)
				require.True(t, is, "got %#v", res)
				assert.ErrorIs(t, nf.Cause, ErrUnexpectedStatus)
				assert.Contains(t, nf.Cause.Error(), "500")
			},
		},
		{
			name: "302 is not success", status: http.StatusFound, body: `{"page":"home"}`,
			check: func(t *testing.T, res AuthResult) {
				nf, is := res.(NetworkFailure)
				require.True(t, is, "got %#v", res)
				assert.ErrorIs(t, nf.Cause, ErrUnexpectedStatus)
				assert.Contains(t, nf.Cause.Error(), "302")
			},
		},
		{
			name: "201 is not success", status: http.StatusCreated, body: `{}`,
			check: func(t *testing.T, res AuthResult) {
				nf, is := res.(NetworkFailure)
				require.True(t, is, "got %#v", res)
				assert.ErrorIs(t, nf.Cause, ErrUnexpectedStatus)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, _ := newTestServer(t, tt.status, tt.contentType, tt.body)
			c, err := NewHTTPClient(ts.URL + "/user/login")
			require.NoError(t, err)

			tt.check(t, c.Authenticate(context.Background(), "a@b.com", "pw1"))
		})
	}
}

func TestAuthenticate_DoesNotFollowRedirects(t *testing.T) {
	var landingHits int
	mux := http.NewServeMux()
	mux.HandleFunc("/user/login", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/landing", http.StatusFound)
	})
	mux.HandleFunc("/landing", func(w http.ResponseWriter, r *http.Request) {
		landingHits++
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"page":"home"}`)
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	for name, opts := range map[string][]Option{
		"default client": nil,
		"custom client":  {WithHTTPClient(&http.Client{})},
	} {
		t.Run(name, func(t *testing.T) {
			c, err := NewHTTPClient(ts.URL+"/user/login", opts...)
			require.NoError(t, err)

			res := c.Authenticate(context.Background(), "a@b.com", "wrong")
			nf, ok := res.(NetworkFailure)
			require.True(t, ok, "got %#v", res)
			assert.ErrorIs(t, nf.Cause, ErrUnexpectedStatus)
		})
	}
	assert.Zero(t, landingHits)
}

func TestAuthenticate_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close()

	c, err := NewHTTPClient(ts.URL + "/user/login")
	require.NoError(t, err)

	res := c.Authenticate(context.Background(), "a@b.com", "pw1")
	nf, ok := res.(NetworkFailure)
	require.True(t, ok, "got %#v", res)
	require.Error(t, nf.Cause)
}

func TestAuthenticate_Timeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		ts.Close()
	})

	c, err := NewHTTPClient(ts.URL+"/user/login", WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	start := time.Now()
	res := c.Authenticate(context.Background(), "a@b.com", "pw1")
	require.Less(t, time.Since(start), 5*time.Second)

	nf, ok := res.(NetworkFailure)
	require.True(t, ok, "got %#v", res)
	assert.True(t, errors.Is(nf.Cause, context.DeadlineExceeded), "cause: %v", nf.Cause)
}

func TestAuthenticate_CallerCancellation(t *testing.T) {
	ts, _ := newTestServer(t, http.StatusOK, "application/json", `{}`)
	c, err := NewHTTPClient(ts.URL + "/user/login")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := c.Authenticate(ctx, "a@b.com", "pw1")
	nf, ok := res.(NetworkFailure)
	require.True(t, ok, "got %#v", res)
	assert.ErrorIs(t, nf.Cause, context.Canceled)
}

func TestNetworkFailure_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	var err error = NetworkFailure{Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "refused")
}

func TestPing(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/ping" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = io.WriteString(w, "OK")
		}))
		defer ts.Close()

		c, err := NewHTTPClient(ts.URL + "/user/login")
		require.NoError(t, err)
		require.NoError(t, c.Ping(context.Background()))
	})

	t.Run("non-200", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer ts.Close()

		c, err := NewHTTPClient(ts.URL + "/user/login")
		require.NoError(t, err)
		require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
	})

	t.Run("down", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		ts.Close()

		c, err := NewHTTPClient(ts.URL + "/user/login")
		require.NoError(t, err)
		require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
	})
}
