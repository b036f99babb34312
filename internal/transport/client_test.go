package transport_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"discount24/internal/domain"
	"discount24/internal/session"
	"discount24/internal/store"
	"discount24/internal/telemetry"
	"discount24/internal/transport"
)

type mockDoer struct{ mock.Mock }

func (m *mockDoer) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

func newSession(t *testing.T, token string) *session.Store {
	t.Helper()
	s := session.New(store.NewTokenFileStore(t.TempDir(), ""), nil)
	if token != "" {
		require.NoError(t, s.SetToken(token))
	}
	return s
}

func newClient(t *testing.T, h http.HandlerFunc, sess *session.Store) (*transport.Client, *telemetry.Metrics) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	m := telemetry.NewMetrics("client")
	c := transport.New(transport.Config{
		BaseURL: srv.URL,
		Timeout: time.Second,
		HTTP:    srv.Client(),
		Metrics: m,
	}, sess)
	return c, m
}

func TestClient_AttachesBearerWhenAuthenticated(t *testing.T) {
	var got string
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}, newSession(t, "tok-1"))

	require.NoError(t, c.Do(context.Background(), http.MethodGet, "/api/vendors/", nil, nil))
	assert.Equal(t, "Bearer tok-1", got)
}

func TestClient_AnonymousSendsNoCredential(t *testing.T) {
	var got string
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
	}, newSession(t, ""))

	require.NoError(t, c.Do(context.Background(), http.MethodGet, "/api/vendors/", nil, nil))
	assert.Empty(t, got)
}

func TestClient_EncodesAndDecodesJSON(t *testing.T) {
	c, m := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"email":"a@b.c","password":"pw"}`, string(body))
		w.Write([]byte(`{"token":"t"}`))
	}, newSession(t, ""))

	var out domain.AuthResult
	err := c.Do(context.Background(), http.MethodPost, "/api/vendors/login",
		domain.Credentials{Email: "a@b.c", Password: "pw"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "t", out.Token)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("POST", "200")))
}

func TestClient_401TearsDownSessionOnce(t *testing.T) {
	sess := newSession(t, "stale")
	c, m := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, sess)

	var fired int32
	c.OnAuthExpired(func() { atomic.AddInt32(&fired, 1) })

	err := c.Do(context.Background(), http.MethodGet, "/api/vendors/menu/", nil, nil)
	assert.ErrorIs(t, err, domain.ErrAuthExpired)
	assert.False(t, sess.IsAuthenticated())

	// The session is anonymous now, so a further 401 is an ordinary failure.
	err = c.Do(context.Background(), http.MethodGet, "/api/vendors/menu/", nil, nil)
	assert.True(t, domain.IsStatus(err, http.StatusUnauthorized))
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsExpired))
}

func TestClient_401OnAnonymousCallIsServerError(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	}, newSession(t, ""))

	fired := false
	c.OnAuthExpired(func() { fired = true })

	err := c.Do(context.Background(), http.MethodPost, "/api/vendors/login", domain.Credentials{}, nil)
	var se *domain.ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.Status)
	assert.Equal(t, "Invalid credentials", se.Message)
	assert.False(t, fired)
}

func TestClient_UnsubscribedListenerNotCalled(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, newSession(t, "tok"))

	fired := false
	cancel := c.OnAuthExpired(func() { fired = true })
	cancel()

	_ = c.Do(context.Background(), http.MethodGet, "/x", nil, nil)
	assert.False(t, fired)
}

func TestClient_ServerErrorMessages(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"json message", 400, `{"message":"Price must be positive"}`, "Price must be positive"},
		{"json error", 409, `{"error":"email already registered"}`, "email already registered"},
		{"plain text", 404, "not found\n", "not found"},
		{"html page", 502, "<html>bad gateway</html>", "server error: 502 Bad Gateway"},
		{"empty", 500, "", "server error: 500 Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}, newSession(t, "tok"))

			err := c.Do(context.Background(), http.MethodGet, "/x", nil, nil)
			var se *domain.ServerError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.status, se.Status)
			assert.Equal(t, tt.want, se.Error())
		})
	}
}

func TestClient_MalformedBodyIsDecodeError(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":`))
	}, newSession(t, ""))

	var out domain.Vendor
	err := c.Do(context.Background(), http.MethodGet, "/x", nil, &out)
	var de *domain.DecodeError
	assert.ErrorAs(t, err, &de)
}

func TestClient_EmptyBodyLeavesOutUntouched(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, newSession(t, ""))

	out := domain.MenuItem{ID: "keep"}
	require.NoError(t, c.Do(context.Background(), http.MethodDelete, "/x", nil, &out))
	assert.Equal(t, "keep", out.ID)
}

func TestClient_TimeoutIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := transport.New(transport.Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond, HTTP: srv.Client()}, newSession(t, ""))

	start := time.Now()
	err := c.Do(context.Background(), http.MethodGet, "/slow", nil, nil)
	var ne *domain.NetworkError
	require.ErrorAs(t, err, &ne)
	assert.True(t, ne.Timeout)
	assert.Less(t, time.Since(start), time.Second)
}

func TestClient_TransportFailureIsNetworkError(t *testing.T) {
	doer := new(mockDoer)
	doer.On("Do", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	m := telemetry.NewMetrics("client")
	c := transport.New(transport.Config{BaseURL: "http://vendors.invalid", HTTP: doer, Metrics: m}, newSession(t, ""))

	err := c.Do(context.Background(), http.MethodGet, "/api/vendors/", nil, nil)
	var ne *domain.NetworkError
	require.ErrorAs(t, err, &ne)
	assert.False(t, ne.Timeout)
	assert.Equal(t, "GET /api/vendors/", ne.Op)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET", telemetry.OutcomeNetworkError)))
	doer.AssertExpectations(t)
}

func TestClient_DoMultipart(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Corner Cafe", r.FormValue("shopName"))
		assert.Equal(t, "Cafe", r.FormValue("category"))
		f, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()
		b, _ := io.ReadAll(f)
		assert.Equal(t, "logo.png", hdr.Filename)
		assert.Equal(t, "PNGDATA", string(b))
		w.Write([]byte(`{"token":"fresh"}`))
	}, newSession(t, ""))

	form := domain.MultipartForm{
		Fields: []domain.FormField{{Name: "shopName", Value: "Corner Cafe"}, {Name: "category", Value: "Cafe"}},
		Files:  []domain.FormFile{{Field: "image", Filename: "logo.png", Content: strings.NewReader("PNGDATA")}},
	}
	var out domain.AuthResult
	require.NoError(t, c.DoMultipart(context.Background(), http.MethodPost, "/api/vendors/register", form, &out))
	assert.Equal(t, "fresh", out.Token)
}
