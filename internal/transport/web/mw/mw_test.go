package mw

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/EgorLis/my-drive/internal/domain"
)

type fakeAuth struct {
	user domain.User
	err  error
	got  domain.Token
}

func (f *fakeAuth) Authenticate(_ context.Context, t domain.Token) (domain.User, domain.TokenClaims, error) {
	f.got = t
	if f.err != nil {
		return domain.User{}, domain.TokenClaims{}, f.err
	}
	return f.user, domain.TokenClaims{JTI: "j1", UserID: f.user.ID}, nil
}

func TestRequireAuth(t *testing.T) {
	u := domain.User{ID: uuid.New(), Email: "a@x.com"}

	tests := []struct {
		name   string
		header string
		err    error
		status int
	}{
		{"no header", "", nil, http.StatusUnauthorized},
		{"not bearer", "Basic abc", nil, http.StatusUnauthorized},
		{"rejected token", "Bearer bad", domain.ErrUnauth, http.StatusUnauthorized},
		{"backend failure", "Bearer tok", errors.New("redis down"), http.StatusInternalServerError},
		{"ok", "Bearer tok", nil, http.StatusOK},
		{"ok lowercase scheme", "bearer tok", nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &fakeAuth{user: u, err: tt.err}
			var (
				seen      domain.User
				hasClaims bool
			)
			h := RequireAuth(a, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = domain.UserFromCtx(r.Context())
				_, hasClaims = domain.ClaimsFromCtx(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/folders/root/content", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tt.status, rec.Code)
			switch tt.status {
			case http.StatusOK:
				assert.Equal(t, u.ID, seen.ID, "user not propagated")
				assert.True(t, hasClaims, "claims missing in context")
				assert.Equal(t, domain.Token("tok"), a.got)
			case http.StatusUnauthorized:
				assert.Contains(t, rec.Body.String(), `"code":1001`)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	var got string
	h := WithRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = RequestIDFromCtx(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, got)
	assert.Equal(t, got, rec.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "client-id")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "client-id", got)
}

func TestLoggingWritesAccessLine(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := WithRequestID(Logging(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("abc"))
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/files", nil))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	f := entries[0].ContextMap()
	assert.Equal(t, int64(http.StatusTeapot), f["status"])
	assert.Equal(t, int64(3), f["size"])
	assert.Equal(t, "/files", f["path"])
	assert.NotEmpty(t, f["req_id"])
}

func TestRecover(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := Recover(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom", "panic value leaked to client")
	assert.Equal(t, 1, logs.Len())
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(4) // burst 2
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	do := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, do("10.0.0.1:1111").Code, "request %d", i)
	}
	over := do("10.0.0.1:2222")
	assert.Equal(t, http.StatusTooManyRequests, over.Code, "same ip, other port")
	assert.Equal(t, "60", over.Header().Get("Retry-After"))
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1111").Code, "other ip limited")

	now = now.Add(15 * time.Second)
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1111").Code, "after refill")
}

func TestRateLimiterSweepIsThrottled(t *testing.T) {
	rl := NewRateLimiter(60)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	rl.now = func() time.Time { return now }

	rl.Allow("10.0.0.1")
	require.Contains(t, rl.visitors, "10.0.0.1")

	// простаивает дольше limiterIdle, но с прошлого прохода не прошло sweepInterval
	rl.lastSweep = start.Add(limiterIdle + time.Second)
	now = rl.lastSweep.Add(sweepInterval / 2)
	rl.Allow("10.0.0.2")
	assert.Contains(t, rl.visitors, "10.0.0.1", "sweep ran before interval elapsed")

	now = rl.lastSweep.Add(sweepInterval)
	rl.Allow("10.0.0.3")
	assert.NotContains(t, rl.visitors, "10.0.0.1", "idle visitor not evicted")
	assert.Contains(t, rl.visitors, "10.0.0.2")
	assert.Equal(t, now, rl.lastSweep)
}
