package web

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"yatube/internal/model"
	"yatube/pkg/logger"
)

const (
	requestIDHeader = "X-Request-ID"
	cacheHeader     = "X-Page-Cache"

	limiterClients = 4096
	limiterIdle    = 10 * time.Minute // since the last request of a client
)

type identityKey struct{}

func withIdentity(ctx context.Context, id model.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// identityFrom returns the anonymous identity when the request carries no
// valid session.
func identityFrom(ctx context.Context) model.Identity {
	id, _ := ctx.Value(identityKey{}).(model.Identity)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	body   *bytes.Buffer
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if rec.status == 0 {
		rec.status = http.StatusOK
	}
	if rec.body != nil {
		rec.body.Write(b)
	}
	return rec.ResponseWriter.Write(b)
}

func (h *Handler) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, reqID)

		ctx := logger.With(r.Context(), "request_id", reqID)
		rec := &statusRecorder{ResponseWriter: w}
		start := time.Now()

		next.ServeHTTP(rec, r.WithContext(ctx))

		logger.FromContext(ctx).Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// identify resolves the session from the cookie or a bearer token. A bad or
// expired token leaves the request anonymous.
func (h *Handler) identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if c, err := r.Cookie(sessionCookie); err == nil {
			token = c.Value
		}
		if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		id, err := h.auth.ParseToken(token)
		if err != nil {
			logger.FromContext(r.Context()).Debug("session rejected", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		ctx := logger.With(withIdentity(r.Context(), id), "user", id.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientLimiter hands out one token bucket per client address.
type ClientLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	clients *expirable.LRU[string, *rate.Limiter]
}

func NewClientLimiter(rps float64, burst int) *ClientLimiter {
	return newClientLimiter(rps, burst, limiterIdle)
}

func newClientLimiter(rps float64, burst int, idle time.Duration) *ClientLimiter {
	return &ClientLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		clients: expirable.NewLRU[string, *rate.Limiter](limiterClients, nil, idle),
	}
}

func (l *ClientLimiter) Allow(client string) bool {
	l.mu.Lock()
	lim, ok := l.clients.Get(client)
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
	}
	// Add again on every use: expirable counts the ttl from Add only.
	l.clients.Add(client, lim)
	l.mu.Unlock()

	return lim.Allow()
}

// throttle limits writes only; reads are served from the page cache or
// are cheap.
func (h *Handler) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.limiter == nil || r.Method == http.MethodGet || r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		if !h.limiter.Allow(clientAddr(r)) {
			logger.FromContext(r.Context()).Warn("rate limited", "remote", r.RemoteAddr)
			render(w, r, http.StatusTooManyRequests, "core/429.html", errorContext{Path: r.URL.Path})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// cachePage serves a stored copy of successful responses keyed by path and
// query. Entries are never invalidated by writes and live until they expire
// or the cache is flushed.
func (h *Handler) cachePage(next http.Handler) http.Handler {
	if h.cache == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromContext(ctx)
		key := r.URL.RequestURI()

		page, ok, err := h.cache.Get(ctx, key)
		if err != nil {
			log.Warn("page cache get", "key", key, "error", err)
		}
		if ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Header().Set(cacheHeader, "hit")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(page)
			return
		}

		w.Header().Set(cacheHeader, "miss")
		rec := &statusRecorder{ResponseWriter: w, body: &bytes.Buffer{}}
		next.ServeHTTP(rec, r)

		if rec.status != http.StatusOK {
			return
		}
		if err := h.cache.Set(ctx, key, rec.body.Bytes()); err != nil {
			log.Warn("page cache set", "key", key, "error", err)
		}
	})
}
