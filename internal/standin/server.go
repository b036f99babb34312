package standin

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/crypto/bcrypt"

	"discount24/internal/domain"
	"discount24/internal/telemetry"
)

type account struct {
	vendorID string
	hash     []byte
}

// Server holds the in-memory marketplace state.
type Server struct {
	tokens  *tokenIssuer
	cost    int
	log     *slog.Logger
	metrics *telemetry.Metrics

	mu       sync.RWMutex
	vendors  []domain.Vendor
	accounts map[string]account           // by lower-cased email
	menus    map[string][]domain.MenuItem // by vendor id
}

// New returns a Server for cfg, seeded with demo data when cfg.Seed is set.
func New(cfg Config) (*Server, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	s := &Server{
		tokens:   newTokenIssuer(cfg.JWTSecret, ttl),
		cost:     cost,
		log:      log,
		metrics:  telemetry.NewMetrics("standin"),
		accounts: make(map[string]account),
		menus:    make(map[string][]domain.MenuItem),
	}
	if cfg.Seed {
		if err := s.seed(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Metrics exposes the server's request metrics.
func (s *Server) Metrics() *telemetry.Metrics { return s.metrics }

// Handler returns the full HTTP stack: routes, CORS, access log and tracing.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := r.PathPrefix("/api/vendors").Subrouter()
	api.HandleFunc("/login", s.login).Methods(http.MethodPost)
	api.HandleFunc("/register", s.register).Methods(http.MethodPost)
	api.HandleFunc("/menu/", s.listMenu).Methods(http.MethodGet)
	api.Handle("/menu/", s.requireVendor(http.HandlerFunc(s.addMenuItem))).Methods(http.MethodPost)
	api.Handle("/menu/{id}", s.requireVendor(http.HandlerFunc(s.updateMenuItem))).Methods(http.MethodPut)
	api.Handle("/menu/{id}", s.requireVendor(http.HandlerFunc(s.deleteMenuItem))).Methods(http.MethodDelete)
	api.HandleFunc("/", s.listVendors).Methods(http.MethodGet)
	api.Handle("/{id}", s.requireVendor(http.HandlerFunc(s.updateVendor))).Methods(http.MethodPut)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8080", "http://127.0.0.1:8080", "*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return otelhttp.NewHandler(s.accessLog(c.Handler(r)), "standin")
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "standin"})
}

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.metrics.Observe(r.Method, sw.status, "", start)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"status", sw.status,
			"bytes", sw.bytes,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type ctxKey struct{}

// requireVendor rejects requests without a valid bearer token and stores the
// caller's vendor id in the request context.
func (s *Server) requireVendor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, errInvalidToken.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// caller returns the vendor id carried by the request's bearer token.
func (s *Server) caller(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	c, err := s.tokens.verify(token)
	if err != nil {
		s.log.Debug("rejected token", "error", err)
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.vendorIndexLocked(c.VendorID) < 0 {
		return "", false
	}
	return c.VendorID, true
}

func vendorFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
