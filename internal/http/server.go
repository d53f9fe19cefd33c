// Package http serves the server-rendered UI on top of the collection
// store and the domain services.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/davidsnrn/fincontrol/internal/core"
	"github.com/davidsnrn/fincontrol/internal/services"
	"github.com/davidsnrn/fincontrol/internal/storage"
	appweb "github.com/davidsnrn/fincontrol/web"
)

type Server struct {
	http.Server
	templates *template.Template

	store        *storage.Store
	transactions *services.TransactionService
	categories   *services.CategoryService
	accounts     *services.AccountService
	profiles     *services.ProfileService

	authDelay   time.Duration
	rateLimiter *rateLimiter

	// Dashboard views keyed by "YYYY-MM". Any mutation purges the
	// whole cache.
	dashboardCache *lruCache[dashboardView]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run
// http.Server.
func NewServer(addr string, store *storage.Store, transactions *services.TransactionService, categories *services.CategoryService, accounts *services.AccountService, profiles *services.ProfileService, authDelay time.Duration) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:            store,
		transactions:     transactions,
		categories:       categories,
		accounts:         accounts,
		profiles:         profiles,
		authDelay:        authDelay,
		rateLimiter:      newRateLimiter(),
		dashboardCache:   newLRUCache[dashboardView](100, 5*time.Minute),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	t, err := template.New("").Funcs(template.FuncMap{
		"brl":       formatBRL,
		"decimal":   core.FormatCents,
		"monthName": monthName,
	}).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	// Unknown paths fall through to "/" and redirect to the welcome page.
	mux.HandleFunc("/", s.withSecurityHeaders(s.handleWelcome))
	mux.HandleFunc("GET /auth", s.withSecurityHeaders(s.handleAuthPage))
	mux.HandleFunc("POST /auth", s.withSecurityHeaders(s.handleAuthSubmit))

	mux.HandleFunc("GET /dashboard", s.withSecurityHeaders(s.requireAuth(s.handleDashboard)))

	mux.HandleFunc("GET /transactions", s.withSecurityHeaders(s.requireAuth(s.handleTransactionList)))
	mux.HandleFunc("GET /transaction/new", s.withSecurityHeaders(s.requireAuth(s.handleTransactionForm)))
	mux.HandleFunc("GET /transaction/edit/{id}", s.withSecurityHeaders(s.requireAuth(s.handleTransactionForm)))
	mux.HandleFunc("POST /transaction/save", s.withSecurityHeaders(s.requireAuth(s.handleTransactionSave)))
	mux.HandleFunc("POST /transaction/delete/{id}", s.withSecurityHeaders(s.requireAuth(s.handleTransactionDelete)))

	mux.HandleFunc("GET /categories", s.withSecurityHeaders(s.requireAuth(s.handleCategoryList)))
	mux.HandleFunc("GET /categories/{parentID}", s.withSecurityHeaders(s.requireAuth(s.handleSubcategoryList)))
	mux.HandleFunc("GET /category/new", s.withSecurityHeaders(s.requireAuth(s.handleCategoryForm)))
	mux.HandleFunc("GET /category/edit/{id}", s.withSecurityHeaders(s.requireAuth(s.handleCategoryForm)))
	mux.HandleFunc("POST /category/save", s.withSecurityHeaders(s.requireAuth(s.handleCategorySave)))
	mux.HandleFunc("POST /category/delete/{id}", s.withSecurityHeaders(s.requireAuth(s.handleCategoryDelete)))

	mux.HandleFunc("GET /accounts", s.withSecurityHeaders(s.requireAuth(s.handleAccountList)))
	mux.HandleFunc("GET /account/new", s.withSecurityHeaders(s.requireAuth(s.handleAccountForm)))
	mux.HandleFunc("GET /account/edit/{id}", s.withSecurityHeaders(s.requireAuth(s.handleAccountForm)))
	mux.HandleFunc("POST /account/save", s.withSecurityHeaders(s.requireAuth(s.handleAccountSave)))
	mux.HandleFunc("POST /account/delete/{id}", s.withSecurityHeaders(s.requireAuth(s.handleAccountDelete)))

	mux.HandleFunc("GET /settings", s.withSecurityHeaders(s.requireAuth(s.handleSettings)))
	mux.HandleFunc("POST /settings/profile", s.withSecurityHeaders(s.requireAuth(s.handleProfileSave)))
	mux.HandleFunc("POST /settings/logout", s.withSecurityHeaders(s.requireAuth(s.handleLogout)))
	mux.HandleFunc("POST /settings/reset", s.withSecurityHeaders(s.requireAuth(s.handleReset)))

	return s
}

// requireAuth redirects to the auth page when no session flag is set.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, err := s.profiles.Authenticated(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Auth check failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Redirect(w, r, "/auth", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// withSecurityHeaders adds security headers, rate limiting for mutating
// methods, and request logging.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds())
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.dashboardCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops the cleanup goroutines and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		close(s.stopCacheCleanup)
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed", "error", err, "template", name)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
