package http

import (
	"log/slog"
	"net/http"
	"time"
)

// handleWelcome renders the landing page. Every unknown path lands
// here too and is redirected to the root.
func (s *Server) handleWelcome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	ok, err := s.profiles.Authenticated(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Auth check failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	profile, err := s.profiles.Profile(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Profile read failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.render(w, r, "welcome.html", profile)
}

func (s *Server) handleAuthPage(w http.ResponseWriter, r *http.Request) {
	profile, err := s.profiles.Profile(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Profile read failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.render(w, r, "auth.html", profile)
}

// handleAuthSubmit simulates the unlock flow. The fixed delay stands in
// for a biometric or PIN check; the request context can cut it short.
func (s *Server) handleAuthSubmit(w http.ResponseWriter, r *http.Request) {
	if s.authDelay > 0 {
		timer := time.NewTimer(s.authDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-r.Context().Done():
			return
		}
	}

	if err := s.profiles.SetAuthenticated(r.Context(), true); err != nil {
		slog.ErrorContext(r.Context(), "Failed to store session flag", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
