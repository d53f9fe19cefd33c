package http

import (
	"log/slog"
	"net/http"
	"strings"
)

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	profile, err := s.profiles.Profile(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Profile read failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.render(w, r, "settings.html", profile)
}

func (s *Server) handleProfileSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	profile, err := s.profiles.Profile(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Profile read failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if v := sanitizeInput(r.Form.Get("name")); v != "" {
		profile.Name = v
	}
	if v := sanitizeInput(r.Form.Get("email")); v != "" {
		profile.Email = v
	}
	if v := strings.TrimSpace(r.Form.Get("currency")); v != "" {
		profile.Currency = v
	}
	if v := strings.TrimSpace(r.Form.Get("theme")); v == "light" || v == "dark" {
		profile.Theme = v
	}
	profile.BiometryEnabled = parseCheckbox(r.Form.Get("biometryEnabled"))
	profile.BackupEnabled = parseCheckbox(r.Form.Get("backupEnabled"))

	if err := s.profiles.Save(ctx, profile); err != nil {
		slog.ErrorContext(ctx, "Profile save failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.profiles.SetAuthenticated(r.Context(), false); err != nil {
		slog.ErrorContext(r.Context(), "Failed to clear session flag", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleReset wipes every collection back to the seed data. The form
// must carry confirm=1 so a stray POST cannot erase everything.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if r.Form.Get("confirm") != "1" {
		http.Error(w, "reset not confirmed", http.StatusBadRequest)
		return
	}
	if err := s.profiles.Reset(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Reset failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.dashboardCache.Purge()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
