package http

import (
	"log/slog"
	"net/http"

	"financeflow/internal/core"
	applog "financeflow/internal/log"
)

// render executes a template, degrading to a 500 when templates failed to
// load at startup.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	logger := applog.FromContext(r.Context())
	if s.templates == nil {
		logger.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		logger.ErrorContext(r.Context(), "Template execution failed", "error", err, "template", name)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// categories loads the configured category names, falling back to the
// defaults when the settings read fails.
func (s *Server) categories(r *http.Request) []string {
	settings, err := s.svc.Settings(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load settings", "error", err)
		return core.DefaultSettings().Categories
	}
	return settings.Categories
}

func (s *Server) handleDashboardPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.render(w, r, "dashboard.html", struct {
		Active string
	}{Active: "dashboard"})
}

func (s *Server) handleTransactionsPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "transactions.html", struct {
		Active     string
		Categories []string
		Today      string
	}{
		Active:     "transactions",
		Categories: s.categories(r),
		Today:      core.DateOf(s.now()).String(),
	})
}

func (s *Server) handleReportsPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "reports.html", struct {
		Active     string
		Categories []string
	}{
		Active:     "reports",
		Categories: s.categories(r),
	})
}

func (s *Server) handleSettingsPage(w http.ResponseWriter, r *http.Request) {
	settings, err := s.svc.Settings(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load settings", "error", err)
		InternalServerError("Erro ao carregar configurações").Write(w)
		return
	}
	s.render(w, r, "settings.html", struct {
		Active      string
		MonthlyGoal string
		Categories  []string
	}{
		Active:      "settings",
		MonthlyGoal: formatBRL(settings.MonthlyGoal),
		Categories:  settings.Categories,
	})
}
