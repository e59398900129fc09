package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"financeflow/internal/core"
)

// handleSaveGoal overwrites the monthly goal. The amount parses leniently,
// degrading to 0 like any other amount field.
func (s *Server) handleSaveGoal(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	settings, err := s.svc.Settings(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load settings", "error", err)
		InternalServerError("Erro ao carregar configurações").Write(w)
		return
	}

	settings.MonthlyGoal = core.ParseAmount(r.Form.Get("monthlyGoal"))
	if err := s.svc.SaveSettings(r.Context(), settings); err != nil {
		slog.ErrorContext(r.Context(), "Failed to save settings", "error", err)
		InternalServerError("Erro ao salvar configurações").Write(w)
		return
	}

	slog.InfoContext(r.Context(), "Monthly goal updated", "monthly_goal", settings.MonthlyGoal)

	NewHTMXResponse().
		TriggerSettingsUpdated().
		TriggerSuccessNotification("Meta mensal atualizada").
		BodyHTML(`<span id="goal-value">` + formatBRL(settings.MonthlyGoal) + `</span>`).
		Write(w)
}

// handleAddCategory appends a new category name. Empty and duplicate names
// are rejected.
func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	name := sanitizeInput(r.Form.Get("name"))
	if name == "" {
		UnprocessableEntityError("Nome da categoria é obrigatório").Write(w)
		return
	}

	settings, err := s.svc.Settings(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load settings", "error", err)
		InternalServerError("Erro ao carregar configurações").Write(w)
		return
	}
	if settings.HasCategory(name) {
		UnprocessableEntityError("Categoria já existe").Write(w)
		return
	}

	settings.Categories = append(settings.Categories, name)
	if err := s.svc.SaveSettings(r.Context(), settings); err != nil {
		slog.ErrorContext(r.Context(), "Failed to save settings", "error", err)
		InternalServerError("Erro ao salvar configurações").Write(w)
		return
	}

	slog.InfoContext(r.Context(), "Category added", "category", name)
	s.renderCategories(w, r, settings.Categories)
}

// handleDeleteCategory removes a category name. Transactions already using
// the name keep it; they are not rewritten.
func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if resp := RequireDeleteOrPOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	name := sanitizeInput(r.Form.Get("name"))
	if name == "" {
		name = sanitizeInput(r.URL.Query().Get("name"))
	}
	if name == "" {
		UnprocessableEntityError("Nome da categoria é obrigatório").Write(w)
		return
	}

	settings, err := s.svc.Settings(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load settings", "error", err)
		InternalServerError("Erro ao carregar configurações").Write(w)
		return
	}

	kept := make([]string, 0, len(settings.Categories))
	for _, category := range settings.Categories {
		if !strings.EqualFold(category, name) {
			kept = append(kept, category)
		}
	}
	settings.Categories = kept

	if err := s.svc.SaveSettings(r.Context(), settings); err != nil {
		slog.ErrorContext(r.Context(), "Failed to save settings", "error", err)
		InternalServerError("Erro ao salvar configurações").Write(w)
		return
	}

	slog.InfoContext(r.Context(), "Category removed", "category", name)
	s.renderCategories(w, r, settings.Categories)
}

// renderCategories writes the category list partial with a settings:updated
// trigger so sibling widgets refresh.
func (s *Server) renderCategories(w http.ResponseWriter, r *http.Request, categories []string) {
	if raw, err := json.Marshal(map[string]any{"settings:updated": struct{}{}}); err == nil {
		w.Header().Set("HX-Trigger", string(raw))
	}
	s.render(w, r, "settings_categories.html", struct {
		Categories []string
	}{Categories: categories})
}
