package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/davidsnrn/fincontrol/internal/core"
	"github.com/davidsnrn/fincontrol/internal/services"
)

type categoryRow struct {
	core.Category
	ChildCount int
}

type categoryListView struct {
	Type       core.TransactionType
	Categories []categoryRow
}

// handleCategoryList shows top-level categories with their subcategory
// counts, filtered by type when the query names one.
func (s *Server) handleCategoryList(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.Categories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List categories failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	children := make(map[string]int)
	for _, c := range categories {
		if c.ParentID != "" {
			children[c.ParentID]++
		}
	}

	typeFilter := core.TransactionType(strings.TrimSpace(r.URL.Query().Get("type")))
	var top []categoryRow
	for _, c := range categories {
		if !c.IsTopLevel() {
			continue
		}
		if typeFilter != "" && c.Type != typeFilter {
			continue
		}
		top = append(top, categoryRow{Category: c, ChildCount: children[c.ID]})
	}

	s.render(w, r, "categories.html", categoryListView{Type: typeFilter, Categories: top})
}

type subcategoryListView struct {
	Parent        core.Category
	Subcategories []core.Category
}

func (s *Server) handleSubcategoryList(w http.ResponseWriter, r *http.Request) {
	parentID := r.PathValue("parentID")
	categories, err := s.store.Categories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List categories failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	view := subcategoryListView{}
	for _, c := range categories {
		switch {
		case c.ID == parentID:
			view.Parent = c
		case c.ParentID == parentID:
			view.Subcategories = append(view.Subcategories, c)
		}
	}
	if view.Parent.ID == "" {
		http.Redirect(w, r, "/categories", http.StatusSeeOther)
		return
	}

	s.render(w, r, "subcategories.html", view)
}

type categoryFormView struct {
	IsEdit   bool
	Category core.Category
	Parents  []core.Category
	Error    string
}

func (s *Server) handleCategoryForm(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.Categories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List categories failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	view := categoryFormView{
		Category: core.Category{
			Type:     core.Expense,
			ParentID: strings.TrimSpace(r.URL.Query().Get("parentId")),
		},
	}
	if id := r.PathValue("id"); id != "" {
		for _, c := range categories {
			if c.ID == id {
				view.IsEdit = true
				view.Category = c
				break
			}
		}
		if !view.IsEdit {
			http.Redirect(w, r, "/categories", http.StatusSeeOther)
			return
		}
	}
	for _, c := range categories {
		if c.IsTopLevel() {
			view.Parents = append(view.Parents, c)
		}
	}

	s.render(w, r, "category_form.html", view)
}

func (s *Server) handleCategorySave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	draft := core.Category{
		ID:       strings.TrimSpace(r.Form.Get("id")),
		Name:     sanitizeInput(r.Form.Get("name")),
		Icon:     sanitizeInput(r.Form.Get("icon")),
		Color:    sanitizeInput(r.Form.Get("color")),
		Type:     core.TransactionType(strings.TrimSpace(r.Form.Get("type"))),
		ParentID: strings.TrimSpace(r.Form.Get("parentId")),
	}

	saved, err := s.categories.Save(ctx, draft)
	if err != nil {
		if !errors.Is(err, services.ErrParentNotFound) {
			slog.WarnContext(ctx, "Category save rejected", "error", err)
		}
		view := categoryFormView{
			IsEdit:   draft.ID != "",
			Category: draft,
			Error:    err.Error(),
		}
		if categories, listErr := s.store.Categories(ctx); listErr == nil {
			for _, c := range categories {
				if c.IsTopLevel() {
					view.Parents = append(view.Parents, c)
				}
			}
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnprocessableEntity)
		s.render(w, r, "category_form.html", view)
		return
	}

	s.dashboardCache.Purge()
	if saved.ParentID != "" {
		http.Redirect(w, r, "/categories/"+saved.ParentID, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

func (s *Server) handleCategoryDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.categories.Delete(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Category delete failed", "error", err, "id", id)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.dashboardCache.Purge()
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}
