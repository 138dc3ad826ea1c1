package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/72tommy72/HRMate/internal/middleware"
	"github.com/72tommy72/HRMate/internal/model"
	"github.com/72tommy72/HRMate/internal/service"
)

type CategoryHandler struct {
	categories *service.CategoryService
}

func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{categoryID}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager))
		r.Post("/", h.Create)
		r.Put("/{categoryID}", h.Update)
		r.Delete("/{categoryID}", h.Delete)
	})

	return r
}

// GET /categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	var categoryType *model.CategoryType
	if value := r.URL.Query().Get("type"); value != "" {
		t := model.CategoryType(value)
		categoryType = &t
	}
	activeOnly := r.URL.Query().Get("active") == "true"

	categories, err := h.categories.ListCategories(r.Context(), categoryType, activeOnly)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

// GET /categories/{categoryID}
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.categories.GetCategory(r.Context(), chi.URLParam(r, "categoryID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, category)
}

type createCategoryRequest struct {
	Name          string             `json:"name"`
	NameEn        *string            `json:"nameEn,omitempty"`
	Type          model.CategoryType `json:"type"`
	Description   *string            `json:"description,omitempty"`
	Color         *string            `json:"color,omitempty"`
	ParentID      *string            `json:"parentId,omitempty"`
	Subcategories *json.RawMessage   `json:"subcategories,omitempty"`
	BudgetLimit   *float64           `json:"budgetLimit,omitempty"`
	SortOrder     *int               `json:"sortOrder,omitempty"`
}

// POST /categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	actor := middleware.GetUser(r.Context())
	category, err := h.categories.CreateCategory(r.Context(), model.CreateCategoryParams{
		Name:          req.Name,
		NameEn:        req.NameEn,
		Type:          req.Type,
		Description:   req.Description,
		Color:         req.Color,
		ParentID:      req.ParentID,
		Subcategories: req.Subcategories,
		BudgetLimit:   req.BudgetLimit,
		SortOrder:     req.SortOrder,
		CreatedBy:     actor.ID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, category)
}

type updateCategoryRequest struct {
	Name          *string          `json:"name,omitempty"`
	NameEn        *string          `json:"nameEn,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Color         *string          `json:"color,omitempty"`
	Subcategories *json.RawMessage `json:"subcategories,omitempty"`
	BudgetLimit   *float64         `json:"budgetLimit,omitempty"`
	IsActive      *bool            `json:"isActive,omitempty"`
	SortOrder     *int             `json:"sortOrder,omitempty"`
}

// PUT /categories/{categoryID}
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	actor := middleware.GetUser(r.Context())
	category, err := h.categories.UpdateCategory(r.Context(), chi.URLParam(r, "categoryID"), model.UpdateCategoryParams{
		Name:          req.Name,
		NameEn:        req.NameEn,
		Description:   req.Description,
		Color:         req.Color,
		Subcategories: req.Subcategories,
		BudgetLimit:   req.BudgetLimit,
		IsActive:      req.IsActive,
		SortOrder:     req.SortOrder,
		UpdatedBy:     actor.ID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, category)
}

// DELETE /categories/{categoryID}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.DeleteCategory(r.Context(), chi.URLParam(r, "categoryID")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
