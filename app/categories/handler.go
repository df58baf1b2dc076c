package categories

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/mytheresa/category-admin/models"
	"go.uber.org/zap"
)

type CategoryProvider interface {
	GetAllCategories() ([]models.Category, error)
	GetCategory(id uint) (*models.Category, error)
	CreateCategory(category *models.Category) error
	UpdateCategory(category *models.Category) error
	DeleteCategory(id uint) error
}

type CategoryHandler struct {
	repo CategoryProvider
	log  *zap.Logger
}

func NewCategoryHandler(r CategoryProvider, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{repo: r, log: log}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetAllCategories()
	if err != nil {
		h.log.Error("list categories", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to fetch categories")
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	category, err := h.repo.GetCategory(id)
	if errors.Is(err, models.ErrCategoryNotFound) {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	} else if err != nil {
		h.log.Error("get category", zap.Uint("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to retrieve category")
		return
	}

	writeJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	category, ok := decodeCategory(w, r)
	if !ok {
		return
	}

	if err := h.repo.CreateCategory(category); err != nil {
		h.log.Error("create category", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	writeJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	category, ok := decodeCategory(w, r)
	if !ok {
		return
	}
	// The path is authoritative for the record's identity.
	category.ID = &id

	err := h.repo.UpdateCategory(category)
	if errors.Is(err, models.ErrCategoryNotFound) {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	} else if err != nil {
		h.log.Error("update category", zap.Uint("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to update category")
		return
	}

	writeJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.repo.DeleteCategory(id)
	if errors.Is(err, models.ErrCategoryNotFound) {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	} else if err != nil {
		h.log.Error("delete category", zap.Uint("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category id")
		return 0, false
	}
	return uint(id), true
}

// decodeCategory reads and validates the request body. Validation failures
// are answered with 422 and an "errors" array.
func decodeCategory(w http.ResponseWriter, r *http.Request) (*models.Category, bool) {
	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return nil, false
	}

	if err := models.Validate.Struct(category); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string][]string{
			"errors": models.ValidationMessages(err),
		})
		return nil, false
	}
	return &category, true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
