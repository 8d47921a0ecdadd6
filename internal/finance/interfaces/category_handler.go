package interfaces

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"wealthtracker/internal/finance/domain"
	financeErrors "wealthtracker/internal/finance/errors"
)

type CategoryServiceInterface interface {
	CreateCategory(ctx context.Context, category *domain.Category) error
	UpdateCategory(ctx context.Context, category *domain.Category) error
	GetAllCategories(ctx context.Context, userID string) ([]domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID uuid.UUID, userID string) error
	CreateSubCategory(ctx context.Context, subCategory *domain.SubCategory) error
	GetAllSubCategories(ctx context.Context, userID string) ([]domain.SubCategory, error)
	DeleteSubCategory(ctx context.Context, subCategoryID uuid.UUID, userID string) error
	CreateLocation(ctx context.Context, location *domain.Location) error
	GetAllLocations(ctx context.Context, userID string) ([]domain.Location, error)
	DeleteLocation(ctx context.Context, locationID uuid.UUID, userID string) error
}

type CategoryHandler struct {
	service      CategoryServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewCategoryHandler(
	service CategoryServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *CategoryHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &CategoryHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var category domain.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	category.UserID = userID
	if err := h.service.CreateCategory(r.Context(), &category); err != nil {
		if financeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Error during category creation: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Category successfully created.",
		"data":    category,
	})
}

func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	categories, err := h.service.GetAllCategories(r.Context(), userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   categories,
	})
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	categoryID, err := uuid.Parse(r.PathValue("categoryID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}
	var category domain.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	category.ID = categoryID
	category.UserID = userID
	if err := h.service.UpdateCategory(r.Context(), &category); err != nil {
		switch {
		case financeErrors.IsValidationError(err):
			h.respondError(w, http.StatusBadRequest, err.Error())
		case err == financeErrors.ErrCategoryNotFound:
			h.respondError(w, http.StatusNotFound, err.Error())
		default:
			h.respondError(w, http.StatusInternalServerError, "Failed to update category")
		}
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   category,
	})
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	categoryID, err := uuid.Parse(r.PathValue("categoryID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}
	if err := h.service.DeleteCategory(r.Context(), categoryID, userID); err != nil {
		switch {
		case financeErrors.IsValidationError(err):
			h.respondError(w, http.StatusConflict, err.Error())
		case err == financeErrors.ErrCategoryNotFound:
			h.respondError(w, http.StatusNotFound, err.Error())
		default:
			h.respondError(w, http.StatusInternalServerError, "Failed to delete category")
		}
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Category successfully deleted.",
	})
}

func (h *CategoryHandler) CreateSubCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var subCategory domain.SubCategory
	if err := json.NewDecoder(r.Body).Decode(&subCategory); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	subCategory.UserID = userID
	if err := h.service.CreateSubCategory(r.Context(), &subCategory); err != nil {
		switch {
		case financeErrors.IsValidationError(err):
			h.respondError(w, http.StatusBadRequest, err.Error())
		case err == financeErrors.ErrCategoryNotFound:
			h.respondError(w, http.StatusNotFound, err.Error())
		default:
			h.respondError(w, http.StatusInternalServerError, "Failed to create subcategory")
		}
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"data":   subCategory,
	})
}

func (h *CategoryHandler) GetSubCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	subCategories, err := h.service.GetAllSubCategories(r.Context(), userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve subcategories")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   subCategories,
	})
}

func (h *CategoryHandler) DeleteSubCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	subCategoryID, err := uuid.Parse(r.PathValue("subCategoryID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid subcategory ID")
		return
	}
	if err := h.service.DeleteSubCategory(r.Context(), subCategoryID, userID); err != nil {
		switch {
		case financeErrors.IsValidationError(err):
			h.respondError(w, http.StatusConflict, err.Error())
		case err == financeErrors.ErrSubCategoryNotFound:
			h.respondError(w, http.StatusNotFound, err.Error())
		default:
			h.respondError(w, http.StatusInternalServerError, "Failed to delete subcategory")
		}
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Subcategory successfully deleted.",
	})
}

func (h *CategoryHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var location domain.Location
	if err := json.NewDecoder(r.Body).Decode(&location); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	location.UserID = userID
	if err := h.service.CreateLocation(r.Context(), &location); err != nil {
		if financeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to create location")
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"data":   location,
	})
}

func (h *CategoryHandler) GetLocations(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	locations, err := h.service.GetAllLocations(r.Context(), userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve locations")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   locations,
	})
}

func (h *CategoryHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	locationID, err := uuid.Parse(r.PathValue("locationID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid location ID")
		return
	}
	if err := h.service.DeleteLocation(r.Context(), locationID, userID); err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to delete location")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Location successfully deleted.",
	})
}
