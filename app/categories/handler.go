package categories

import (
	"errors"
	"net/http"
	"time"

	"github.com/mytheresa/catalog-api/app/api"
	"github.com/mytheresa/catalog-api/app/validation"
	"github.com/mytheresa/catalog-api/models"
)

const notFoundMessage = "Category not found"

type CategoryResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryInput is the body accepted by create and update.
type CategoryInput struct {
	Name string `json:"name" validate:"required,max=255"`
}

type CategoryHandler struct {
	repo models.RecordStore[models.Category]
}

func NewCategoryHandler(r models.RecordStore[models.Category]) *CategoryHandler {
	return &CategoryHandler{repo: r}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.List(r.Context())
	if err != nil {
		api.WriteServerError(w, r, "Failed to fetch categories", err)
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i := range categories {
		response[i] = toResponse(&categories[i])
	}

	api.WriteJSON(w, http.StatusOK, response)
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	input, err := decodeInput(r)
	if err != nil {
		api.WriteRequestError(w, r, err)
		return
	}

	category := &models.Category{Name: input.Name}
	if err := h.repo.Create(r.Context(), category); err != nil {
		api.WriteServerError(w, r, "Failed to create category", err)
		return
	}

	api.WriteJSON(w, http.StatusCreated, toResponse(category))
}

func (h *CategoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	category, ok := h.find(w, r)
	if !ok {
		return
	}

	api.WriteJSON(w, http.StatusOK, toResponse(category))
}

// HandleUpdate replaces the name of an existing category. The body is validated
// before the lookup, as a create would be.
func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	input, err := decodeInput(r)
	if err != nil {
		api.WriteRequestError(w, r, err)
		return
	}

	category, ok := h.find(w, r)
	if !ok {
		return
	}

	category.Name = input.Name
	if err := h.repo.Update(r.Context(), category); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			api.WriteError(w, r, http.StatusNotFound, notFoundMessage)
			return
		}
		api.WriteServerError(w, r, "Failed to update category", err)
		return
	}

	api.WriteJSON(w, http.StatusOK, toResponse(category))
}

func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r)
	if !ok {
		api.WriteError(w, r, http.StatusNotFound, notFoundMessage)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			api.WriteError(w, r, http.StatusNotFound, notFoundMessage)
			return
		}
		api.WriteServerError(w, r, "Failed to delete category", err)
		return
	}

	api.WriteMessage(w, http.StatusOK, "Category deleted successfully")
}

// find loads the category named by the {id} path parameter and answers 404 or
// 500 itself when that is not possible.
func (h *CategoryHandler) find(w http.ResponseWriter, r *http.Request) (*models.Category, bool) {
	id, ok := api.PathID(r)
	if !ok {
		api.WriteError(w, r, http.StatusNotFound, notFoundMessage)
		return nil, false
	}

	category, err := h.repo.Find(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			api.WriteError(w, r, http.StatusNotFound, notFoundMessage)
			return nil, false
		}
		api.WriteServerError(w, r, "Failed to retrieve category", err)
		return nil, false
	}

	return category, true
}

func decodeInput(r *http.Request) (CategoryInput, error) {
	var input CategoryInput
	if err := api.DecodeJSON(r, &input); err != nil {
		return input, err
	}

	validation.TrimStrings(&input)
	if err := validation.Struct(input); err != nil {
		return input, err
	}

	return input, nil
}

func toResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
