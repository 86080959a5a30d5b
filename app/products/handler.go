package products

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/mytheresa/catalog-api/app/api"
	"github.com/mytheresa/catalog-api/app/validation"
	"github.com/mytheresa/catalog-api/models"
	"github.com/shopspring/decimal"
)

const notFoundMessage = "Product not found"

type ProductResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	CategoryID  *uint     `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateProductInput is the body of POST /products.
type CreateProductInput struct {
	Name        string           `json:"name" validate:"required,max=255"`
	Description string           `json:"description" validate:"max=1000"`
	Price       *decimal.Decimal `json:"price" validate:"required,gte=0,lt=100000000"`
	Stock       int              `json:"stock" validate:"gte=0"`
	CategoryID  *uint            `json:"category_id" validate:"omitempty,gt=0"`
}

// UpdateProductInput is the body of PUT and PATCH /products/{id}. Absent fields
// are left untouched.
type UpdateProductInput struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,gte=0,lt=100000000"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
	CategoryID  *uint            `json:"category_id" validate:"omitempty,gt=0"`
}

func (in *CreateProductInput) roundPrice() {
	in.Price = roundCents(in.Price)
}

func (in *UpdateProductInput) roundPrice() {
	in.Price = roundCents(in.Price)
}

// roundCents rounds to the two decimals of the price column. Bounds are checked
// on the rounded value so that nothing outside decimal(10,2) is accepted.
func roundCents(price *decimal.Decimal) *decimal.Decimal {
	if price == nil {
		return nil
	}
	rounded := price.Round(2)
	return &rounded
}

type ProductStore interface {
	models.RecordStore[models.Product]
	ListFiltered(ctx context.Context, filters models.ProductFilters) ([]models.Product, error)
}

// CategoryFinder resolves the category a product points at.
type CategoryFinder interface {
	Find(ctx context.Context, id uint) (*models.Category, error)
}

type ProductHandler struct {
	repo       ProductStore
	categories CategoryFinder
}

func NewProductHandler(r ProductStore, categories CategoryFinder) *ProductHandler {
	return &ProductHandler{
		repo:       r,
		categories: categories,
	}
}

// HandleGetAll lists products, optionally filtered by ?category_id= and ?price_lt=.
// Filter values that do not parse are ignored.
func (h *ProductHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	var filters models.ProductFilters

	if cStr := r.URL.Query().Get("category_id"); cStr != "" {
		if c, err := strconv.ParseUint(cStr, 10, 0); err == nil {
			id := uint(c)
			filters.CategoryID = &id
		}
	}

	if priceStr := r.URL.Query().Get("price_lt"); priceStr != "" {
		if val, err := decimal.NewFromString(priceStr); err == nil {
			filters.PriceLessThan = &val
		}
	}

	res, err := h.repo.ListFiltered(r.Context(), filters)
	if err != nil {
		api.WriteServerError(w, r, "Failed to fetch products", err)
		return
	}

	products := make([]ProductResponse, len(res))
	for i := range res {
		products[i] = toResponse(&res[i])
	}

	api.WriteJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input CreateProductInput
	if err := decodeAndValidate(r, &input); err != nil {
		api.WriteRequestError(w, r, err)
		return
	}

	if !h.checkCategory(w, r, input.CategoryID) {
		return
	}

	product := &models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       *input.Price,
		Stock:       input.Stock,
		CategoryID:  input.CategoryID,
	}

	if err := h.repo.Create(r.Context(), product); err != nil {
		api.WriteServerError(w, r, "Failed to create product", err)
		return
	}

	api.WriteJSON(w, http.StatusCreated, toResponse(product))
}

func (h *ProductHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	product, ok := h.find(w, r)
	if !ok {
		return
	}

	api.WriteJSON(w, http.StatusOK, toResponse(product))
}

func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var input UpdateProductInput
	if err := decodeAndValidate(r, &input); err != nil {
		api.WriteRequestError(w, r, err)
		return
	}

	product, ok := h.find(w, r)
	if !ok {
		return
	}

	if !h.checkCategory(w, r, input.CategoryID) {
		return
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}

	if err := h.repo.Update(r.Context(), product); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			api.WriteError(w, r, http.StatusNotFound, notFoundMessage)
			return
		}
		api.WriteServerError(w, r, "Failed to update product", err)
		return
	}

	api.WriteJSON(w, http.StatusOK, toResponse(product))
}

func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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
		api.WriteServerError(w, r, "Failed to delete product", err)
		return
	}

	api.WriteMessage(w, http.StatusOK, "Product deleted successfully")
}

func (h *ProductHandler) find(w http.ResponseWriter, r *http.Request) (*models.Product, bool) {
	id, ok := api.PathID(r)
	if !ok {
		api.WriteError(w, r, http.StatusNotFound, notFoundMessage)
		return nil, false
	}

	product, err := h.repo.Find(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			api.WriteError(w, r, http.StatusNotFound, notFoundMessage)
			return nil, false
		}
		api.WriteServerError(w, r, "Failed to retrieve product", err)
		return nil, false
	}

	return product, true
}

// checkCategory answers 422 when id is set but names no category. A nil id is valid.
func (h *ProductHandler) checkCategory(w http.ResponseWriter, r *http.Request, id *uint) bool {
	if id == nil {
		return true
	}

	if _, err := h.categories.Find(r.Context(), *id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			api.WriteRequestError(w, r, validation.Field("category_id", "does not exist"))
			return false
		}
		api.WriteServerError(w, r, "Failed to retrieve category", err)
		return false
	}

	return true
}

type productInput interface {
	roundPrice()
}

func decodeAndValidate(r *http.Request, input productInput) error {
	if err := api.DecodeJSON(r, input); err != nil {
		return err
	}

	validation.TrimStrings(input)
	input.roundPrice()
	return validation.Struct(input)
}

func toResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
