package users

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mytheresa/catalog-api/app/api"
	"github.com/mytheresa/catalog-api/app/validation"
	"github.com/mytheresa/catalog-api/models"
	"golang.org/x/crypto/bcrypt"
)

const notFoundMessage = "User not found"

// UserResponse never carries the password hash.
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateUserInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,maxbytes=72" trim:"-"`
}

// UpdateUserInput is the body of PUT and PATCH /users/{id}. Absent fields are
// left untouched.
type UpdateUserInput struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=8,maxbytes=72" trim:"-"`
}

// PasswordHasher turns a plain password into the value stored in users.password.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// BcryptHasher implements PasswordHasher using bcrypt.
type BcryptHasher struct {
	Cost int
}

func (b BcryptHasher) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

type UserHandler struct {
	repo   models.RecordStore[models.User]
	hasher PasswordHasher
}

func NewUserHandler(r models.RecordStore[models.User], hasher PasswordHasher) *UserHandler {
	return &UserHandler{
		repo:   r,
		hasher: hasher,
	}
}

func (h *UserHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.repo.List(r.Context())
	if err != nil {
		api.WriteServerError(w, r, "Failed to fetch users", err)
		return
	}

	response := make([]UserResponse, len(users))
	for i := range users {
		response[i] = toResponse(&users[i])
	}

	api.WriteJSON(w, http.StatusOK, response)
}

func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input CreateUserInput
	if err := decodeAndValidate(r, &input); err != nil {
		api.WriteRequestError(w, r, err)
		return
	}

	hash, err := h.hasher.Hash(input.Password)
	if err != nil {
		api.WriteServerError(w, r, "Failed to create user", err)
		return
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hash,
	}

	if err := h.repo.Create(r.Context(), user); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			api.WriteRequestError(w, r, emailTaken())
			return
		}
		api.WriteServerError(w, r, "Failed to create user", err)
		return
	}

	api.WriteJSON(w, http.StatusCreated, toResponse(user))
}

func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := h.find(w, r)
	if !ok {
		return
	}

	api.WriteJSON(w, http.StatusOK, toResponse(user))
}

func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var input UpdateUserInput
	if err := decodeAndValidate(r, &input); err != nil {
		api.WriteRequestError(w, r, err)
		return
	}

	user, ok := h.find(w, r)
	if !ok {
		return
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Password != nil {
		hash, err := h.hasher.Hash(*input.Password)
		if err != nil {
			api.WriteServerError(w, r, "Failed to update user", err)
			return
		}
		user.Password = hash
	}

	if err := h.repo.Update(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			api.WriteError(w, r, http.StatusNotFound, notFoundMessage)
		case errors.Is(err, models.ErrDuplicate):
			api.WriteRequestError(w, r, emailTaken())
		default:
			api.WriteServerError(w, r, "Failed to update user", err)
		}
		return
	}

	api.WriteJSON(w, http.StatusOK, toResponse(user))
}

func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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
		api.WriteServerError(w, r, "Failed to delete user", err)
		return
	}

	api.WriteMessage(w, http.StatusOK, "User deleted successfully")
}

func (h *UserHandler) find(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	id, ok := api.PathID(r)
	if !ok {
		api.WriteError(w, r, http.StatusNotFound, notFoundMessage)
		return nil, false
	}

	user, err := h.repo.Find(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			api.WriteError(w, r, http.StatusNotFound, notFoundMessage)
			return nil, false
		}
		api.WriteServerError(w, r, "Failed to retrieve user", err)
		return nil, false
	}

	return user, true
}

func emailTaken() error {
	return validation.Field("email", "has already been taken")
}

func decodeAndValidate(r *http.Request, input any) error {
	if err := api.DecodeJSON(r, input); err != nil {
		return err
	}

	validation.TrimStrings(input)
	return validation.Struct(input)
}

func toResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
