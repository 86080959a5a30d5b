// Package routes maps HTTP verbs and paths onto the resource handlers.
package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mytheresa/catalog-api/app/api"
	"github.com/mytheresa/catalog-api/app/categories"
	"github.com/mytheresa/catalog-api/app/products"
	"github.com/mytheresa/catalog-api/app/users"
)

// Route binds one method and chi pattern to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Handlers groups everything the route table points at.
type Handlers struct {
	Categories  *categories.CategoryHandler
	Products    *products.ProductHandler
	Users       *users.UserHandler
	Diagnostics *Diagnostics
}

type resourceHandler interface {
	HandleGetAll(w http.ResponseWriter, r *http.Request)
	HandleCreate(w http.ResponseWriter, r *http.Request)
	HandleGet(w http.ResponseWriter, r *http.Request)
	HandleUpdate(w http.ResponseWriter, r *http.Request)
	HandleDelete(w http.ResponseWriter, r *http.Request)
}

// Resources lists the collections served under /<name>.
var Resources = []string{"categories", "products", "users"}

// Table returns every route of the API in registration order.
func Table(h Handlers) []Route {
	routes := []Route{
		{Method: http.MethodGet, Pattern: "/test", Handler: h.Diagnostics.HandleTest},
		{Method: http.MethodGet, Pattern: "/info", Handler: h.Diagnostics.HandleInfo},
	}

	routes = append(routes, resource("categories", h.Categories)...)
	routes = append(routes, resource("products", h.Products)...)
	routes = append(routes, resource("users", h.Users)...)

	return routes
}

func resource(name string, h resourceHandler) []Route {
	collection := "/" + name
	member := collection + "/{id}"

	return []Route{
		{Method: http.MethodGet, Pattern: collection, Handler: h.HandleGetAll},
		{Method: http.MethodPost, Pattern: collection, Handler: h.HandleCreate},
		{Method: http.MethodGet, Pattern: member, Handler: h.HandleGet},
		{Method: http.MethodPut, Pattern: member, Handler: h.HandleUpdate},
		{Method: http.MethodPatch, Pattern: member, Handler: h.HandleUpdate},
		{Method: http.MethodDelete, Pattern: member, Handler: h.HandleDelete},
	}
}

// New builds the chi router serving Table(h).
func New(h Handlers, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)

	for _, route := range Table(h) {
		r.Method(route.Method, route.Pattern, route.Handler)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.WriteError(w, r, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.WriteError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
