package routes

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/sitehub/internal/httpserver/deps"
)

type (
	// Registrar mounts one group of routes.
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

var registrars = map[string]Registrar{}

// Register adds a named route group, usually from an init function.
func Register(name string, reg Registrar) {
	if _, dup := registrars[name]; dup {
		panic("routes: duplicate route group " + name)
	}
	registrars[name] = reg
}

// RegisterAll mounts every group in name order and returns the names.
// Called once from httpserver.NewRouter.
func RegisterAll(r chi.Router, d deps.Deps) []string {
	names := make([]string, 0, len(registrars))
	for name := range registrars {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		registrars[name](r, d)
	}
	return names
}
