package router

import (
	"astronaut-schedule/internal/http/handlers"
	"net/http"
)

// New wires the task routes. Middleware is applied in order, the first one outermost.
func New(handler *handlers.TaskHandler, middleware ...func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /tasks", handler.Create)
	mux.HandleFunc("GET /tasks", handler.List)
	mux.HandleFunc("GET /tasks/{description}", handler.Get)
	mux.HandleFunc("DELETE /tasks/{description}", handler.Delete)

	var h http.Handler = mux
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	return h
}
