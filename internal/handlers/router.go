package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter wires the gateway routes, middleware and the CORS policy that
// lets only allowedOrigin call the gateway from a browser.
func NewRouter(logger *slog.Logger, httpHandler *HTTPHandler, allowedOrigin string) http.Handler {
	router := mux.NewRouter()
	router.Use(RequestID, Recovery(logger), Logger(logger))

	httpHandler.RegisterRoutes(router)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{allowedOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	})

	return c.Handler(router)
}
