package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the roster frontend to call the API from another origin.
// Credentials are allowed because clients send the session token header.
var CORS = func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Trace-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})(next)
}
