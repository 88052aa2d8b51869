package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
)

// CORS allows the browser client at origin to call the API with a bearer
// token. "*" or an empty origin allows any origin.
func CORS(origin string) func(http.Handler) http.Handler {
	origins := []string{"*"}
	if origin != "" && origin != "*" {
		origins = strings.Split(origin, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
	}

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         600,
	})
	return c.Handler
}
