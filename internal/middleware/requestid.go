package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func chiRequestID(r *http.Request) string {
	return chimw.GetReqID(r.Context())
}
