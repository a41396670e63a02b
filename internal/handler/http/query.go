package http

import (
	"net/http"
	"strconv"
)

// parseListQuery reads the shared pagination and sorting query parameters.
func parseListQuery(r *http.Request) (skip int, limit int, sortBy string, sortOrder string) {
	q := r.URL.Query()

	if v, err := strconv.Atoi(q.Get("skip")); err == nil && v > 0 {
		skip = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		limit = v
	}

	return skip, limit, q.Get("sortBy"), q.Get("sortOrder")
}
