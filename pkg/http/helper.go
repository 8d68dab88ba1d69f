package http

import (
	"net/http"
	"strconv"

	"fastfix/pkg/config"
	apperrors "fastfix/pkg/errors"
)

func ExtractLimitOffset(r *http.Request) (int, int64, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	var offset int64 = 0
	if s := query.Get("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = int64(v)
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	return limit, offset, nil
}

// ExtractOrder reads the optional order parameter; listings are stored in
// creation order and "desc" asks for most recent first.
func ExtractOrder(r *http.Request) (string, error) {
	order := r.URL.Query().Get("order")
	switch order {
	case "", "asc":
		return "asc", nil
	case "desc":
		return "desc", nil
	}
	return "", apperrors.InvalidInput("invalid order parameter: " + order)
}
