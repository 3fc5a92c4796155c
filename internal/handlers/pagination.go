package handlers

import (
	"math"
	"strconv"
)

// Upper bounds on client-supplied pagination. (page-1)*limit is handed
// to SetSkip as int64, so the product must stay well below overflow.
const (
	maxPage  = 1000000
	maxLimit = 1000
)

// parsePagination never fails: missing or degenerate values fall back
// to page 1 and the supplied default limit, and both values are capped
// so the skip offset cannot overflow negative.
func parsePagination(pageStr, limitStr string, defaultLimit int64) (int64, int64) {
	page := int64(1)
	limit := defaultLimit

	if p, err := strconv.ParseInt(pageStr, 10, 64); err == nil && p >= 1 {
		page = p
		if page > maxPage {
			page = maxPage
		}
	}
	if l, err := strconv.ParseInt(limitStr, 10, 64); err == nil && l >= 1 {
		limit = l
		if limit > maxLimit {
			limit = maxLimit
		}
	}

	return page, limit
}

func totalPages(total, limit int64) int64 {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int64(math.Ceil(float64(total) / float64(limit)))
}
