// Package utils provides small helpers shared by the HTTP layer that carry
// no domain logic.
package utils

import (
	"math"
	"strconv"
)

// Paging bounds applied to list endpoints.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage keeps (page-1)*MaxPageSize inside an int32 offset.
	MaxPage = math.MaxInt32 / MaxPageSize
)

// AtoiDefault parses s as a decimal int, returning def when s is empty or
// not a valid integer. Surrounding whitespace is not trimmed.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// ClampPage parses the raw page and page_size query values and bounds them:
// 1 <= page <= MaxPage and 1 <= pageSize <= MaxPageSize. Missing or
// malformed values take the defaults.
func ClampPage(rawPage, rawPageSize string) (page, pageSize int) {
	page = min(max(AtoiDefault(rawPage, DefaultPage), 1), MaxPage)
	pageSize = min(max(AtoiDefault(rawPageSize, DefaultPageSize), 1), MaxPageSize)
	return page, pageSize
}
