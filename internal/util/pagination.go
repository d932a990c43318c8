package util

import "strconv"

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// Calculate turns 1-based page/size into an offset and a clamped limit.
func Calculate(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return (page - 1) * size, size
}

func AtoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
