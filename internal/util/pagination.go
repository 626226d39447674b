package util

import "strconv"

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// LimitSkip clamps the raw limit/skip query params to sane values.
func LimitSkip(limitParam, skipParam string) (limit, skip int) {
	limit = ParseIntDefault(limitParam, DefaultLimit)
	skip = ParseIntDefault(skipParam, 0)

	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	if skip < 0 {
		skip = 0
	}
	return limit, skip
}

// Calculate converts page/size params into an offset window.
func Calculate(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > MaxLimit {
		size = DefaultLimit
	}
	from = (page - 1) * size
	return from, size
}
