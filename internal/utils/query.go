package utils

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryInt safely parses an integer from query parameters.
// If missing or invalid, returns the provided default.
func QueryInt(q url.Values, key string, def int) int {
	v := q.Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// ParseSort splits a "column:direction" query value, e.g. "createdAt:desc".
// Missing or malformed input falls back to the given defaults.
func ParseSort(v, defCol, defDir string) (col, dir string) {
	col, dir = defCol, defDir
	v = strings.TrimSpace(v)
	if v == "" {
		return col, dir
	}
	parts := strings.SplitN(v, ":", 2)
	if parts[0] != "" {
		col = parts[0]
	}
	if len(parts) == 2 {
		switch strings.ToLower(parts[1]) {
		case "asc", "desc":
			dir = strings.ToLower(parts[1])
		}
	}
	return col, dir
}
