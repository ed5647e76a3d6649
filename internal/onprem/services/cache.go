package services

import (
	"strings"

	"nathanbeddoewebdev/dcm/internal/util"
)

// cacheKey joins the scope (customer UUID) and parts into a cache key.
func cacheKey(scope string, parts ...string) string {
	values := make([]string, 0, len(parts)+2)
	values = append(values, "onprem")
	if scope = util.NormalizeKey(scope); scope != "" {
		values = append(values, scope)
	}
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		values = append(values, util.NormalizeKey(part))
	}
	return strings.Join(values, "_")
}
