package utils

import (
	"net/url"
	"strconv"
	"strings"

	"procurement-system/pkg/types"
)

// ParseFilterFromQuery builds a list Filter from URL query parameters.
//
// Supported shapes: filter[field]=value, sort[field]=asc|desc,
// limit, offset, page. Unknown parameters are ignored; repositories
// whitelist field names before touching SQL.
func ParseFilterFromQuery(values url.Values) types.Filter {
	filter := types.DefaultFilter()

	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		val := vals[0]

		switch {
		case strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]"):
			field := key[len("filter[") : len(key)-1]
			filter.Filter[field] = val
		case strings.HasPrefix(key, "sort[") && strings.HasSuffix(key, "]"):
			field := key[len("sort[") : len(key)-1]
			filter.Sort[field] = val
		case key == "limit":
			if n, err := strconv.Atoi(val); err == nil && n > 0 {
				filter.Limit = n
			}
		case key == "offset":
			if n, err := strconv.Atoi(val); err == nil && n >= 0 {
				filter.Offset = n
			}
		case key == "page":
			if n, err := strconv.Atoi(val); err == nil && n > 0 {
				filter.Page = n
			}
		}
	}

	// page wins over a raw offset once limit is known
	if filter.Page > 1 {
		filter.Offset = (filter.Page - 1) * filter.Limit
	}

	return filter
}
