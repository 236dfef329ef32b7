package types

// Filter is the parsed list-query model shared by list endpoints:
// field filters, sort directions and pagination.
type Filter struct {
	Filter         map[string]interface{}
	Sort           map[string]string
	Limit          int
	Offset         int
	Page           int
	WithPagination bool
}

func DefaultFilter() Filter {
	return Filter{
		Filter:         map[string]interface{}{},
		Sort:           map[string]string{},
		Limit:          20,
		Offset:         0,
		Page:           1,
		WithPagination: true,
	}
}
