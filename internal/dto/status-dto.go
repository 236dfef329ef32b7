package dto

// StatusDTO describes one lifecycle status for the UI: its graph
// successors and whether the current user may ever set it.
type StatusDTO struct {
	Code     string   `json:"code"`
	Terminal bool     `json:"terminal"`
	Next     []string `json:"next"`
	CanSet   bool     `json:"can_set"`
}

// NextStatusesDTO lists the transitions the current user may perform on
// a concrete order from its derived status.
type NextStatusesDTO struct {
	OrderID uint64   `json:"order_id"`
	From    string   `json:"from"`
	Next    []string `json:"next"`
}
