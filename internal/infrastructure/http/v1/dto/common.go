// Package dto defines the request and response shapes of the HTTP API.
package dto

// ListResponse is the envelope for paged collections.
type ListResponse[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	Limit      int `json:"limit"`
	Offset     int `json:"offset"`
}

// IDResponse returns the id of a newly created resource.
type IDResponse struct {
	ID string `json:"id"`
}

// ListQuery is the shared query string for collection endpoints.
type ListQuery struct {
	Search     string `form:"search"`
	OrderBy    string `form:"orderBy"`
	Descending bool   `form:"desc"`
	Limit      int    `form:"limit"`
	Offset     int    `form:"offset"`
}
