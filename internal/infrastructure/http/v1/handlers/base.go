// Package handlers implements the HTTP endpoints.
package handlers

import (
	"github.com/gin-gonic/gin"

	"spottive/internal/core/apperror"
	"spottive/internal/core/id"
	"spottive/internal/domain"
	"spottive/internal/infrastructure/http/v1/dto"
)

// parseID reads a uuid route parameter, attaching a validation error
// on failure.
func parseID(c *gin.Context, param string) (id.ID, bool) {
	parsed, err := id.Parse(c.Param(param))
	if err != nil {
		fail(c, apperror.Validation("invalid id").WithDetail("param", param))
		return id.Nil, false
	}
	return parsed, true
}

// bindJSON binds the request body, attaching a validation error on
// failure.
func bindJSON[T any](c *gin.Context) (T, bool) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperror.Validation("invalid request body").WithDetail("cause", err.Error()))
		return req, false
	}
	return req, true
}

// listFilter converts the shared query string into a domain filter.
func listFilter(c *gin.Context) (domain.ListFilter, bool) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		fail(c, apperror.Validation("invalid query parameters").WithDetail("cause", err.Error()))
		return domain.ListFilter{}, false
	}
	return domain.ListFilter{
		Search:     query.Search,
		OrderBy:    query.OrderBy,
		Descending: query.Descending,
		Limit:      query.Limit,
		Offset:     query.Offset,
	}, true
}

// fail records the error for the error middleware and stops the chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
