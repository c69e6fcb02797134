package httpserver

import (
	"errors"
	"log"
	"net/http"

	"boomstore/internal/domain"
	"boomstore/internal/service/admin"
	"boomstore/internal/service/catalog"

	"github.com/gin-gonic/gin"
)

func errorResponse(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func internalError(c *gin.Context, logger *log.Logger, err error) {
	logger.Printf("http: %s %s error=%v", c.Request.Method, c.Request.URL.Path, err)
	errorResponse(c, http.StatusInternalServerError, "internal server error")
}

// writeServiceError maps service-layer failures onto the API error
// taxonomy: 404 for missing entities, 400 for validation and conflict
// errors, 500 (logged, generic body) for everything else.
func writeServiceError(c *gin.Context, logger *log.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		errorResponse(c, http.StatusNotFound, "not found")
	case errors.Is(err, admin.ErrMissingFields),
		errors.Is(err, admin.ErrSKUExists),
		errors.Is(err, admin.ErrProductReferenced),
		errors.Is(err, admin.ErrCategoryNotFound),
		errors.Is(err, admin.ErrInvalidStatus),
		errors.Is(err, admin.ErrInvalidRole),
		errors.Is(err, admin.ErrSelfDemotion),
		errors.Is(err, admin.ErrInvalidEmail),
		errors.Is(err, admin.ErrInvalidTaxRate),
		errors.Is(err, domain.ErrConflict):
		errorResponse(c, http.StatusBadRequest, err.Error())
	default:
		var vErr *catalog.ValidationError
		if errors.As(err, &vErr) {
			errorResponse(c, http.StatusBadRequest, vErr.Error())
			return
		}
		internalError(c, logger, err)
	}
}
