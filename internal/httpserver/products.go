package httpserver

import (
	"errors"
	"log"
	"net/http"

	"boomstore/internal/domain"
	"boomstore/internal/service/catalog"

	"github.com/gin-gonic/gin"
)

func listProductsHandler(logger *log.Logger, svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := catalog.Params{
			Page:      c.Query("page"),
			Limit:     c.Query("limit"),
			Category:  c.Query("category"),
			Search:    c.Query("search"),
			SortBy:    c.Query("sortBy"),
			SortOrder: c.Query("sortOrder"),
			Featured:  c.Query("featured"),
		}

		products, pagination, err := svc.List(c.Request.Context(), params)
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"products":   products,
			"pagination": pagination,
		})
	}
}

func getProductHandler(logger *log.Logger, svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				errorResponse(c, http.StatusNotFound, "product not found")
				return
			}
			internalError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}

func listCategoriesHandler(logger *log.Logger, svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := svc.Categories(c.Request.Context())
		if err != nil {
			internalError(c, logger, err)
			return
		}
		if categories == nil {
			categories = []domain.Category{}
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}
