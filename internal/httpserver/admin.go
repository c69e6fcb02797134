package httpserver

import (
	"log"
	"net/http"

	"boomstore/internal/domain"
	"boomstore/internal/service/admin"

	"github.com/gin-gonic/gin"
)

func adminListProductsHandler(logger *log.Logger, svc AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.ListProducts(c.Request.Context())
		if err != nil {
			internalError(c, logger, err)
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, products)
	}
}

func adminCreateProductHandler(logger *log.Logger, svc AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in admin.ProductInput
		if err := c.ShouldBindJSON(&in); err != nil {
			errorResponse(c, http.StatusBadRequest, "invalid request body")
			return
		}
		product, err := svc.CreateProduct(c.Request.Context(), in)
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

func adminUpdateProductHandler(logger *log.Logger, svc AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in admin.ProductInput
		if err := c.ShouldBindJSON(&in); err != nil {
			errorResponse(c, http.StatusBadRequest, "invalid request body")
			return
		}
		product, err := svc.UpdateProduct(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func adminDeleteProductHandler(logger *log.Logger, svc AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
			writeServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}

func adminListOrdersHandler(logger *log.Logger, svc AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListOrders(c.Request.Context())
		if err != nil {
			internalError(c, logger, err)
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

type updateOrderRequest struct {
	Status string `json:"status" binding:"required"`
}

func adminUpdateOrderHandler(logger *log.Logger, svc AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, http.StatusBadRequest, "status required")
			return
		}
		order, err := svc.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func adminListUsersHandler(logger *log.Logger, svc AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := svc.ListUsers(c.Request.Context())
		if err != nil {
			internalError(c, logger, err)
			return
		}
		if users == nil {
			users = []domain.User{}
		}
		c.JSON(http.StatusOK, users)
	}
}

type updateUserRequest struct {
	Role string `json:"role" binding:"required"`
}

func adminUpdateUserHandler(logger *log.Logger, svc AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, http.StatusBadRequest, "role required")
			return
		}
		actor := currentUser(c)
		if actor == nil {
			errorResponse(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		user, err := svc.UpdateUserRole(c.Request.Context(), actor.ID, c.Param("id"), req.Role)
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

func adminGetSettingsHandler(logger *log.Logger, svc AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := svc.GetSettings(c.Request.Context())
		if err != nil {
			internalError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

func adminUpdateSettingsHandler(logger *log.Logger, svc AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in domain.Settings
		if err := c.ShouldBindJSON(&in); err != nil {
			errorResponse(c, http.StatusBadRequest, "invalid request body")
			return
		}
		settings, err := svc.UpdateSettings(c.Request.Context(), in)
		if err != nil {
			writeServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

func adminAnalyticsHandler(logger *log.Logger, svc AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		analytics, err := svc.GetAnalytics(c.Request.Context(), c.DefaultQuery("range", "30d"))
		if err != nil {
			internalError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, analytics)
	}
}
