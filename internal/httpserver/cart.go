package httpserver

import (
	"log"
	"net/http"

	"boomstore/internal/cartstore"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// cartSessionHeader carries the opaque cart session id. The server
// mints one on first contact and echoes it on every response.
const cartSessionHeader = "X-Cart-Session"

type cartView struct {
	SessionID       string           `json:"sessionId"`
	Items           []cartstore.Item `json:"items"`
	TotalItems      int              `json:"totalItems"`
	TotalPriceCents int64            `json:"totalPriceCents"`
	IsOpen          bool             `json:"isOpen"`
}

func cartSession(c *gin.Context) string {
	if id := c.GetHeader(cartSessionHeader); id != "" {
		return id
	}
	return uuid.NewString()
}

func renderCart(c *gin.Context, sessionID string, cart *cartstore.Cart, status int) {
	c.Header(cartSessionHeader, sessionID)
	c.JSON(status, cartView{
		SessionID:       sessionID,
		Items:           cart.Items(),
		TotalItems:      cart.TotalItems(),
		TotalPriceCents: cart.TotalPriceCents(),
		IsOpen:          cart.IsOpen(),
	})
}

func getCartHandler(logger *log.Logger, storage cartstore.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := cartSession(c)
		cart, err := cartstore.Load(c.Request.Context(), storage, sessionID)
		if err != nil {
			internalError(c, logger, err)
			return
		}
		renderCart(c, sessionID, cart, http.StatusOK)
	}
}

type addCartItemRequest struct {
	ID          string `json:"id"`
	ProductID   string `json:"productId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	PriceCents  int64  `json:"priceCents"`
	Image       string `json:"image"`
	Stock       int    `json:"stock"`
	MaxQuantity int    `json:"maxQuantity"`
}

func addCartItemHandler(logger *log.Logger, storage cartstore.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, http.StatusBadRequest, "productId and name required")
			return
		}
		if req.ID == "" {
			req.ID = uuid.NewString()
		}
		if req.MaxQuantity <= 0 {
			req.MaxQuantity = req.Stock
		}

		sessionID := cartSession(c)
		cart, err := cartstore.Load(c.Request.Context(), storage, sessionID)
		if err != nil {
			internalError(c, logger, err)
			return
		}
		if err := cart.AddItem(c.Request.Context(), cartstore.Item{
			ID:          req.ID,
			ProductID:   req.ProductID,
			Name:        req.Name,
			Slug:        req.Slug,
			PriceCents:  req.PriceCents,
			Image:       req.Image,
			Stock:       req.Stock,
			MaxQuantity: req.MaxQuantity,
		}); err != nil {
			internalError(c, logger, err)
			return
		}
		renderCart(c, sessionID, cart, http.StatusOK)
	}
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func updateCartItemHandler(logger *log.Logger, storage cartstore.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, http.StatusBadRequest, "quantity required")
			return
		}

		sessionID := cartSession(c)
		cart, err := cartstore.Load(c.Request.Context(), storage, sessionID)
		if err != nil {
			internalError(c, logger, err)
			return
		}
		if err := cart.UpdateQuantity(c.Request.Context(), c.Param("productId"), *req.Quantity); err != nil {
			internalError(c, logger, err)
			return
		}
		renderCart(c, sessionID, cart, http.StatusOK)
	}
}

func removeCartItemHandler(logger *log.Logger, storage cartstore.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := cartSession(c)
		cart, err := cartstore.Load(c.Request.Context(), storage, sessionID)
		if err != nil {
			internalError(c, logger, err)
			return
		}
		if err := cart.RemoveItem(c.Request.Context(), c.Param("productId")); err != nil {
			internalError(c, logger, err)
			return
		}
		renderCart(c, sessionID, cart, http.StatusOK)
	}
}

func clearCartHandler(logger *log.Logger, storage cartstore.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := cartSession(c)
		cart, err := cartstore.Load(c.Request.Context(), storage, sessionID)
		if err != nil {
			internalError(c, logger, err)
			return
		}
		if err := cart.Clear(c.Request.Context()); err != nil {
			internalError(c, logger, err)
			return
		}
		renderCart(c, sessionID, cart, http.StatusOK)
	}
}
