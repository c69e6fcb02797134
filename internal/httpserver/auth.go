package httpserver

import (
	"errors"
	"log"
	"net/http"

	"boomstore/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func loginHandler(logger *log.Logger, svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, http.StatusBadRequest, "email and password required")
			return
		}
		user, token, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				errorResponse(c, http.StatusUnauthorized, "invalid credentials")
				return
			}
			internalError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	}
}

func logoutHandler(svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = svc.Logout(c.Request.Context(), bearerToken(c))
		c.Status(http.StatusNoContent)
	}
}

func meHandler(svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := svc.UserFromToken(c.Request.Context(), bearerToken(c))
		if err != nil {
			errorResponse(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}
