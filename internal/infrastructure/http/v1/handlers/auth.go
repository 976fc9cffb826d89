package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spottive/internal/domain/auth"
	"spottive/internal/infrastructure/http/v1/dto"
)

// AuthHandler serves the back-office login.
type AuthHandler struct {
	svc *auth.Service
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login serves POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	req, ok := bindJSON[dto.LoginRequest](c)
	if !ok {
		return
	}

	token, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token})
}
