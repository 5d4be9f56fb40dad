package handler

import (
	"context"
	"net/http"
	"time"

	"mediaminder/internal/microservices/http-api/dto"
	"mediaminder/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
	timeout     time.Duration
}

func NewAuthHandler(authService service.AuthService, timeout time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, timeout: timeout}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req, service.ErrMissingFields, false) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	res, err := h.authService.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Message: "User registered successfully",
		Token:   res.Token,
		User:    dto.ToUserResponse(res.User),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req, service.ErrCredentialsRequired, false) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	res, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Message: "Login successful",
		Token:   res.Token,
		User:    dto.ToUserResponse(res.User),
	})
}
