package handler

import (
	"context"
	"net/http"
	"time"

	"mediaminder/internal/microservices/http-api/dto"
	"mediaminder/internal/microservices/http-api/middleware"
	"mediaminder/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	svc     service.ProfileService
	timeout time.Duration
}

func NewProfileHandler(svc service.ProfileService, timeout time.Duration) *ProfileHandler {
	return &ProfileHandler{svc: svc, timeout: timeout}
}

func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.Get)
	rg.PUT("/profile", h.Update)
	rg.DELETE("/account", h.Delete)
}

func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, service.ErrMissingToken)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	user, err := h.svc.Get(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProfileResponse{User: dto.ToUserResponse(user)})
}

func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, service.ErrMissingToken)
		return
	}

	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req, errInvalidBody, true) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	user, err := h.svc.Update(ctx, userID, service.ProfileInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		IsPrivate: req.IsPrivate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UpdateProfileResponse{
		Message: "Profile updated successfully",
		User:    dto.ToUserResponse(user),
	})
}

func (h *ProfileHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, service.ErrMissingToken)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.svc.DeleteAccount(ctx, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Account deleted successfully"})
}
