package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"mediaminder/internal/microservices/http-api/dto"
	"mediaminder/internal/microservices/http-api/middleware"
	"mediaminder/internal/microservices/http-api/models"
	"mediaminder/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// MediaHandler serves the authenticated user's list.
type MediaHandler struct {
	svc     service.LibraryService
	genres  service.GenreService
	timeout time.Duration
}

func NewMediaHandler(svc service.LibraryService, genres service.GenreService, timeout time.Duration) *MediaHandler {
	return &MediaHandler{svc: svc, genres: genres, timeout: timeout}
}

func (h *MediaHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Add)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.GET("/:id/genres", h.Genres)
}

func (h *MediaHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, service.ErrMissingToken)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	items, err := h.svc.List(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserMediaList(items))
}

func (h *MediaHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, service.ErrMissingToken)
		return
	}
	id, ok := itemID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	item, err := h.svc.Get(ctx, userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserMediaResponse(item))
}

// Add tracks a work, creating its catalog entry on first use.
func (h *MediaHandler) Add(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, service.ErrMissingToken)
		return
	}

	var req dto.AddMediaRequest
	if !bindJSON(c, &req, service.ErrMissingFields, false) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	item, err := h.svc.Add(ctx, userID, service.AddInput{
		ExternalID: string(req.MediaID),
		MediaType:  models.MediaType(strings.ToLower(strings.TrimSpace(req.MediaType))),
		Status:     req.Status,
		Title:      req.Title,
		ImageURL:   req.PosterPath,
		Rating:     req.Rating,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserMediaResponse(item))
}

func (h *MediaHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, service.ErrMissingToken)
		return
	}
	id, ok := itemID(c)
	if !ok {
		return
	}

	var req dto.UpdateMediaRequest
	if !bindJSON(c, &req, errInvalidBody, true) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	item, err := h.svc.Update(ctx, userID, id, service.UpdateInput{
		Status:    req.Status,
		SetRating: req.Rating.Set,
		Rating:    req.Rating.Value,
		SetReview: req.Review.Set,
		Review:    req.Review.Value,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserMediaResponse(item))
}

func (h *MediaHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, service.ErrMissingToken)
		return
	}
	id, ok := itemID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.svc.Delete(ctx, userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Media item deleted successfully"})
}

// Genres lists the genres of the work behind one of the user's entries.
func (h *MediaHandler) Genres(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, service.ErrMissingToken)
		return
	}
	id, ok := itemID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	item, err := h.svc.Get(ctx, userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := h.genres.ForMedia(ctx, item.MediaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToGenreList(list))
}
