package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"mediaminder/internal/microservices/http-api/dto"
	"mediaminder/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var errInvalidBody = service.Validation("invalid request body")

// statusFor maps a service error kind onto its HTTP status.
func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindAuth:
		return http.StatusUnauthorized
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": msg} for err. Internal errors are attached to
// the gin context for the request logger and never shown to the client.
func respondError(c *gin.Context, err error) {
	var se *service.Error
	if !errors.As(err, &se) {
		se = service.Internal(err)
	}
	if se.Kind == service.KindInternal {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(statusFor(se.Kind), dto.ErrorResponse{Error: se.Message})
}

// bindJSON decodes the body into req. Failed binding rules report missing;
// anything else that cannot be decoded is an invalid body. An empty body is
// accepted when allowEmpty is set.
func bindJSON(c *gin.Context, req interface{}, missing error, allowEmpty bool) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	if allowEmpty && errors.Is(err, io.EOF) {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		respondError(c, missing)
		return false
	}
	respondError(c, errInvalidBody)
	return false
}

// itemID parses :id. Ids that cannot name a row are reported as not found.
func itemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, service.ErrItemNotFound)
		return 0, false
	}
	return id, true
}
