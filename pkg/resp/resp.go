package resp

import (
	"log"
	"net/http"

	"backend/pkg/apperr"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg, "code": apperr.KindValidation})
}
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": msg, "code": apperr.KindAuthentication})
}
func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": msg, "code": apperr.KindForbidden})
}

// Error renders a typed error with its stable kind. Untyped errors come out
// as 500 INTERNAL without leaking internals to the client.
func Error(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	msg := apperr.MessageOf(err)
	if kind == apperr.KindInternal || kind == apperr.KindImmutability {
		// Immutability violations are bugs, not user errors.
		log.Printf("[resp] %s: %v", kind, err)
		msg = "internal server error"
	}
	c.JSON(statusFor(kind), gin.H{"ok": false, "error": msg, "code": kind})
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindUnavailable, apperr.KindEmptyCart,
		apperr.KindRestaurantUnavailable, apperr.KindItemRemoved, apperr.KindItemUnavailable:
		return http.StatusBadRequest
	case apperr.KindNotFound, apperr.KindRestaurantGone:
		return http.StatusNotFound
	case apperr.KindRestaurantConflict, apperr.KindInvalidTransition:
		return http.StatusConflict
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindAuthentication:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
