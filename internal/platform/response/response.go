// Package response writes the JSON envelope used by the gallery API.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/apperror"
)

// Success writes a 200 response with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// Created writes a 201 response with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    data,
	})
}

// BadRequest writes a 400 response.
func BadRequest(c *gin.Context, message string) {
	write(c, http.StatusBadRequest, string(apperror.KindBadRequest), message)
}

// NotFound writes a 404 response.
func NotFound(c *gin.Context, message string) {
	write(c, http.StatusNotFound, string(apperror.KindNotFound), message)
}

// Error maps err onto a status code. Unclassified errors never leak their
// message to the client.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)

	kind := apperror.KindOf(err)
	status := StatusFor(kind)
	message := "internal server error"
	if kind != apperror.KindInternal {
		message = err.Error()
	}
	write(c, status, string(kind), message)
}

// StatusFor returns the HTTP status for an error kind.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindBadRequest:
		return http.StatusBadRequest
	case apperror.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func write(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
