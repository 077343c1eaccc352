package httperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HTTPError is the JSON body of every failed API call.
type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// FieldError is implemented by validation errors that point at one input field.
type FieldError interface {
	error
	FieldName() string
}

func Write(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// Validation writes a 422 pointing at the offending field.
func Validation(c *gin.Context, field, message string) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, HTTPError{
		Code:    "validation_failed",
		Message: message,
		Field:   field,
	})
}

// FromError maps an error returned by a store, flow or gateway to a response.
func FromError(c *gin.Context, err error) {
	var fe FieldError
	if errors.As(err, &fe) {
		Validation(c, fe.FieldName(), fe.Error())
		return
	}

	var be BusinessError
	if errors.As(err, &be) {
		Write(c, http.StatusConflict, be.Code, be.Code)
		return
	}

	log.Printf("request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	Internal(c, "internal_error", "something went wrong")
}
