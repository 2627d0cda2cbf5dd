package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string            `json:"error_code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
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

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Validation(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, HTTPError{
		Code:    "validation_failed",
		Message: "One or more fields are invalid.",
		Fields:  fields,
	})
}

// Respond maps a use case error onto the error envelope. Anything that is not
// one of the typed errors of this package is reported as a generic 500 and
// attached to the gin context so the request logger records the cause.
func Respond(c *gin.Context, err error) {
	var (
		ve ValidationError
		nf NotFoundError
		ae AuthError
		be BusinessError
	)

	switch {
	case errors.As(err, &ve):
		Validation(c, ve.Fields)
	case errors.As(err, &nf):
		NotFound(c, nf.Code, "Resource not found.")
	case errors.As(err, &ae):
		Unauthorized(c, ae.Code, "Authentication required.")
	case errors.As(err, &be):
		Conflict(c, be.Code, "Request conflicts with the current state.")
	default:
		_ = c.Error(err)
		Internal(c, "internal_error", "Something went wrong.")
	}
}
