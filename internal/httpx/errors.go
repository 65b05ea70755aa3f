package httpx

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/cafe-altura/internal/apperr"
)

// StatusOf maps an error kind to its HTTP status. Unauthorized is 400 here;
// the auth middleware answers 401 on its own.
func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.Validation, apperr.Conflict, apperr.Unauthorized:
		return http.StatusBadRequest
	case apperr.NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Fail writes {"error": msg} for err. Internal causes are only logged.
func Fail(c *gin.Context, err error) {
	code := StatusOf(err)
	if code == http.StatusInternalServerError {
		log.Printf("[http] rid=%s %s %s: %v", RequestIDFrom(c), c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(code, gin.H{"error": apperr.Message(err)})
}

// BadRequest is for bodies that do not decode.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
