package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type errBody struct {
	Error string `json:"error"`
}

// Err writes the HTTP rendering of a service error. Internal errors are not
// echoed to the client.
func Err(c *gin.Context, err error) {
	status := StatusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err) // surfaces in the access log
		msg = "internal error"
	}
	c.AbortWithStatusJSON(status, errBody{Error: msg})
}

// ErrMsg writes a fixed status and message, for boundary failures that have
// no domain error behind them (missing token, bad path parameter).
func ErrMsg(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errBody{Error: msg})
}
