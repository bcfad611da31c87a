// Package respond shapes every JSON response as {success, data?, message?} /
// {success:false, error} and maps tagged error kinds to HTTP statuses.
package respond

import (
	"net/http"

	"github.com/MrPouyaSaad/rivaland-backend/apperr"
	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func OKMessage(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data, "message": message})
}

func Created(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data, "message": message})
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

func Error(c *gin.Context, err error) {
	c.JSON(apperr.Status(err), gin.H{"success": false, "error": err.Error()})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": message})
}
