package utils

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the error envelope every failing endpoint answers with
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Message string `json:"message"`
}

// SendError sends an error response with the standard envelope
func SendError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{
		Error: ErrorDetail{Message: message},
	})
}

// ValidateRequestBody binds the JSON body and answers 400 when it is invalid
func ValidateRequestBody(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		SendError(c, 400, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
