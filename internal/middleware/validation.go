package middleware

import (
	"net/http"

	"github.com/TRK06/feedback-system/internal/app/models/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// BindJSON decodes and validates a JSON body into obj. On failure it writes
// the 400 response and returns false.
func BindJSON(c *gin.Context, obj any) bool {
	return bindWith(c, obj, binding.JSON)
}

// BindForm decodes and validates a form body into obj
func BindForm(c *gin.Context, obj any) bool {
	return bindWith(c, obj, binding.Form)
}

func bindWith(c *gin.Context, obj any, b binding.Binding) bool {
	if err := c.ShouldBindWith(obj, b); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}
