package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voxassist/call-api/internal/interfaces/httpserver/handlers"
	"voxassist/call-api/internal/interfaces/httpserver/requests"
	"voxassist/call-api/internal/interfaces/httpserver/responses"
	"voxassist/call-api/internal/utils/platformerrors"
)

// RegisterIntentRoutes registers the standalone intent-analysis route.
func RegisterIntentRoutes(router gin.IRoutes, handler *handlers.IntentHandler) {
	router.POST("/intent/analyze", analyzeIntent(handler))
}

func analyzeIntent(handler *handlers.IntentHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req requests.AnalyzeIntentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "text is required")
			return
		}

		c.JSON(http.StatusOK, handler.Analyze(c.Request.Context(), req.Text))
	}
}
