package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voxassist/call-api/internal/interfaces/httpserver/handlers"
	"voxassist/call-api/internal/interfaces/httpserver/requests"
	"voxassist/call-api/internal/interfaces/httpserver/responses"
	transferres "voxassist/call-api/internal/interfaces/httpserver/responses/transfer"
	"voxassist/call-api/internal/utils/platformerrors"
)

// RegisterTransferRoutes registers the human-handoff routes.
func RegisterTransferRoutes(router gin.IRoutes, handler *handlers.TransferHandler) {
	router.POST("/human/transfer", transferCall(handler))
	router.POST("/human/escalate", escalateCall(handler))
	router.GET("/human/agents/available", availableAgents(handler))
}

func transferCall(handler *handlers.TransferHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req requests.TransferCallRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "call_id is required")
			return
		}

		transfer, err := handler.Transfer(c.Request.Context(), req.CallID, req.Reason, req.Priority)
		if err != nil {
			responses.HandleError(c, err, "failed to transfer call")
			return
		}

		c.JSON(http.StatusOK, transferres.NewTransferResponse(transfer))
	}
}

func escalateCall(handler *handlers.TransferHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req requests.TransferCallRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "call_id is required")
			return
		}

		transfer, err := handler.Escalate(c.Request.Context(), req.CallID, req.Reason)
		if err != nil {
			responses.HandleError(c, err, "failed to escalate call")
			return
		}

		c.JSON(http.StatusOK, transferres.NewTransferResponse(transfer))
	}
}

func availableAgents(handler *handlers.TransferHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		agents, err := handler.AvailableAgents(c.Request.Context())
		if err != nil {
			responses.HandleError(c, err, "failed to list agents")
			return
		}

		c.JSON(http.StatusOK, transferres.NewAgentsResponse(agents))
	}
}
