package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voxassist/call-api/internal/interfaces/httpserver/handlers"
	"voxassist/call-api/internal/interfaces/httpserver/requests"
	"voxassist/call-api/internal/interfaces/httpserver/responses"
	callres "voxassist/call-api/internal/interfaces/httpserver/responses/call"
	"voxassist/call-api/internal/utils/platformerrors"
)

// RegisterCallRoutes registers the call session routes.
func RegisterCallRoutes(router gin.IRoutes, handler *handlers.CallHandler, stream *handlers.StreamHandler) {
	router.POST("/calls", startCall(handler))
	router.GET("/calls", listCalls(handler))
	router.GET("/calls/:id", getCall(handler))
	router.POST("/calls/:id/turns", processTurn(handler))
	router.POST("/calls/:id/end", endCall(handler))
	router.GET("/calls/:id/stream", stream.Handle)
}

func startCall(handler *handlers.CallHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req requests.StartCallRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body")
			return
		}

		sess, err := handler.StartCall(c.Request.Context(), req.CallerNumber, req.CallID)
		if err != nil {
			responses.HandleError(c, err, "failed to start call")
			return
		}

		c.JSON(http.StatusCreated, callres.NewStartCallResponse(sess))
	}
}

func listCalls(handler *handlers.CallHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions, err := handler.ListActiveCalls(c.Request.Context())
		if err != nil {
			responses.HandleError(c, err, "failed to list calls")
			return
		}

		c.JSON(http.StatusOK, callres.NewListCallsResponse(sessions))
	}
}

func getCall(handler *handlers.CallHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := handler.GetCall(c.Request.Context(), c.Param("id"))
		if err != nil {
			responses.HandleError(c, err, "call not found")
			return
		}

		c.JSON(http.StatusOK, callres.NewCallResponse(sess))
	}
}

func processTurn(handler *handlers.CallHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req requests.TurnRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "text is required")
			return
		}

		turn, err := handler.ProcessTurn(c.Request.Context(), c.Param("id"), req.Text)
		if err != nil {
			responses.HandleError(c, err, "failed to process turn")
			return
		}

		c.JSON(http.StatusOK, turn)
	}
}

func endCall(handler *handlers.CallHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req requests.EndCallRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body")
				return
			}
		}

		sess, err := handler.EndCall(c.Request.Context(), c.Param("id"), req.Duration, req.Sentiment)
		if err != nil {
			responses.HandleError(c, err, "failed to end call")
			return
		}

		c.JSON(http.StatusOK, callres.NewEndCallResponse(sess))
	}
}
