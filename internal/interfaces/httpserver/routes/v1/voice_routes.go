package v1

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"voxassist/call-api/internal/interfaces/httpserver/handlers"
	"voxassist/call-api/internal/interfaces/httpserver/requests"
	"voxassist/call-api/internal/interfaces/httpserver/responses"
	voiceres "voxassist/call-api/internal/interfaces/httpserver/responses/voice"
	"voxassist/call-api/internal/utils/platformerrors"
)

// RegisterVoiceRoutes registers the speech routes.
func RegisterVoiceRoutes(router gin.IRoutes, handler *handlers.VoiceHandler) {
	router.POST("/voice/transcribe", transcribe(handler))
	router.POST("/voice/synthesize", synthesize(handler))
}

func transcribe(handler *handlers.VoiceHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req requests.TranscribeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "audio is required")
			return
		}

		audio, err := base64.StdEncoding.DecodeString(req.Audio)
		if err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "audio must be base64 encoded")
			return
		}

		transcription, err := handler.Transcribe(c.Request.Context(), audio, req.Language)
		if err != nil {
			responses.HandleError(c, err, "failed to transcribe audio")
			return
		}

		c.JSON(http.StatusOK, voiceres.NewTranscriptionResponse(transcription))
	}
}

func synthesize(handler *handlers.VoiceHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req requests.SynthesizeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "text is required")
			return
		}

		speech, err := handler.Synthesize(c.Request.Context(), req.Text, req.Voice, req.Language)
		if err != nil {
			responses.HandleError(c, err, "failed to synthesize speech")
			return
		}

		c.JSON(http.StatusOK, voiceres.NewSpeechResponse(speech))
	}
}
