package v1

import (
	"github.com/gin-gonic/gin"

	"voxassist/call-api/internal/interfaces/httpserver/handlers"
)

// Routes holds the v1 route configuration.
type Routes struct {
	handlers *handlers.Provider
}

// NewRoutes creates a new v1 routes instance.
func NewRoutes(handlerProvider *handlers.Provider) *Routes {
	return &Routes{
		handlers: handlerProvider,
	}
}

// Register registers all v1 routes on the engine.
func (r *Routes) Register(engine *gin.Engine) {
	v1 := engine.Group("/v1")
	RegisterCallRoutes(v1, r.handlers.Call, r.handlers.Stream)
	RegisterFAQRoutes(v1, r.handlers.FAQ)
	RegisterTransferRoutes(v1, r.handlers.Transfer)
	RegisterVoiceRoutes(v1, r.handlers.Voice)
	RegisterIntentRoutes(v1, r.handlers.Intent)
}
