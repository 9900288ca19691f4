package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/second-brain-api/internal/container"
	handlers "github.com/oksasatya/second-brain-api/internal/interface/http"
	"github.com/oksasatya/second-brain-api/internal/interface/middleware"
)

// MiscModule wires the public prefill and health endpoints.
type MiscModule struct {
	Handler *handlers.MiscHandler
}

func NewMiscModule(h *handlers.MiscHandler) *MiscModule {
	return &MiscModule{Handler: h}
}

func (m *MiscModule) Register(rg *gin.RouterGroup) {
	prefillLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	rg.GET("/prefill", prefillLimiter, m.Handler.PrefillURL)
	rg.GET("/health", m.Handler.Health)
}
