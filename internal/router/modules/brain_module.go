package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/second-brain-api/internal/container"
	handlers "github.com/oksasatya/second-brain-api/internal/interface/http"
	"github.com/oksasatya/second-brain-api/internal/interface/middleware"
	"github.com/oksasatya/second-brain-api/pkg/helpers"
)

// BrainModule wires the brain collection endpoints; all require auth.
type BrainModule struct {
	Handler *handlers.BrainHandler
	JWT     *helpers.JWTManager
}

func NewBrainModule(h *handlers.BrainHandler, jwt *helpers.JWTManager) *BrainModule {
	return &BrainModule{Handler: h, JWT: jwt}
}

func (m *BrainModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/brain-nav", m.Handler.Nav)
		auth.POST("/brain", m.Handler.Create)
		auth.GET("/brain/:brainId", m.Handler.Detail)
	}
}
