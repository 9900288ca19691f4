package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/second-brain-api/internal/container"
	handlers "github.com/oksasatya/second-brain-api/internal/interface/http"
	"github.com/oksasatya/second-brain-api/internal/interface/middleware"
	"github.com/oksasatya/second-brain-api/pkg/helpers"
)

// ItemModule wires item creation, search, and the tag dictionary.
type ItemModule struct {
	Handler *handlers.ItemHandler
	JWT     *helpers.JWTManager
}

func NewItemModule(h *handlers.ItemHandler, jwt *helpers.JWTManager) *ItemModule {
	return &ItemModule{Handler: h, JWT: jwt}
}

func (m *ItemModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/item/tweet", m.Handler.CreateTweet)
		auth.GET("/items/search", m.Handler.Search)
		auth.GET("/tags", m.Handler.Tags)
	}
}
