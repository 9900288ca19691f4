package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/second-brain-api/internal/container"
	handlers "github.com/oksasatya/second-brain-api/internal/interface/http"
	"github.com/oksasatya/second-brain-api/internal/interface/middleware"
	"github.com/oksasatya/second-brain-api/pkg/helpers"
)

// AuthModule wires the auth endpoints.
// Public: POST /signup, POST /signin, POST /auth/exchange, POST /auth/refresh
// Protected: GET /me, POST /me/avatar
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	signUpLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	signInLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	exchangeLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/signup", signUpLimiter, m.Handler.SignUp)
	rg.POST("/signin", signInLimiter, m.Handler.SignIn)
	rg.POST("/auth/exchange", exchangeLimiter, m.Handler.Exchange)
	rg.POST("/auth/refresh", refreshLimiter, m.Handler.Refresh)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/me", m.Handler.Me)
		auth.POST("/me/avatar", m.Handler.UploadAvatar)
	}
}
