package router

import (
	"github.com/oksasatya/second-brain-api/internal/application"
	"github.com/oksasatya/second-brain-api/internal/container"
	handlers "github.com/oksasatya/second-brain-api/internal/interface/http"
	pginfra "github.com/oksasatya/second-brain-api/internal/infrastructure/postgres"
	"github.com/oksasatya/second-brain-api/internal/router/modules"
	"github.com/oksasatya/second-brain-api/pkg/prefill"
)

// InitModules builds all feature modules from the container singletons and
// registers them. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	brainRepo := pginfra.NewBrainRepository(pool)
	itemRepo := pginfra.NewItemRepository(pool)

	// A nil *RabbitPublisher must stay a nil interface so publishing is
	// skipped cleanly when the broker is not configured.
	var pub application.Publisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}

	authSvc := application.NewAuthService(
		userRepo,
		container.GetJWT(),
		container.GetHasher(),
		container.GetVerifier(),
		pub,
		logger,
	)
	brainSvc := application.NewBrainService(brainRepo, logger)

	pfClient := prefill.NewClient()
	itemSvc := application.NewItemService(itemRepo, brainRepo, pfClient, logger, container.GetES(), cfg.ESItemsIndex)
	prefillSvc := application.NewPrefillService(pfClient, container.GetRedis(), logger)

	authHandler := handlers.NewAuthHandler(authSvc, logger, container.GetGCS(), cfg.GCSBucket)
	brainHandler := handlers.NewBrainHandler(brainSvc, logger)
	itemHandler := handlers.NewItemHandler(itemSvc, logger)
	miscHandler := handlers.NewMiscHandler(prefillSvc, logger, cfg.Version)

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewBrainModule(brainHandler, container.GetJWT()))
	r.Add(modules.NewItemModule(itemHandler, container.GetJWT()))
	r.Add(modules.NewMiscModule(miscHandler))
}
