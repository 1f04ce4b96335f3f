package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"MediTrack/authz"
	"MediTrack/cache"
	"MediTrack/config"
	"MediTrack/controllers"
	"MediTrack/handlers"
	"MediTrack/middlewares"
	"MediTrack/reports"
	"MediTrack/repositories"
	"MediTrack/services"
	"MediTrack/utils"
)

// Dependencies are the shared resources the HTTP layer is built from.
type Dependencies struct {
	Config  *config.AppConfig
	Logger  zerolog.Logger
	DB      *gorm.DB
	Redis   *redis.Client
	Cache   *cache.Cache
	Tokens  *utils.TokenMaker
	Metrics *middlewares.Metrics
}

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(deps Dependencies) (http.Handler, error) {
	if !deps.Config.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middlewares.RequestID(),
		middlewares.LoggingMiddleware(deps.Logger),
		middlewares.Recovery(deps.Logger),
		deps.Metrics.Middleware(),
		middlewares.SecurityHeaders(),
		middlewares.CorsMiddleware(deps.Config.CORSOrigins),
		middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
			RequestsPerSecond: deps.Config.RateLimitRPS,
			Burst:             deps.Config.RateLimitBurst,
		}),
	)

	authorizer, err := authz.NewAuthorizer()
	if err != nil {
		return nil, err
	}
	authenticate := middlewares.TokenAuthMiddleware(deps.Tokens)

	patientRepo := repositories.NewPatientRepository(deps.DB, deps.Cache)
	recordRepo := repositories.NewRecordRepository(deps.DB)
	userRepo := repositories.NewUserRepository(deps.DB)

	patientService := services.NewPatientService(patientRepo, recordRepo)
	recordService := services.NewRecordService(patientRepo, recordRepo)
	userService := services.NewUserService(userRepo, deps.Tokens)
	engine := reports.NewEngine(repositories.NewReportStore(patientRepo, recordRepo), deps.Config.ReportConfig())

	controllers.NewAuthController(handlers.NewAuthHandler(userService), authenticate).RegisterRoutes(router)
	controllers.SetupPatientRoutes(router, authenticate, authorizer,
		handlers.NewPatientHandler(patientService),
		handlers.NewRecordHandler(recordService),
	)
	controllers.SetupReportRoutes(router, authenticate, authorizer, handlers.NewReportHandler(engine, deps.Metrics))
	controllers.SetupRootRoute(router, healthChecks(deps), deps.Metrics.Handler())

	return router, nil
}

func healthChecks(deps Dependencies) map[string]handlers.Pinger {
	checks := map[string]handlers.Pinger{}
	if deps.DB != nil {
		checks["database"] = func(ctx context.Context) error {
			sqlDB, err := deps.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	if deps.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return deps.Redis.Ping(ctx).Err()
		}
	}
	return checks
}
