package v1

import (
	"net/http"
	"time"

	"github.com/abhayy08/AlumniConnect-Platform-Backend/config"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/delivery/http/middleware"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/delivery/http/response"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/domain"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/pkg/auth"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC    domain.AuthUsecase
	ProfileUC domain.ProfileUsecase
	JobUC     domain.JobUsecase
	PostUC    domain.PostUsecase
	MessageUC domain.MessageUsecase
	EventUC   domain.EventUsecase

	Tokens *auth.TokenManager
	Redis  *goredis.Client
	Config *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(deps.Redis,
		middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))

	api := r.Group("/api")

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	public := api.Group("")
	public.Use(middleware.RateLimitMiddleware(deps.Redis,
		middleware.AuthRateLimitConfig(deps.Config.RateLimitLoginThreshold, window)))
	NewAuthHandler(public, deps.AuthUC)

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens))
	{
		NewProfileHandler(protected, deps.ProfileUC)
		NewJobHandler(protected, deps.JobUC)
		NewPostHandler(protected, deps.PostUC)
		NewMessageHandler(protected, deps.MessageUC)
		NewEventHandler(protected, deps.EventUC)
	}

	return r
}
