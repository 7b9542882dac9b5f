package http

import (
	"github.com/gin-gonic/gin"

	appsvc "studyprep-api/internal/app"
	"studyprep-api/internal/bootstrap"
	"studyprep-api/internal/cache"
	"studyprep-api/internal/platform/rabbitmq"
	"studyprep-api/internal/repository"
	"studyprep-api/internal/transport/http/handler"
	"studyprep-api/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(app.Logger))

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	publisher := rabbitmq.NewEventPublisher(app.MQConn, app.Config.RabbitMQ.ActivityQueue)
	noteService := appsvc.NewNoteService(repository.NewNoteRepository(app.MySQL), publisher, app.Logger)
	careerService := appsvc.NewCareerService(repository.NewCareerReportRepository(app.MySQL), publisher, app.Logger)
	activityService := appsvc.NewActivityService(repository.NewActivityRepository(app.MySQL))

	noteHandler := handler.NewNoteHandler(noteService)
	careerHandler := handler.NewCareerHandler(careerService)
	activityHandler := handler.NewActivityHandler(activityService)
	searchHandler := handler.NewSearchHandler(app.Search)

	v1 := router.Group("/api/v1")

	records := v1.Group("")
	records.Use(middleware.Authenticate(app.Verifier, app.Logger))
	records.POST("/notes", noteHandler.Create)
	records.GET("/notes", noteHandler.List)
	records.POST("/notes/upload", noteHandler.Upload)
	records.POST("/career-reports", careerHandler.Create)
	records.GET("/career-reports", careerHandler.List)
	records.GET("/activity", activityHandler.List)

	limiter := cache.NewRateLimiter(app.Redis, app.Config.Search.RateLimitPerMinute)
	searchGroup := v1.Group("/search")
	searchGroup.GET("/health", searchHandler.Health)
	searchGroup.GET("", middleware.RateLimit(limiter, app.Logger), searchHandler.Web)
	searchGroup.GET("/wikipedia", middleware.RateLimit(limiter, app.Logger), searchHandler.Wikipedia)

	return router
}
