package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/yizeng/gab/gin/gorm/lottery-draw/docs"
	v1 "github.com/yizeng/gab/gin/gorm/lottery-draw/internal/api/handler/v1"
	"github.com/yizeng/gab/gin/gorm/lottery-draw/internal/api/middleware"
	"github.com/yizeng/gab/gin/gorm/lottery-draw/internal/config"
	"github.com/yizeng/gab/gin/gorm/lottery-draw/internal/monitor"
	"github.com/yizeng/gab/gin/gorm/lottery-draw/internal/repository"
	"github.com/yizeng/gab/gin/gorm/lottery-draw/internal/repository/dao"
	"github.com/yizeng/gab/gin/gorm/lottery-draw/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	gameHandler, liveHandler := s.initGameHandlers(db)
	s.MountHandlers(gameHandler, liveHandler)

	return s
}

func (s *Server) initGameHandlers(db *gorm.DB) (*v1.GameHandler, *v1.LiveHandler) {
	gameDAO := dao.NewGameDAO(db)
	repo := repository.NewGameRepository(gameDAO)

	liveHandler := v1.NewLiveHandler()
	metrics := monitor.NewMetrics("lottery")

	svc := service.NewGameService(repo, service.SystemRandom(), service.MultiNotifier{liveHandler, metrics})
	liveHandler.BindService(svc)

	gameHandler := v1.NewGameHandler(svc)

	return gameHandler, liveHandler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(gameHandler *v1.GameHandler, liveHandler *v1.LiveHandler) {
	const basePath = "/api/v1"

	games := s.Router.Group(basePath + "/games")
	{
		games.POST("", gameHandler.HandleCreateGame)
		games.GET("/history", gameHandler.HandleGetGameHistory)
		games.GET("/:roomCode", gameHandler.HandleGetGame)
		games.POST("/:roomCode/join", gameHandler.HandleJoinGame)
		games.POST("/:roomCode/start", gameHandler.HandleStartGame)
		games.GET("/:roomCode/live", liveHandler.HandleLive)
		games.POST("/draw", gameHandler.HandleDrawNumber)
		games.POST("/winners", gameHandler.HandleCheckWinners)
		games.POST("/leave", gameHandler.HandleLeaveGame)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "API for gin/lottery-draw"
	docs.SwaggerInfo.Description = "A multiplayer number-lottery API with Gin."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
