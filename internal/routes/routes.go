package routes

import (
	"gearguard/internal/controllers"
	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/pkg/config"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/metrics"
	"gearguard/pkg/middleware"
	"gearguard/pkg/service"
	appwebsocket "gearguard/pkg/websocket"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Loggers struct {
	Main      *zap.Logger
	Auth      *zap.Logger
	Request   *zap.Logger
	Equipment *zap.Logger
	Team      *zap.Logger
	Report    *zap.Logger
}

// Services - всё, что нужно контроллерам. Отдельно от InitRouter, чтобы маршруты можно было собрать на заглушках.
type Services struct {
	Auth      services.AuthServiceInterface
	Equipment services.EquipmentServiceInterface
	Team      services.TeamServiceInterface
	Request   services.RequestServiceInterface
	Report    services.ReportServiceInterface
}

func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	bus *eventbus.Bus,
	hub *appwebsocket.Hub,
	appMetrics *metrics.AppMetrics,
	gatherer prometheus.Gatherer,
	loggers *Loggers,
	cfg *config.Config,
) {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	// --- 1. РЕПОЗИТОРИИ ---
	txManager := repositories.NewTxManager(dbConn)
	userRepo := repositories.NewUserRepository(dbConn)
	historyRepo := repositories.NewLoginHistoryRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	teamRepo := repositories.NewTeamRepository(dbConn)
	requestRepo := repositories.NewRequestRepository(dbConn)
	statusRepo := repositories.NewRequestStatusRepository(dbConn)
	commentRepo := repositories.NewCommentRepository(dbConn)
	reportRepo := repositories.NewReportRepository(dbConn, loggers.Report)

	// --- 2. СЕРВИСЫ ---
	revoker := services.NewTokenRevoker(cacheRepo)
	svcs := Services{
		Auth:      services.NewAuthService(userRepo, historyRepo, jwtSvc, revoker, appMetrics, loggers.Auth),
		Equipment: services.NewEquipmentService(equipmentRepo, loggers.Equipment),
		Team:      services.NewTeamService(teamRepo, loggers.Team),
		Request: services.NewRequestService(txManager, requestRepo, statusRepo, commentRepo, bus,
			cfg.Workflow.StrictTransitions, loggers.Request),
		Report: services.NewReportService(reportRepo, loggers.Report),
	}

	authMW := middleware.NewAuthMiddleware(jwtSvc, userRepo, revoker, loggers.Auth)

	RegisterRoutes(e, svcs, authMW, jwtSvc, loggers, cfg.Auth.SecureCookies)
	realtimeCtrl := controllers.NewRealtimeController(hub, cfg.Server.AllowedOrigins, loggers.Main.Named("ws"))
	e.GET("/ws", realtimeCtrl.Serve, authMW.Authenticated())
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	loggers.Main.Info("InitRouter: Создание маршрутов завершено")
}

// RegisterRoutes вешает /auth (публичный) и /api (за проверкой роли).
func RegisterRoutes(e *echo.Echo, svcs Services, authMW *middleware.AuthMiddleware, jwtSvc service.JWTService, loggers *Loggers, secureCookies bool) {
	authCtrl := controllers.NewAuthController(svcs.Auth, jwtSvc, secureCookies, loggers.Auth)
	runAuthRouter(e.Group("/auth"), authCtrl, authMW)

	api := e.Group("/api", authMW.Authenticated())
	runEquipmentRouter(api, controllers.NewEquipmentController(svcs.Equipment, loggers.Equipment), authMW)
	runTeamRouter(api, controllers.NewTeamController(svcs.Team, loggers.Team), authMW)
	runRequestRouter(api, controllers.NewRequestController(svcs.Request, loggers.Request), authMW)
	runReportRouter(api, controllers.NewReportController(svcs.Report, loggers.Report))
}
