package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"health_edu_backend/internal/challenge"
	"health_edu_backend/internal/config"
	"health_edu_backend/internal/controller"
	"health_edu_backend/internal/service"
	"health_edu_backend/internal/store"
	"health_edu_backend/pkg/configwatcher"
	"health_edu_backend/pkg/database"
	"health_edu_backend/pkg/logger"
	"health_edu_backend/pkg/monitoring"
	"health_edu_backend/pkg/security"
	"health_edu_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const configDir = "configs"

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type services struct {
	auth      *service.AuthService
	quiz      *service.QuizService
	progress  *service.ProgressService
	challenge *service.ChallengeService
	timers    *challenge.TimerRegistry
}

type controllers struct {
	auth      *controller.AuthController
	catalog   *controller.CatalogController
	quiz      *controller.QuizController
	progress  *controller.ProgressController
	challenge *controller.ChallengeController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// initKV picks the device-local backend. Without redis the in-process map is
// used, which does not survive restarts.
func (a *App) initKV(cfg *config.Config) store.KV {
	if cfg.LocalStore.Backend == "memory" {
		logger.Log.Info("Using in-memory local store")
		return store.NewMemoryKV()
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}
	a.Redis = rdb
	return store.NewRedisKV(rdb)
}

func (a *App) initServices(cfg *config.Config, provider *store.Provider, repos *store.Repositories) *services {
	s := &services{}

	s.timers = challenge.NewTimerRegistry(cfg.Challenge.TickInterval)
	s.auth = service.NewAuthService(repos.Profile, provider.KV(), cfg)
	s.quiz = service.NewQuizService()
	s.progress = service.NewProgressService(provider, service.NewArchiver(&cfg.Archive))
	s.challenge = service.NewChallengeService(challenge.NewRuntime(cfg.Challenge.Location()), s.timers)

	return s
}

func (a *App) initControllers(s *services, provider *store.Provider, db *gorm.DB) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		catalog:   controller.NewCatalogController(),
		quiz:      controller.NewQuizController(s.quiz, provider),
		progress:  controller.NewProgressController(s.progress, provider),
		challenge: controller.NewChallengeController(s.challenge, provider),
		health:    controller.NewHealthController(db, provider.KV()),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// watchConfig hot-reloads the settings that are safe to change at runtime.
func (a *App) watchConfig(ctx context.Context) {
	a.RegisterConfigCallback(func(cfg *config.Config) {
		logger.SetMode(cfg.Server.Mode)
	})

	go func() {
		err := configwatcher.WatchConfig(ctx, configDir+"/config.yaml", func(cfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(cfg)
			}
		})
		if err != nil && ctx.Err() == nil {
			logger.Log.Error("config watcher stopped", zap.Error(err))
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode, cfg.ForceMigrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	if cfg.MigrateOnly {
		return app
	}

	kv := app.initKV(cfg)
	repos := store.NewRepositories(db)
	provider := store.NewProvider(kv, repos)

	services := app.initServices(cfg, provider, repos)
	app.services = services
	controllers := app.initControllers(services, provider, db)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("health-edu-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	a.watchConfig(ctx)

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	// 未保存的计时直接丢弃，与客户端离开页面一致
	if a.services != nil {
		a.services.timers.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
