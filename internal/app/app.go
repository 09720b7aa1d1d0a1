package app

import (
	"context"
	"feedback_backend/internal/config"
	"feedback_backend/internal/controller"
	"feedback_backend/internal/repository"
	"feedback_backend/internal/service"
	"feedback_backend/internal/util"
	"feedback_backend/pkg/configwatcher"
	"feedback_backend/pkg/database"
	"feedback_backend/pkg/logger"
	"feedback_backend/pkg/monitoring"
	"feedback_backend/pkg/security"
	"feedback_backend/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	ConfigDir       string
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Origins         *security.OriginList
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []configwatcher.ConfigReloader
}

type repositories struct {
	user    *repository.UserRepository
	message *repository.MessageRepository
	test    *repository.TestRepository
	answer  *repository.AnswerRepository
}

type services struct {
	otp         *service.OTPService
	auth        *service.AuthService
	message     *service.MessageService
	test        *service.TestService
	questionSet *service.QuestionSetService
	answer      *service.AnswerService
	suggestion  *service.SuggestionService
}

type controllers struct {
	auth        *controller.AuthController
	message     *controller.MessageController
	test        *controller.TestController
	questionSet *controller.QuestionSetController
	answer      *controller.AnswerController
	suggestion  *controller.SuggestionController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback configwatcher.ConfigReloader) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:    repository.NewUserRepository(db),
		message: repository.NewMessageRepository(db),
		test:    repository.NewTestRepository(db),
		answer:  repository.NewAnswerRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client, mailer service.MailSender) *services {
	s := &services{}

	var cooldown service.CooldownStore
	if rdb != nil {
		cooldown = service.NewRedisCooldown(rdb)
	} else {
		cooldown = service.NewMemoryCooldown(time.Now)
	}

	s.otp = service.NewOTPService(repos.user, mailer, cooldown, cfg.Server.AppName, cfg.OTP.TTL(), cfg.OTP.ResendCooldown())
	s.auth = service.NewAuthService(repos.user, s.otp, cfg)
	s.message = service.NewMessageService(repos.message, repos.user)
	s.test = service.NewTestService(repos.test, repos.user)
	s.questionSet = service.NewQuestionSetService(s.test, service.NewSetPicker(nil))
	s.answer = service.NewAnswerService(repos.answer, s.test, s.questionSet)
	s.suggestion = service.NewSuggestionService(service.NewAIService(cfg.AI))

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth, s.otp),
		message:     controller.NewMessageController(s.message),
		test:        controller.NewTestController(s.test),
		questionSet: controller.NewQuestionSetController(s.questionSet),
		answer:      controller.NewAnswerController(s.answer),
		suggestion:  controller.NewSuggestionController(s.suggestion),
		health:      controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(a.Origins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))
	router.Use(monitoring.MetricsMiddleware())
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}
}

// New wires an App around already opened stores. rdb may be nil.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mailer service.MailSender) *App {
	util.InitValidators()
	monitoring.Init()

	app := &App{
		Config:    cfg,
		ConfigDir: "configs",
		DB:        db,
		Redis:     rdb,
		Origins:   security.NewOriginList(cfg.CORS.AllowedOrigins),
	}

	repos := app.initRepositories(db)
	app.services = app.initServices(repos, cfg, rdb, mailer)
	controllers := app.initControllers(app.services)

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Server.Mode != gin.TestMode {
		router.Use(gin.Logger())
	}
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	app.RegisterConfigCallback(func(next *config.Config) {
		logger.SetLevel(next.Server.Mode)
	})
	app.RegisterConfigCallback(func(next *config.Config) {
		app.Origins.Replace(next.CORS.AllowedOrigins)
	})

	return app
}

func NewApp(cfg *config.Config) *App {
	gin.SetMode(cfg.Server.Mode)
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
	} else {
		logger.Log.Warn("Redis disabled, OTP resend cooldowns are kept in memory")
	}

	mailer, err := service.NewMailSender(cfg.Mail)
	if err != nil {
		logger.Log.Fatal("Failed to initialize mail sender", zap.Error(err))
	}

	app := New(cfg, db, rdb, mailer)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Server.AppName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	watchCtx, stopWatching := context.WithCancel(context.Background())
	defer stopWatching()
	go func() {
		path := filepath.Join(a.ConfigDir, "config.yaml")
		if err := configwatcher.Watch(watchCtx, path, a.configCallbacks...); err != nil {
			logger.Log.Warn("Config watcher stopped", zap.Error(err))
		}
	}()

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
