package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/config"
	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/controller"
	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/repository"
	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/service"
	"github.com/Gauraviiitian/PrepZone-Mock-Test/pkg/bankwatcher"
	"github.com/Gauraviiitian/PrepZone-Mock-Test/pkg/logger"
	"github.com/Gauraviiitian/PrepZone-Mock-Test/pkg/monitoring"
	"github.com/Gauraviiitian/PrepZone-Mock-Test/pkg/security"
	"github.com/Gauraviiitian/PrepZone-Mock-Test/pkg/tracing"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	repos    *repositories
	services *services
	tracer   *sdktrace.TracerProvider
}

type repositories struct {
	questions *repository.QuestionRepository
	results   *repository.ResultRepository
}

type services struct {
	quiz     *service.QuizService
	admin    *service.AdminService
	sessions *service.SessionManager
}

type controllers struct {
	quiz        *controller.QuizController
	leaderboard *controller.LeaderboardController
	admin       *controller.AdminController
	health      *controller.HealthController
}

func (a *App) initRepositories(cfg *config.Config) *repositories {
	return &repositories{
		questions: repository.NewQuestionRepository(cfg.Quiz.QuestionsFile),
		results:   repository.NewResultRepository(cfg.Quiz.ResultsFile),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	return &services{
		quiz:     service.NewQuizService(repos.questions, repos.results),
		admin:    service.NewAdminService(cfg, repos.questions),
		sessions: service.NewSessionManager(cfg.Session.TTL),
	}
}

func (a *App) initControllers(s *services, repos *repositories) *controllers {
	return &controllers{
		quiz:        controller.NewQuizController(s.quiz),
		leaderboard: controller.NewLeaderboardController(s.quiz),
		admin:       controller.NewAdminController(s.admin),
		health:      controller.NewHealthController(repos.questions, repos.results),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(cfg *config.Config) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		for range ticker.C {
			if removed := a.services.sessions.Sweep(time.Now()); removed > 0 {
				logger.Log.Debug("Swept expired sessions", zap.Int("removed", removed))
			}
		}
	}()

	if cfg.Quiz.WatchBank {
		go bankwatcher.Watch(cfg.Quiz.QuestionsFile, a.reloadQuestionBank)
	}
}

// reloadQuestionBank re-reads questions.xlsx after an external edit. A bad
// workbook keeps the previous snapshot active.
func (a *App) reloadQuestionBank() {
	total, err := a.repos.questions.Load()
	if err != nil {
		logger.Log.Error("Question bank reload failed, previous set stays active", zap.Error(err))
		return
	}
	monitoring.ActiveQuestions.Set(float64(total))
	logger.Log.Info("Question bank reloaded", zap.Int("total", total))
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	app := &App{Config: cfg}

	repos := app.initRepositories(cfg)
	app.repos = repos

	total, err := repos.questions.Load()
	switch {
	case err != nil:
		logger.Log.Error("Failed to load question bank, quiz is blocked until a valid upload", zap.Error(err))
	case total == 0:
		logger.Log.Warn("Question bank is empty or missing, quiz is blocked until questions exist",
			zap.String("file", cfg.Quiz.QuestionsFile))
	default:
		logger.Log.Info("Question bank loaded", zap.Int("total", total))
	}

	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services, repos)

	monitoring.Init()
	monitoring.ActiveQuestions.Set(float64(repos.questions.Count()))

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("prepzone-mock-test", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.registerRoutes(router, controllers)

	app.startBackgroundTasks(cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
