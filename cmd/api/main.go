package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"job-board-backend/config"
	"job-board-backend/internal/delivery/http/middleware"
	v1 "job-board-backend/internal/delivery/http/v1"
	"job-board-backend/internal/domain"
	"job-board-backend/internal/repository/memory"
	"job-board-backend/internal/repository/postgres"
	"job-board-backend/internal/usecase"
	"job-board-backend/pkg/auth"
	"job-board-backend/pkg/database"
	"job-board-backend/pkg/logger"
	"job-board-backend/pkg/redis"
	"job-board-backend/pkg/security"
)

// repositories is the storage backend chosen at startup.
type repositories struct {
	users        domain.UserRepository
	companies    domain.CompanyRepository
	vacancies    domain.VacancyRepository
	resumes      domain.ResumeRepository
	applications domain.ApplicationRepository
	favorites    domain.FavoriteRepository
	health       func(ctx context.Context) error
	close        func()
}

// @title           Job Board API
// @version         1.0
// @description     Vacancies, resumes, applications and favorites.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting job board backend", "port", cfg.Port, "storage", cfg.StorageDriver)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Setup Storage
	repos, err := openStorage(ctx, cfg)
	if err != nil {
		logger.Log.Error("Failed to open storage", "error", err)
		os.Exit(1)
	}
	defer repos.close()

	// 4. Setup Redis (optional)
	redisClient, err := redis.Connect(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
		logger.Log.Warn("Redis not configured, using in-memory token blacklist and rate limiting")
	case err != nil:
		logger.Log.Warn("Redis unavailable, using in-memory token blacklist and rate limiting", "error", err)
	default:
		defer redisClient.Close()
	}

	var blacklist auth.Blacklist
	if redisClient != nil {
		blacklist = auth.NewRedisBlacklist(redisClient)
	} else {
		blacklist = auth.NewMemoryBlacklist()
	}

	// 5. Setup Security
	auditLogger := security.NewAuditLogger("job-board-backend", gin.Mode())
	defer func() { _ = auditLogger.Sync() }()

	rateLimiter := middleware.NewRateLimiter(redisClient, auditLogger)
	if redisClient == nil {
		rateLimiter.StartJanitor(ctx, time.Minute)
	}

	loginTracker := security.NewLoginTracker(redisClient, security.LoginTrackerConfig{
		MaxAttempts:   cfg.LoginMaxAttempts,
		AttemptWindow: time.Duration(cfg.LoginBlockMinutes) * time.Minute,
		BlockDuration: time.Duration(cfg.LoginBlockMinutes) * time.Minute,
	}, auditLogger)

	// 6. Setup UseCases
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authUC := usecase.NewAuthUsecase(repos.users, issuer, blacklist)
	profileUC := usecase.NewProfileUsecase(repos.users, repos.resumes, repos.vacancies, repos.applications)
	companyUC := usecase.NewCompanyUsecase(repos.companies, repos.vacancies)
	vacancyUC := usecase.NewVacancyUsecase(repos.vacancies, repos.companies)
	resumeUC := usecase.NewResumeUsecase(repos.resumes)
	applicationUC := usecase.NewApplicationUsecase(repos.applications, repos.vacancies, repos.resumes)
	favoriteUC := usecase.NewFavoriteUsecase(repos.favorites, repos.vacancies)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		ProfileUC:     profileUC,
		CompanyUC:     companyUC,
		VacancyUC:     vacancyUC,
		ResumeUC:      resumeUC,
		ApplicationUC: applicationUC,
		FavoriteUC:    favoriteUC,
		Config:        cfg,
		Logger:        logger.Log,
		AuditLogger:   auditLogger,
		RateLimiter:   rateLimiter,
		LoginTracker:  loginTracker,
		HealthCheck:   repos.health,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			stop()
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

func openStorage(ctx context.Context, cfg *config.Config) (*repositories, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		logger.Log.Warn("Using in-memory storage; data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			users:        store.Users(),
			companies:    store.Companies(),
			vacancies:    store.Vacancies(),
			resumes:      store.Resumes(),
			applications: store.Applications(),
			favorites:    store.Favorites(),
			close:        func() {},
		}, nil
	}

	if cfg.RunMigrations {
		if err := database.RunMigrations(ctx, cfg.DBUrl); err != nil {
			return nil, err
		}
		logger.Log.Info("Database migrations applied")
	}

	pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		return nil, err
	}
	return &repositories{
		users:        postgres.NewUserRepository(pool),
		companies:    postgres.NewCompanyRepository(pool),
		vacancies:    postgres.NewVacancyRepository(pool),
		resumes:      postgres.NewResumeRepository(pool),
		applications: postgres.NewApplicationRepository(pool),
		favorites:    postgres.NewFavoriteRepository(pool),
		health:       pool.Ping,
		close:        pool.Close,
	}, nil
}
