package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/config"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/api/handlers"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/api/middleware"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/api/routes"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/cache"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/extractor"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/logger"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/realtime"
	mongorepo "github.com/LifeIsCold/Intelligent-Recruitment-System/internal/repositories/mongo"
	pgrepo "github.com/LifeIsCold/Intelligent-Recruitment-System/internal/repositories/postgres"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/services"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/storage"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/utils"
)

func main() {
	cfg := config.LoadApp()
	log := logger.New("gin-server")

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init PostgreSQL
	if err := config.InitPostgres(); err != nil {
		log.WithError(err).Fatal("PostgreSQL init error")
	}
	if err := config.MigratePostgres(); err != nil {
		log.WithError(err).Fatal("PostgreSQL migration error")
	}
	log.Info("PostgreSQL connected")
	db := config.PostgresDB

	// Init Redis (optional)
	if err := config.InitRedis(); err != nil {
		log.WithError(err).Fatal("Redis init error")
	}
	var (
		statsCache cache.Cache
		bus        realtime.Broadcaster
	)
	if config.RedisClient != nil {
		statsCache = cache.NewRedisCache(config.RedisClient, "recruitment:")
		bus = realtime.NewRedisBroadcaster(config.RedisClient)
		log.Info("Redis connected")
	} else {
		statsCache = cache.NewMemory()
		bus = realtime.NewLocalBroadcaster()
		log.Warn("REDIS_ADDR not set; stats cache and broadcasts stay in-process")
	}

	// Init MongoDB (optional)
	if err := config.InitMongo(); err != nil {
		log.WithError(err).Fatal("MongoDB init error")
	}
	var events mongorepo.IngestionEventRepository
	if mdb := config.MongoDatabase(cfg.MongoDB); mdb != nil {
		if err := config.EnsureMongoIndexes(mdb); err != nil {
			log.WithError(err).Fatal("MongoDB index error")
		}
		events = mongorepo.NewIngestionEventRepo(mdb)
		log.Info("MongoDB connected")
	} else {
		log.Warn("MONGO_URI not set; ingestion audit disabled")
	}

	uploader, closeStorage, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		log.WithError(err).Fatal("storage init error")
	}
	defer closeStorage()
	log.WithField("driver", cfg.Storage.Driver).Info("storage ready")

	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	// repositories
	tx := pgrepo.NewGormTxRunner(db)
	userRepo := pgrepo.NewUserRepo(db)
	companyRepo := pgrepo.NewCompanyRepo(db)
	jobRepo := pgrepo.NewJobRepo(db)
	applicationRepo := pgrepo.NewApplicationRepo(db)
	cvRepo := pgrepo.NewCVRepo(db)
	skillRepo := pgrepo.NewSkillRepo(db)
	industryRepo := pgrepo.NewIndustryRepo(db)
	siteStatRepo := pgrepo.NewSiteStatRepo(db)

	// services
	statsSvc := services.NewSiteStatService(siteStatRepo, statsCache, bus, cfg.StatsCacheTTL, log)
	hooks := services.NewStatsHooks(statsSvc, log)
	userSvc := services.NewUserService(tx, userRepo, companyRepo, industryRepo, tokens, hooks)
	companySvc := services.NewCompanyService(companyRepo, industryRepo, hooks)
	industrySvc := services.NewIndustryService(industryRepo)
	jobSvc := services.NewJobService(jobRepo, companyRepo, userRepo, hooks)
	applicationSvc := services.NewApplicationService(applicationRepo, jobRepo, cvRepo, userRepo, hooks)
	skillSvc := services.NewSkillService(tx, skillRepo)
	matchSvc := services.NewMatchService(cvRepo, jobRepo)
	cvSvc := services.NewCVService(services.CVDeps{
		Tx:        tx,
		CVs:       cvRepo,
		Skills:    skillRepo,
		Uploader:  uploader,
		Extractor: extractor.NewDefault(),
		Events:    events,
		SignTTL:   cfg.Storage.SignedURLExpiry,
		Log:       log,
	})

	gin.SetMode(gin.ReleaseMode)
	if log.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxUploadBytes
	r.Use(middleware.Recovery(log), middleware.RequestLogger(log), corsMiddleware(cfg.CORSOrigins))

	routes.RegisterRoutes(r, routes.Deps{
		Tokens:      tokens,
		Auth:        handlers.NewAuthHandler(userSvc),
		CV:          handlers.NewCVHandler(cvSvc, cfg.MaxUploadBytes),
		Skill:       handlers.NewSkillHandler(skillSvc),
		Industry:    handlers.NewIndustryHandler(industrySvc),
		Stats:       handlers.NewStatsHandler(statsSvc),
		Company:     handlers.NewCompanyHandler(companySvc),
		Job:         handlers.NewJobHandler(jobSvc, applicationSvc),
		Application: handlers.NewApplicationHandler(applicationSvc, matchSvc),
		WS:          handlers.NewWSHandler(statsSvc, bus, cfg.CORSOrigins, log),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("port", cfg.Port).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("server stopped with error")
	}

	if config.MongoClient != nil {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = config.MongoClient.Disconnect(dctx)
		cancel()
	}
	if config.RedisClient != nil {
		_ = config.RedisClient.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func openStorage(ctx context.Context, cfg config.Storage) (storage.Uploader, func(), error) {
	switch cfg.Driver {
	case "gcs":
		if cfg.GCSBucket == "" {
			return nil, nil, errors.New("GCS_BUCKET is required for the gcs storage driver")
		}
		u, err := storage.NewGCSUploader(ctx, cfg.GCSBucket, storage.GCSOptions(cfg.GCSCredentials, cfg.GCSEndpoint)...)
		if err != nil {
			return nil, nil, err
		}
		return u, func() { _ = u.Close() }, nil
	default:
		u, err := storage.NewLocalUploader(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		return u, func() {}, nil
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cc.AllowAllOrigins = true
		cc.AllowCredentials = false
	} else {
		cc.AllowOrigins = origins
	}
	return cors.New(cc)
}
