package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/thereayou/geoguess/internal/config"
	"github.com/thereayou/geoguess/internal/database"
	"github.com/thereayou/geoguess/internal/handlers"
	"github.com/thereayou/geoguess/internal/logger"
	"github.com/thereayou/geoguess/internal/mailer"
	"github.com/thereayou/geoguess/internal/services"
	"github.com/thereayou/geoguess/internal/storage"
	"github.com/thereayou/geoguess/internal/websocket"
	"github.com/thereayou/geoguess/pkg/auth"
)

type Server struct {
	Config     *config.Config
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	Hub        *websocket.Hub
	Broker     *websocket.RedisBroker
	JWTManager *auth.JWTManager
}

func NewServer() *Server {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}
	logger.InitLogger(logger.ParseLevel(cfg.LogLevel))

	dbConn := &database.Database{}
	if err := dbConn.Connect(cfg.DatabaseURL, cfg.IsDebug()); err != nil {
		logger.Fatalf("database connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Fatalf("redis connect failed: %v", err)
	}

	files, uploadsDir, err := newFileStore(cfg.Storage)
	if err != nil {
		logger.Fatalf("file storage: %v", err)
	}

	jwtMgr := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTL)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	hub := websocket.NewHub()
	broker := websocket.NewRedisBroker(rdb, hub)

	authService := services.NewAuthService(dbConn, files, jwtMgr, hasher, cfg.Superuser)
	actionService := services.NewActionService(dbConn, broker)

	if !cfg.IsDebug() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	APIEndpoints(router, jwtMgr, Handlers{
		Auth:    handlers.NewAuthHandler(authService, mailer.NewLogMailer()),
		User:    handlers.NewUserHandler(authService, files),
		Action:  handlers.NewActionHandler(actionService, authService),
		Feed:    handlers.NewWebSocketHandler(hub, cfg.AllowedOrigins),
		Uploads: uploadsDir,
	})

	return &Server{
		Config:     cfg,
		Router:     router,
		DB:         dbConn,
		Redis:      rdb,
		Hub:        hub,
		Broker:     broker,
		JWTManager: jwtMgr,
	}
}

func newFileStore(cfg config.Storage) (storage.FileStore, string, error) {
	if cfg.Driver == config.StorageS3 {
		store, err := storage.NewS3Store(context.Background(), cfg)
		return store, "", err
	}

	store, err := storage.NewLocalStore(cfg.UploadsDir)
	if err != nil {
		return nil, "", err
	}
	return store, store.Dir(), nil
}

// Run блокируется до SIGINT/SIGTERM, затем корректно останавливает сервер
func (s *Server) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go s.Hub.Run()
	go func() {
		if err := s.Broker.Listen(ctx); err != nil {
			logger.Errorf("action feed subscription: %v", err)
		}
	}()

	srv := &http.Server{
		Addr:              ":" + s.Config.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Server starting on port %s", s.Config.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server run error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("http shutdown: %v", err)
	}
	s.Hub.Stop()
	if err := s.Redis.Close(); err != nil {
		logger.Errorf("redis close: %v", err)
	}
	if err := s.DB.Close(); err != nil {
		logger.Errorf("database close: %v", err)
	}
}
