package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"qa-warehouse-api-server/config"
	"qa-warehouse-api-server/internal/api/routes"
	"qa-warehouse-api-server/internal/auth"
	"qa-warehouse-api-server/internal/blockchain"
	"qa-warehouse-api-server/internal/database"
	"qa-warehouse-api-server/internal/notify"
	"qa-warehouse-api-server/internal/s3"
	"qa-warehouse-api-server/internal/service"
	"qa-warehouse-api-server/internal/socket"
	"qa-warehouse-api-server/internal/store"
	"qa-warehouse-api-server/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

// openStores returns the configured backend and a cleanup func.
func openStores(ctx context.Context, cfg config.Config, log *zap.Logger) (*store.Stores, func(), error) {
	if cfg.Store.Driver != "mongo" {
		log.Info("using in-memory store")
		return store.NewMemoryStores(), func() {}, nil
	}
	client, db, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		return nil, nil, err
	}
	if err := database.EnsureIndexes(ctx, db); err != nil {
		client.Disconnect(context.Background())
		return nil, nil, err
	}
	log.Info("connected to MongoDB", zap.String("db", cfg.Mongo.DBName))
	return store.NewMongoStores(db), func() { client.Disconnect(context.Background()) }, nil
}

func main() {
	// A missing .env is fine; the environment and config.yaml still apply.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		panic("could not load config: " + err.Error())
	}

	log, err := initLogger(cfg.Log)
	if err != nil {
		panic("could not init logger: " + err.Error())
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, closeStores, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open store", zap.Error(err))
	}
	defer closeStores()

	if cfg.Store.Seed {
		if _, err := database.Seed(ctx, stores, log); err != nil {
			log.Fatal("failed to seed store", zap.Error(err))
		}
	}

	hub := socket.NewHub(log)
	deps := service.Deps{
		Stores:       stores,
		Notifier:     notify.Multi{notify.LogNotifier{Log: log}, notify.HubNotifier{Hub: hub, Log: log}},
		Log:          log,
		Pages:        service.PageSizes(cfg.Pages),
		Policy:       workflow.ApprovalPolicy{RequireOverrideRemarks: cfg.QA.RequireOverrideRemarks},
		ReportPrefix: cfg.S3.ReportPrefix,
	}

	if cfg.S3.Enabled {
		uploader, err := s3.NewUploader(ctx, cfg.S3)
		if err != nil {
			log.Fatal("failed to init S3 uploader", zap.Error(err))
		}
		deps.Uploader = uploader
		log.Info("report publishing enabled", zap.String("bucket", cfg.S3.Bucket))
	}

	if cfg.Fabric.Enabled {
		fabricSetup, err := blockchain.Initialize(cfg.Fabric)
		if err != nil {
			log.Fatal("failed to initialize Fabric setup", zap.Error(err))
		}
		defer fabricSetup.Close()
		deps.Ledger = blockchain.NewLedger(fabricSetup)
		log.Info("stock movements mirrored to Fabric", zap.String("channel", cfg.Fabric.ChannelName))
	}

	issuer, err := auth.NewIssuer(cfg.JWT.Secret, cfg.JWT.Expiration)
	if err != nil {
		log.Fatal("failed to init token issuer", zap.Error(err))
	}
	deps.Issuer = issuer

	gin.SetMode(cfg.Server.Mode)
	router := routes.SetupRouter(routes.Deps{
		Services:       service.New(deps),
		Issuer:         issuer,
		Hub:            hub,
		Log:            log,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		StoreDriver:    cfg.Store.Driver,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
	}
	go func() {
		log.Info("starting API server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to run server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
