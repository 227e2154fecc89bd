package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/amoghdiagnostic/site-api/internal/api"
	"github.com/amoghdiagnostic/site-api/internal/core/service"
	"github.com/amoghdiagnostic/site-api/internal/infrastructure/config"
	mongodb "github.com/amoghdiagnostic/site-api/internal/infrastructure/db/mongo"
	redisdb "github.com/amoghdiagnostic/site-api/internal/infrastructure/db/redis"
	"github.com/amoghdiagnostic/site-api/internal/infrastructure/mail"
	"github.com/amoghdiagnostic/site-api/internal/infrastructure/storage/s3"
	"github.com/amoghdiagnostic/site-api/pkg/logger"
)

// @title Site API
// @version 1.0
// @description Backend for the business site: auth, events, products and careers.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index bootstrap failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer rdb.Close()

	mailer, err := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("smtp client failed")
	}

	storage, err := s3.New(ctx, s3.Config{
		Region:    cfg.S3.Region,
		Bucket:    cfg.S3.Bucket,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		Endpoint:  cfg.S3.Endpoint,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("object storage init failed")
	}

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	eventRepo := mongodb.NewEventRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	careerRepo := mongodb.NewCareerRepository(db)

	// --- Auth core ---
	hasher := service.NewBcryptHasher(0)
	tokens := service.NewJWTIssuer(cfg.JWTSecret, cfg.JWTTTL)
	otp := service.NewOTPManager(hasher, cfg.OTPTTL)
	cooldown := redisdb.NewCooldownStore(rdb, time.Minute)

	// --- Use-cases ---
	svc := api.Services{
		Auth:    service.NewAuthService(userRepo, hasher, tokens, otp, mailer, cooldown, log),
		Users:   service.NewUserService(userRepo, hasher, storage, log),
		Events:  service.NewEventService(eventRepo, storage, log),
		Product: service.NewProductService(productRepo, storage, log),
		Careers: service.NewCareerService(careerRepo, storage, log),
	}

	e := api.NewRouter(svc, tokens, userRepo, db, rdb, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
