package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"market-pulse/internal/app"
	"market-pulse/internal/bot"
	"market-pulse/internal/config"
	"market-pulse/internal/handler"
	"market-pulse/internal/job"
	"market-pulse/internal/logging"
	"market-pulse/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	tele "gopkg.in/telebot.v3"

	_ "market-pulse/docs"
)

const serviceName = "market-pulse"

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	initTracerFunc         = tracing.InitTracer
	newBotFunc             = bot.NewBot
	newDigestServiceFunc   = app.NewDigestService
	newDigestJobFunc       = job.NewDigestJob
	startJobFunc           = func(j *job.DigestJob, ctx context.Context) { go j.Start(ctx) }
	startTelegramBotFunc   = bot.StartTelegramBot
	stopTelegramBotFunc    = func(b *tele.Bot) { b.Stop() }
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Market Pulse API
// @version         1.0
// @description     Daily market signal digest with OpenTelemetry tracing.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
func main() {
	_ = loadEnvFunc()

	cfg := loadConfigFunc()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Errorf("error shutting down tracer provider: %v", err)
		}
	}()

	tgBot, err := newBotFunc(cfg.TelegramBotToken)
	if err != nil {
		log.Errorf("Telegram disabled: %v", err)
		tgBot = nil
	}

	digests := newDigestServiceFunc(cfg, tracer, tgBot)

	digestJob := newDigestJobFunc(tracer, digests, cfg.DigestCron, cfg.DigestLocation, cfg.DigestRunOnStart)
	startJobFunc(digestJob, ctx)

	if tgBot != nil {
		bot.Register(tgBot, digests)
		startTelegramBotFunc(tgBot)
		defer stopTelegramBotFunc(tgBot)
	}

	h := newHandlerFunc(tracer, digests)

	r := newRouterFunc()
	r.Use(otelgin.Middleware(serviceName))
	h.RegisterRoutes(r, cfg.APIKey)
	registerSwagger(r)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Info("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Info("Server exiting")
}

func registerSwagger(r *gin.Engine) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
