// File: glambook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"glambook/agent/engine"
	"glambook/agent/extract"
	"glambook/config"
	"glambook/cron"
	"glambook/database"
	bookingRepoPkg "glambook/database/repository/booking"
	knowledgeRepoPkg "glambook/database/repository/knowledge"
	"glambook/handlers"
	"glambook/routes"
	agentSvc "glambook/services/agent"
	ai "glambook/services/intelligence"
	"glambook/services/otp"
	"glambook/services/session"
	"glambook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	zap.ReplaceGlobals(logger)

	database.InitDB()
	utils.InitSessionCache()
	utils.InitOTPCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	knowledgeRepo := knowledgeRepoPkg.NewMongoKnowledgeRepo()

	// intelligence (optional: the agent degrades to canned answers and
	// local address extraction without a model key).
	var knowledgeSvc *ai.KnowledgeService
	var resolver extract.AddressResolver
	var answerer engine.KnowledgeAnswerer
	if config.AppConfig.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
		}
		knowledgeSvc = ai.NewKnowledgeService(gemini, knowledgeRepo, logger)
		resolver = knowledgeSvc
		answerer = knowledgeSvc
	} else {
		logger.Warn("main: no Gemini API key configured, running without model assistance")
	}

	// conversation engine.
	orchestrator := extract.NewOrchestrator(resolver, logger)
	otpService := otp.NewService(
		otp.RedisKV{Client: utils.GetOTPClient()},
		otp.LogSender{Logger: logger},
		time.Duration(config.AppConfig.OTPExpiryMinutes)*time.Minute,
		config.AppConfig.OTPMaxAttempts,
		logger,
	)
	fsm := engine.NewFSM(orchestrator, answerer, otpService, bookingRepo, logger, config.AppConfig.MaxOffTrackMsgs)

	// Verified bookings get a day-before reminder via the worker queue.
	reminders := cron.NewEnqueuer()
	defer reminders.Close()
	fsm.Reminders = reminders

	sessionStore := session.NewRedisStore(
		utils.GetSessionClient(),
		time.Duration(config.AppConfig.SessionTTLMinutes)*time.Minute,
	)
	agentService := agentSvc.NewDefaultAgentService(sessionStore, fsm, logger)

	agentHandler := handlers.NewAgentHandler(agentService)
	adminHandler := handlers.NewAdminHandler(bookingRepo, knowledgeRepo)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Agent endpoints.
		ChatHandler:       agentHandler.ChatHandler,
		VerifyOTPHandler:  agentHandler.VerifyOTPHandler,
		ResendOTPHandler:  agentHandler.ResendOTPHandler,
		GetSessionHandler: agentHandler.GetSessionHandler,
		EndSessionHandler: agentHandler.EndSessionHandler,

		// Catalog endpoint.
		ServicesHandler: handlers.ServicesHandler,

		// Admin endpoints.
		AdminLoginHandler:          adminHandler.LoginHandler,
		ListBookingsHandler:        adminHandler.ListBookingsHandler,
		GetBookingHandler:          adminHandler.GetBookingHandler,
		UpdateBookingStatusHandler: adminHandler.UpdateBookingStatusHandler,
		ListKnowledgeHandler:       adminHandler.ListKnowledgeHandler,
		CreateKnowledgeHandler:     adminHandler.CreateKnowledgeHandler,
		UpdateKnowledgeHandler:     adminHandler.UpdateKnowledgeHandler,
		DeleteKnowledgeHandler:     adminHandler.DeleteKnowledgeHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background worker: session sweeps and booking reminders.
	cron.InitAgentWorker(sessionStore, bookingRepo, otp.LogSender{Logger: logger})

	// Health monitor over the Redis clients and Mongo.
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetSessionClient(), utils.GetOTPClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
