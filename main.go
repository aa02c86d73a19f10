package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/talentmatch/backend/agent"
	"github.com/talentmatch/backend/config"
	_ "github.com/talentmatch/backend/docs"
	"github.com/talentmatch/backend/extract"
	"github.com/talentmatch/backend/filter"
	"github.com/talentmatch/backend/gemini"
	"github.com/talentmatch/backend/handlers"
	"github.com/talentmatch/backend/matching"
	"github.com/talentmatch/backend/mcp"
	"github.com/talentmatch/backend/session"
	"github.com/talentmatch/backend/storage"
	"github.com/talentmatch/backend/tenure"
	"github.com/talentmatch/backend/tools"
)

// @title TalentMatch API
// @version 1.0
// @description Conversational candidate search backend with progressive filtering, semantic matching and tenure analysis.

// @contact.name API Support
// @contact.email support@talentmatch.dev

// @host localhost:8080
// @BasePath /api

func main() {
	// Load .env file if present (for local development)
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	logger := newLogger(cfg.Debug)
	defer logger.Sync()
	sugar := logger.Sugar()

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	sugar.Info("initializing firestore client")
	firestoreClient, err := storage.NewFirestoreClient(ctx, cfg)
	if err != nil {
		sugar.Fatalw("failed to initialize firestore client", "error", err)
	}
	defer firestoreClient.Close()

	sugar.Info("initializing gemini client")
	geminiClient, err := gemini.NewClient(ctx, cfg, sugar)
	if err != nil {
		sugar.Fatalw("failed to initialize gemini client", "error", err)
	}
	defer geminiClient.Close()

	// Model extraction first, keyword heuristics as the degraded path.
	extractor := extract.NewChain(sugar, geminiClient, extract.NewKeywordExtractor())

	sessions := newSessionStore(cfg, sugar)
	engine := matching.NewEngine(matching.DefaultWeights, geminiClient, sugar)
	analyzer := tenure.NewAnalyzer(tenure.DefaultPolicy)

	searchFilter := filter.New(firestoreClient, sessions, extractor, engine, filter.Options{
		MinScoreFloor: cfg.MinScoreFloor,
		MaxConcurrent: cfg.MaxConcurrentScoring,
		MaxMatches:    cfg.MaxMatchesReturned,
	}, sugar).WithTenure(analyzer)

	registry := tools.NewToolRegistry()
	registry.Register(tools.NewProgressiveSearchTool(searchFilter))
	registry.Register(tools.NewAnalyzeTenureTool(firestoreClient, analyzer))
	registry.Register(tools.NewGetDetailsTool(firestoreClient))
	registry.Register(tools.NewResetSearchTool(searchFilter))

	loop := agent.NewLoop(geminiClient, registry, cfg.MaxToolCycles, sugar)
	mcpServer := mcp.NewServer(registry, sugar)

	searchHandler := handlers.NewSearchHandler(searchFilter, loop, firestoreClient, sugar)
	candidateHandler := handlers.NewCandidateHandler(firestoreClient, analyzer, registry, sugar)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", handlers.Health)

	api := router.Group("/api")
	{
		agentGroup := api.Group("/agent")
		{
			agentGroup.POST("/search", searchHandler.Search)
			agentGroup.POST("/chat", searchHandler.Chat)
			agentGroup.POST("/reset", searchHandler.Reset)
		}

		api.GET("/candidates/:id", candidateHandler.GetCandidate)
		api.GET("/candidates/:id/tenure", candidateHandler.GetTenure)
		api.POST("/company/profile", searchHandler.SetCompanyProfile)
		api.GET("/tools", candidateHandler.ListTools)

		// MCP endpoints for external AI agents
		mcpServer.RegisterRoutes(api)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sugar.Infow("starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sugar.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Fatalw("server forced to shutdown", "error", err)
	}

	sugar.Info("server exited gracefully")
}

func newLogger(debug bool) *zap.Logger {
	if debug {
		logger, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		return logger
	}
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return logger
}

// newSessionStore picks Redis when configured, in-process memory otherwise.
func newSessionStore(cfg *config.Config, logger *zap.SugaredLogger) session.Store {
	if cfg.RedisAddr == "" {
		logger.Info("using in-memory session store")
		return session.NewMemoryStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	logger.Infow("using redis session store", "addr", cfg.RedisAddr)
	return session.NewRedisStore(client, time.Duration(cfg.SessionTTLMinutes)*time.Minute)
}
