package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/philippgille/chromem-go"

	"gemini-rag/internal/api"
	"gemini-rag/internal/config"
	"gemini-rag/internal/embedding"
	"gemini-rag/internal/llm"
	"gemini-rag/internal/rag"
	"gemini-rag/internal/vectorstore"
	"gemini-rag/pkg/logger"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Init(logger.ParseLevel("info"))
		logger.New("rag-backend").WithError(err).Fatal("failed to load config")
	}

	logger.Init(logger.ParseLevel(cfg.Logger.Level))
	appLogger := logger.New("rag-backend")
	appLogger.Info("starting RAG backend")

	ctx := context.Background()

	// Embedding function for the vector store. A missing credential is a
	// degradation, not a startup failure.
	var embedFn chromem.EmbeddingFunc
	embedder, err := embedding.New(ctx, cfg.Embedding)
	if err != nil {
		appLogger.WithError(err).Fatal("failed to initialize embedding client")
	}
	if embedder != nil {
		embedFn = embedding.ChromemFunc(embedder)
	} else {
		appLogger.Warn("no embedding credential configured; the store falls back to local text similarity")
	}

	// Vector store gateway: tries persistent then in-memory; an
	// unavailable gateway is recorded once and reported per request.
	store := vectorstore.Open(cfg.Store, embedFn, appLogger)

	// Generation client: a missing credential leaves the generator
	// unavailable but keeps the process (and the health endpoint) alive.
	var llmClient llm.LLM
	client, err := llm.NewClient(ctx, cfg.LLM)
	switch {
	case err == nil:
		llmClient = client
	case errors.Is(err, llm.ErrMissingAPIKey):
		appLogger.Warn("generation API credential missing; /query will fail until the service is reconfigured")
	default:
		appLogger.WithError(err).Fatal("failed to initialize generation client")
	}
	generator := rag.NewAnswerGenerator(llmClient, cfg.LLM.Timeout(), appLogger)

	svc := rag.NewService(store, generator, cfg.Store.TopK, cfg.Store.Timeout(), appLogger)

	llmModel := cfg.LLM.Gemini.Model
	if cfg.LLM.Provider == "openai" {
		llmModel = cfg.LLM.OpenAI.Model
	}
	handler := api.NewHandler(svc, store, generator, cfg.LLM.Provider, llmModel, cfg.Embedding.Provider, appLogger)
	router := api.NewRouter(handler, cfg.Middleware, appLogger)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		appLogger.Info("HTTP server listening at " + cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.WithError(err).Fatal("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("forced shutdown")
	}
	appLogger.Info("server stopped")
}
