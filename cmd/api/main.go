package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hotel_reviews/internal/adapters/groq"
	server "hotel_reviews/internal/adapters/http_server"
	"hotel_reviews/internal/adapters/observability"
	redisad "hotel_reviews/internal/adapters/redis"
	"hotel_reviews/internal/app"
	"hotel_reviews/internal/domain"
	"hotel_reviews/internal/moderation"
	"hotel_reviews/internal/shared"
	mysqlrepo "hotel_reviews/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// One shared model client for the whole process; without a key the
	// engine degrades every analysis to the pattern-only fallback.
	var completer domain.ChatCompleter
	if cfg.GroqKey != "" {
		client, err := groq.New(cfg.GroqBase, cfg.GroqKey, cfg.LLMModel, cfg.LLMTemp, cfg.LLMTokens, cfg.LLMRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Groq client")
		}
		completer = client
	}
	engine := moderation.NewEngine(completer, cfg.LLMModel)

	analysis := app.NewAnalysisService(engine, repo, cache)
	bulk := app.NewBulkService(engine, repo, cache, cfg.Workers, cfg.ExportDir)
	reports := app.NewReportService(repo, cache, cfg.CacheTTL)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Analysis: analysis, Bulk: bulk, Reports: reports})

	log.Info().Str("addr", cfg.HTTPAddr).Str("model", cfg.LLMModel).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
