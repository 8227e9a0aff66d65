package main

import (
	"context"
	"database/sql"
	"flag"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hotel_reviews/internal/adapters/groq"
	"hotel_reviews/internal/adapters/observability"
	redisad "hotel_reviews/internal/adapters/redis"
	"hotel_reviews/internal/app"
	"hotel_reviews/internal/domain"
	"hotel_reviews/internal/moderation"
	"hotel_reviews/internal/shared"
	mysqlrepo "hotel_reviews/internal/storage/mysql"
)

func main() {
	var (
		hotelID = flag.String("hotel", "", "hotel id the reviews belong to")
		format  = flag.String("format", "jsonl", "input format: jsonl, csv or json")
		file    = flag.String("file", "", "path to the input file")
	)
	flag.Parse()

	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	if *hotelID == "" || *file == "" {
		log.Fatal().Msg("usage: bulkanalyze -hotel HOTEL_001 -file reviews.jsonl [-format jsonl|csv|json]")
	}

	log.Info().
		Str("hotel", *hotelID).
		Str("file", *file).
		Int("workers", cfg.Workers).
		Msg("bulk analyzer starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	var completer domain.ChatCompleter
	if cfg.GroqKey != "" {
		client, err := groq.New(cfg.GroqBase, cfg.GroqKey, cfg.LLMModel, cfg.LLMTemp, cfg.LLMTokens, cfg.LLMRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Groq client")
		}
		completer = client
	}
	engine := moderation.NewEngine(completer, cfg.LLMModel)

	bulk := app.NewBulkService(engine, repo, cache, cfg.Workers, cfg.ExportDir)
	res, err := bulk.Run(ctx, app.BulkRequest{
		HotelID:     *hotelID,
		InputFormat: *format,
		InputPath:   *file,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("bulk analysis failed")
	}

	log.Info().
		Int("total", res.TotalReviews).
		Int("published", res.PublishedCount).
		Int("rejected", res.RejectedCount).
		Int("stored", res.DBRowsInserted).
		Str("csv", res.CSVOutputPath).
		Msg("bulk analysis done")
}
