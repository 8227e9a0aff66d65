package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_reviews/internal/bulkio"
	"hotel_reviews/internal/domain"
	"hotel_reviews/internal/moderation"
)

func summaryKey(hotelID string) string { return fmt.Sprintf("summary:%s", hotelID) }

// newReviewID mints "<hotelID>_<n hex chars>" like the original submission
// flow did.
func newReviewID(hotelID string, hexLen int) string {
	h := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s_%s", hotelID, h[:hexLen])
}

// AnalysisService moderates single submitted reviews and persists the result.
type AnalysisService struct {
	engine *moderation.Engine
	repo   domain.ReviewRepository
	cache  domain.Cache
}

func NewAnalysisService(e *moderation.Engine, r domain.ReviewRepository, c domain.Cache) *AnalysisService {
	return &AnalysisService{engine: e, repo: r, cache: c}
}

type AnalyzeRequest struct {
	HotelID      string
	Rating       int
	Text         string
	ReviewerName string
	Source       string
}

// AnalyzeOne runs the moderation engine on one review, stores the enriched
// record and invalidates the hotel's cached summary. The engine itself never
// fails; only persistence can error.
func (s *AnalysisService) AnalyzeOne(ctx context.Context, req AnalyzeRequest) (domain.AnalysisRecord, error) {
	reviewID := newReviewID(req.HotelID, 12)

	rec := s.engine.Analyze(ctx, reviewID, req.HotelID, req.Rating, req.Text)

	if err := s.repo.UpsertEnriched(ctx, rec); err != nil {
		return domain.AnalysisRecord{}, fmt.Errorf("store enriched review %s: %w", reviewID, err)
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, summaryKey(req.HotelID))
	}

	log.Info().
		Str("review_id", reviewID).
		Str("hotel_id", req.HotelID).
		Str("decision", string(rec.PublishDecision)).
		Msg("review analyzed")
	return rec, nil
}

// BulkService imports a review file and analyzes every valid row with
// bounded parallelism.
type BulkService struct {
	engine    *moderation.Engine
	repo      domain.ReviewRepository
	cache     domain.Cache
	workers   int
	exportDir string
}

func NewBulkService(e *moderation.Engine, r domain.ReviewRepository, c domain.Cache, workers int, exportDir string) *BulkService {
	if workers <= 0 {
		workers = 1
	}
	if exportDir == "" {
		exportDir = "exports"
	}
	return &BulkService{engine: e, repo: r, cache: c, workers: workers, exportDir: exportDir}
}

type BulkRequest struct {
	HotelID     string
	InputFormat string
	InputPath   string
}

type BulkResult struct {
	TotalReviews          int     `json:"total_reviews"`
	PublishedCount        int     `json:"published_count"`
	RejectedCount         int     `json:"rejected_count"`
	DBRowsInserted        int     `json:"db_rows_inserted"`
	CSVOutputPath         string  `json:"csv_output_path"`
	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`
}

func (s *BulkService) Run(ctx context.Context, req BulkRequest) (BulkResult, error) {
	start := time.Now()

	imported, err := bulkio.ImportFile(req.InputPath, req.InputFormat)
	if err != nil {
		return BulkResult{}, err
	}

	valid := make([]bulkio.Record, 0, len(imported))
	for _, rec := range imported {
		if rec.HotelID == "" {
			rec.HotelID = req.HotelID
		}
		if rec.ReviewID == "" {
			rec.ReviewID = newReviewID(req.HotelID, 8)
		}
		if err := bulkio.Validate(rec); err != nil {
			log.Warn().Err(err).Str("review_id", rec.ReviewID).Msg("skipping invalid review")
			continue
		}
		valid = append(valid, rec)
	}
	if len(valid) == 0 {
		return BulkResult{}, fmt.Errorf("no valid reviews found in %s", req.InputPath)
	}
	log.Info().Int("count", len(valid)).Str("file", req.InputPath).Msg("importing reviews")

	// Raw rows first, best-effort: a storage hiccup on one row must not
	// block the analysis pass.
	for _, rec := range valid {
		raw := domain.RawReview{
			ReviewID:     rec.ReviewID,
			HotelID:      req.HotelID,
			Rating:       int(rec.Rating),
			Text:         rec.ReviewText,
			ReviewerName: rec.ReviewerName,
			Source:       rec.Source,
		}
		if raw.ReviewerName == "" {
			raw.ReviewerName = "Anonymous"
		}
		if raw.Source == "" {
			raw.Source = "internal"
		}
		if err := s.repo.UpsertRaw(ctx, raw); err != nil {
			log.Warn().Err(err).Str("review_id", rec.ReviewID).Msg("failed to store raw review")
		}
	}

	// Reviews are independent; only the model's rate limit constrains
	// parallelism, and that lives inside the shared client.
	results := make([]domain.AnalysisRecord, len(valid))
	var inserted int64
	sem := semaphore.NewWeighted(int64(s.workers))
	var wg sync.WaitGroup

	for i, rec := range valid {
		if err := sem.Acquire(ctx, 1); err != nil {
			return BulkResult{}, err
		}
		wg.Add(1)
		go func(i int, rec bulkio.Record) {
			defer wg.Done()
			defer sem.Release(1)

			out := s.engine.Analyze(ctx, rec.ReviewID, req.HotelID, int(rec.Rating), rec.ReviewText)
			results[i] = out
			if err := s.repo.UpsertEnriched(ctx, out); err != nil {
				log.Error().Err(err).Str("review_id", rec.ReviewID).Msg("failed to store enriched review")
				return
			}
			atomic.AddInt64(&inserted, 1)
		}(i, rec)
	}
	wg.Wait()

	res := BulkResult{
		TotalReviews:   len(results),
		DBRowsInserted: int(atomic.LoadInt64(&inserted)),
	}
	for _, rec := range results {
		if rec.PublishDecision == domain.DecisionPublish {
			res.PublishedCount++
		} else {
			res.RejectedCount++
		}
	}

	csvPath := fmt.Sprintf("%s/reviews_enriched.csv", s.exportDir)
	if err := bulkio.ExportEnrichedCSV(results, csvPath); err != nil {
		return BulkResult{}, fmt.Errorf("export enriched CSV: %w", err)
	}
	res.CSVOutputPath = csvPath

	if s.cache != nil {
		_ = s.cache.Del(ctx, summaryKey(req.HotelID))
	}

	res.ProcessingTimeSeconds = time.Since(start).Seconds()
	log.Info().
		Int("total", res.TotalReviews).
		Int("published", res.PublishedCount).
		Int("rejected", res.RejectedCount).
		Float64("seconds", res.ProcessingTimeSeconds).
		Msg("bulk analysis completed")
	return res, nil
}
