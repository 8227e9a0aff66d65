package domain

import "context"

// ChatCompleter is the generative-model capability. Implementations must be
// safe for concurrent use; the same client is shared across analyses.
type ChatCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type ReviewRepository interface {
	// Write paths
	UpsertRaw(ctx context.Context, rv RawReview) error
	UpsertEnriched(ctx context.Context, rec AnalysisRecord) error

	// Read paths
	Summary(ctx context.Context, hotelID string) (SummaryReport, error)
	Counts(ctx context.Context) (raw int64, enriched int64, err error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// SummaryReport aggregates a hotel's analyzed reviews.
type SummaryReport struct {
	HotelID               string           `json:"hotel_id"`
	TotalReviews          int64            `json:"total_reviews"`
	PublishedCount        int64            `json:"published_count"`
	RejectedCount         int64            `json:"rejected_count"`
	PublishPercentage     float64          `json:"publish_percentage"`
	RejectionReasonCounts map[string]int64 `json:"rejection_reason_counts"`
	TagDistribution       map[string]int64 `json:"tag_distribution"`
	SentimentDistribution map[string]int64 `json:"sentiment_distribution"`
}
