package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"

	"hotel_reviews/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

func (r *Repo) UpsertRaw(ctx context.Context, rv domain.RawReview) error {
	_, err := r.db.ExecContext(ctx, upsertRawSQL,
		rv.ReviewID,
		rv.HotelID,
		rv.Rating,
		rv.Text,
		valStr(rv.ReviewerName),
		valStr(rv.Source),
	)
	return err
}

func (r *Repo) UpsertEnriched(ctx context.Context, rec domain.AnalysisRecord) error {
	_, err := r.db.ExecContext(ctx, upsertEnrichedSQL,
		rec.ReviewID,
		rec.HotelID,
		rec.Rating,
		rec.ReviewText,
		string(rec.PublishDecision),
		mustJSON(rec.RejectionReasons),
		mustJSON(rec.Flags),
		rec.Summary,
		mustJSON(rec.Tags),
		string(rec.Sentiment),
		mustJSON(rec.DetectedSignals),
		valStr(rec.ModelName),
		valStr(rec.PromptVersion),
	)
	return err
}

func (r *Repo) Summary(ctx context.Context, hotelID string) (domain.SummaryReport, error) {
	out := domain.SummaryReport{
		HotelID:               hotelID,
		RejectionReasonCounts: map[string]int64{},
		TagDistribution:       map[string]int64{},
		SentimentDistribution: map[string]int64{},
	}

	if err := r.db.QueryRowContext(ctx, summaryTotalsSQL, hotelID).
		Scan(&out.TotalReviews, &out.PublishedCount); err != nil {
		return domain.SummaryReport{}, fmt.Errorf("summary totals: %w", err)
	}
	out.RejectedCount = out.TotalReviews - out.PublishedCount
	if out.TotalReviews > 0 {
		pct := float64(out.PublishedCount) / float64(out.TotalReviews) * 100
		out.PublishPercentage = math.Round(pct*100) / 100
	}

	rows, err := r.db.QueryContext(ctx, summarySentimentSQL, hotelID)
	if err != nil {
		return domain.SummaryReport{}, fmt.Errorf("summary sentiments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sentiment string
		var n int64
		if err := rows.Scan(&sentiment, &n); err != nil {
			return domain.SummaryReport{}, err
		}
		out.SentimentDistribution[sentiment] = n
	}
	if err := rows.Err(); err != nil {
		return domain.SummaryReport{}, err
	}

	if err := r.countJSONColumn(ctx, summaryReasonsSQL, hotelID, out.RejectionReasonCounts); err != nil {
		return domain.SummaryReport{}, fmt.Errorf("summary reasons: %w", err)
	}
	if err := r.countJSONColumn(ctx, summaryTagsSQL, hotelID, out.TagDistribution); err != nil {
		return domain.SummaryReport{}, fmt.Errorf("summary tags: %w", err)
	}

	return out, nil
}

// countJSONColumn tallies the string elements of a JSON-array column.
func (r *Repo) countJSONColumn(ctx context.Context, query, hotelID string, counts map[string]int64) error {
	rows, err := r.db.QueryContext(ctx, query, hotelID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var raw sql.NullString
		if err := rows.Scan(&raw); err != nil {
			return err
		}
		if !raw.Valid || raw.String == "" {
			continue
		}
		var items []string
		if err := json.Unmarshal([]byte(raw.String), &items); err != nil {
			continue // tolerate legacy rows with non-array payloads
		}
		for _, it := range items {
			counts[it]++
		}
	}
	return rows.Err()
}

func (r *Repo) Counts(ctx context.Context) (int64, int64, error) {
	var raw, enriched int64
	if err := r.db.QueryRowContext(ctx, countsSQL).Scan(&raw, &enriched); err != nil {
		return 0, 0, err
	}
	return raw, enriched, nil
}
