package app

import (
	"context"
	"time"

	"hotel_reviews/internal/domain"
)

// ReportService serves per-hotel summary reports with a cache-aside Redis
// layer; writes invalidate via the command services.
type ReportService struct {
	repo     domain.ReviewRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewReportService(r domain.ReviewRepository, c domain.Cache, ttl time.Duration) *ReportService {
	return &ReportService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *ReportService) Summary(ctx context.Context, hotelID string) (domain.SummaryReport, error) {
	key := summaryKey(hotelID)
	var out domain.SummaryReport
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}
	out, err := s.repo.Summary(ctx, hotelID)
	if err != nil {
		return domain.SummaryReport{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

type DBInfo struct {
	ReviewsRawCount      int64 `json:"reviews_raw_count"`
	ReviewsEnrichedCount int64 `json:"reviews_enriched_count"`
}

func (s *ReportService) DBInfo(ctx context.Context) (DBInfo, error) {
	raw, enriched, err := s.repo.Counts(ctx)
	if err != nil {
		return DBInfo{}, err
	}
	return DBInfo{ReviewsRawCount: raw, ReviewsEnrichedCount: enriched}, nil
}
