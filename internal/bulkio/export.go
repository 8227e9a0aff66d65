package bulkio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_reviews/internal/domain"
)

const exportTextLimit = 500

// ExportEnrichedCSV writes analyzed reviews to a flat CSV for reporting.
// Review text is truncated to 500 characters; reasons and tags are joined
// with "; ".
func ExportEnrichedCSV(recs []domain.AnalysisRecord, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"review_id", "hotel_id", "rating", "publish_decision",
		"rejection_reasons", "tags", "sentiment", "summary", "review_text",
	}); err != nil {
		return err
	}
	for _, rec := range recs {
		text := rec.ReviewText
		if r := []rune(text); len(r) > exportTextLimit {
			text = string(r[:exportTextLimit])
		}
		row := []string{
			rec.ReviewID,
			rec.HotelID,
			strconv.Itoa(rec.Rating),
			string(rec.PublishDecision),
			strings.Join(rec.RejectionReasons, "; "),
			strings.Join(rec.Tags, "; "),
			string(rec.Sentiment),
			rec.Summary,
			text,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	log.Info().Int("rows", len(recs)).Str("path", path).Msg("exported enriched reviews")
	return nil
}
