package moderation

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_reviews/internal/adapters/observability"
	"hotel_reviews/internal/domain"
)

// fallbackFlag marks records produced without any model signal so downstream
// consumers can tell degraded analyses apart.
const fallbackFlag = "llm_analysis_failed"

const defaultCallTimeout = 30 * time.Second

// Engine is the moderation decision engine. One Engine is built at process
// start with a shared model client and used concurrently by all callers; it
// keeps no per-review state.
type Engine struct {
	client  domain.ChatCompleter
	model   string
	timeout time.Duration
}

// NewEngine builds an engine around client. A nil client is allowed and
// routes every analysis through the pattern-only fallback path.
func NewEngine(client domain.ChatCompleter, modelName string) *Engine {
	return &Engine{client: client, model: modelName, timeout: defaultCallTimeout}
}

// Analyze runs the full pipeline for one review. It never returns an error:
// every failure mode degrades to a decision-bearing record.
func (e *Engine) Analyze(ctx context.Context, reviewID, hotelID string, rating int, text string) domain.AnalysisRecord {
	out, err := e.extract(ctx, rating, text)
	if err != nil {
		if !errors.Is(err, ErrUnavailable) {
			log.Error().Err(err).Str("review_id", reviewID).Msg("extraction failed unrecoverably")
		}
		rec := e.fallback(reviewID, hotelID, rating, text)
		observability.ObserveAnalysis(string(rec.PublishDecision), "fallback")
		return rec
	}

	// Regex evidence is additive and authoritative over the model.
	signals := Detect(text, out.Signals)

	sentiment := ReconcileSentiment(signals.Sentiment, rating)

	decision, reasons := Decide(signals)

	flags := append([]string{}, out.Flags...)
	if signals.TooShort && !contains(flags, "too_short") {
		flags = append(flags, "too_short")
	}

	tags := SynthesizeTags(signals, out.TopicTags, sentiment)

	observability.ObserveAnalysis(string(decision), "model")

	return domain.AnalysisRecord{
		ReviewID:         reviewID,
		HotelID:          hotelID,
		Rating:           rating,
		ReviewText:       text,
		Summary:          signals.Summary,
		Sentiment:        sentiment,
		PublishDecision:  decision,
		RejectionReasons: reasons,
		Tags:             tags,
		DetectedSignals:  signals,
		Flags:            flags,
		ModelName:        e.model,
		PromptVersion:    PromptVersion,
	}
}

// fallback produces a safe record from the pattern matcher alone. The publish
// decision stays policy-correct; sentiment is forced neutral and the summary
// is a naive truncation.
func (e *Engine) fallback(reviewID, hotelID string, rating int, text string) domain.AnalysisRecord {
	signals := Detect(text, domain.DefaultSignals())
	decision, reasons := Decide(signals)

	return domain.AnalysisRecord{
		ReviewID:         reviewID,
		HotelID:          hotelID,
		Rating:           rating,
		ReviewText:       text,
		Summary:          naiveSummary(text),
		Sentiment:        domain.SentimentNeutral,
		PublishDecision:  decision,
		RejectionReasons: reasons,
		Tags:             []string{string(domain.SentimentNeutral)},
		DetectedSignals:  signals,
		Flags:            []string{fallbackFlag},
		ModelName:        e.model,
		PromptVersion:    PromptVersion,
	}
}

// naiveSummary truncates to 150 characters plus an ellipsis.
func naiveSummary(text string) string {
	r := []rune(text)
	if len(r) <= 150 {
		return text
	}
	return string(r[:150]) + "..."
}

func contains(ss []string, v string) bool {
	for _, s := range ss {
		if s == v {
			return true
		}
	}
	return false
}
