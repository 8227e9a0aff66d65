package moderation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_reviews/internal/domain"
)

// PromptVersion is recorded in every analysis record so downstream consumers
// can tell which prompt produced a given signal set.
const PromptVersion = "v1.0"

// ErrUnavailable means the model call path cannot be attempted at all (no
// client configured). The engine answers it with the pattern-only fallback.
var ErrUnavailable = errors.New("moderation: model client unavailable")

const analysisPrompt = `Analyze the following hotel review and extract all required information. Return a JSON object with the exact structure shown.

Review Rating: %d
Review Text: %s

Analyze and return a JSON object with:
{
    "summary": "1-2 line summary of the review",
    "sentiment": "SENTIMENT_POSITIVE or SENTIMENT_NEUTRAL or SENTIMENT_NEGATIVE",
    "signals": {
        "price_mentioned": true/false (mentions price, tariff, rupees, Rs, INR, amount paid),
        "owner_name_mentioned": true/false (mentions hotel owner/manager name),
        "phone_email_present": true/false (contains phone number or email),
        "abusive_language": true/false (contains profanity, abuse, vulgar language),
        "spam_or_links": true/false (contains links, advertising, spam),
        "hate_sexual_violent": true/false (contains hate speech, sexual content, violent language),
        "too_short": true/false (less than 15 words)
    },
    "topic_tags": ["array of relevant tags from: CLEANLINESS, ROOM_QUALITY, BATHROOM, FOOD_BREAKFAST, RESTAURANT_FOOD, SERVICE_STAFF, CHECKIN_CHECKOUT, LOCATION, AMENITIES, WIFI, NOISE, PARKING, SAFETY_SECURITY, MAINTENANCE"],
    "flags": ["array of flag strings like 'too_short', 'generic', 'inconsistent_rating' etc"]
}

Return ONLY the JSON object, no other text.`

// modelResponse is the JSON shape the prompt asks for.
type modelResponse struct {
	Summary   string `json:"summary"`
	Sentiment string `json:"sentiment"`
	Signals   struct {
		PriceMentioned     bool `json:"price_mentioned"`
		OwnerNameMentioned bool `json:"owner_name_mentioned"`
		PhoneEmailPresent  bool `json:"phone_email_present"`
		AbusiveLanguage    bool `json:"abusive_language"`
		SpamOrLinks        bool `json:"spam_or_links"`
		HateSexualViolent  bool `json:"hate_sexual_violent"`
		TooShort           bool `json:"too_short"`
	} `json:"signals"`
	TopicTags []string `json:"topic_tags"`
	Flags     []string `json:"flags"`
}

type extraction struct {
	Signals   domain.SignalSet
	TopicTags []string
	Flags     []string
}

func defaultExtraction() extraction {
	return extraction{Signals: domain.DefaultSignals()}
}

// extract performs exactly one model call. Call errors and malformed
// responses are absorbed here: the caller gets the default signal set and a
// nil error. A non-nil error only signals a total inability to attempt the
// call, which triggers the fallback analysis path.
func (e *Engine) extract(ctx context.Context, rating int, text string) (extraction, error) {
	if e.client == nil {
		return extraction{}, ErrUnavailable
	}

	prompt := fmt.Sprintf(analysisPrompt, rating, text)

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.client.Complete(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Msg("model call failed; using default signals")
		return defaultExtraction(), nil
	}

	payload := stripFences(strings.TrimSpace(raw))

	var resp modelResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		log.Error().Err(err).Msg("model response is not valid JSON; using default signals")
		return defaultExtraction(), nil
	}

	sentiment := domain.Sentiment(resp.Sentiment)
	if !sentiment.Valid() {
		sentiment = domain.SentimentNeutral
	}

	return extraction{
		Signals: domain.SignalSet{
			PriceMentioned:     resp.Signals.PriceMentioned,
			OwnerNameMentioned: resp.Signals.OwnerNameMentioned,
			PhoneEmailPresent:  resp.Signals.PhoneEmailPresent,
			AbusiveLanguage:    resp.Signals.AbusiveLanguage,
			SpamOrLinks:        resp.Signals.SpamOrLinks,
			HateSexualViolent:  resp.Signals.HateSexualViolent,
			TooShort:           resp.Signals.TooShort,
			Sentiment:          sentiment,
			Summary:            resp.Summary,
		},
		TopicTags: resp.TopicTags,
		Flags:     resp.Flags,
	}, nil
}

// stripFences removes a ```json ... ``` (or bare ``` ... ```) wrapper, which
// models frequently add despite being told not to.
func stripFences(s string) string {
	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
		return strings.TrimSpace(s)
	}
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
		return strings.TrimSpace(s)
	}
	return s
}
