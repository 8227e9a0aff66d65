package domain

// Sentiment is the closed three-value sentiment vocabulary.
type Sentiment string

const (
	SentimentPositive Sentiment = "SENTIMENT_POSITIVE"
	SentimentNeutral  Sentiment = "SENTIMENT_NEUTRAL"
	SentimentNegative Sentiment = "SENTIMENT_NEGATIVE"
)

// Valid reports whether s is one of the three recognized values.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// Decision is the binary publish outcome.
type Decision string

const (
	DecisionPublish Decision = "PUBLISH"
	DecisionReject  Decision = "REJECT"
)

// RawReview is a caller-submitted review before analysis. Rating bounds
// (1..5) are validated at the edges, not here.
type RawReview struct {
	ReviewID     string `json:"review_id"`
	HotelID      string `json:"hotel_id"`
	Rating       int    `json:"rating"`
	Text         string `json:"review_text"`
	ReviewerName string `json:"reviewer_name,omitempty"`
	Source       string `json:"source,omitempty"`
}

// SignalSet is the closed set of moderation signals for one review.
// Booleans default to false, sentiment to neutral, summary to "".
type SignalSet struct {
	PriceMentioned     bool      `json:"price_mentioned"`
	OwnerNameMentioned bool      `json:"owner_name_mentioned"`
	PhoneEmailPresent  bool      `json:"phone_email_present"`
	AbusiveLanguage    bool      `json:"abusive_language"`
	SpamOrLinks        bool      `json:"spam_or_links"`
	HateSexualViolent  bool      `json:"hate_sexual_violent"`
	TooShort           bool      `json:"too_short"`
	Sentiment          Sentiment `json:"sentiment"`
	Summary            string    `json:"summary"`
}

// DefaultSignals is the safe signal set substituted when extraction fails.
func DefaultSignals() SignalSet {
	return SignalSet{Sentiment: SentimentNeutral}
}

// AnalysisRecord is the immutable result of analyzing one review.
type AnalysisRecord struct {
	ReviewID         string    `json:"review_id"`
	HotelID          string    `json:"hotel_id"`
	Rating           int       `json:"rating"`
	ReviewText       string    `json:"review_text"`
	Summary          string    `json:"summary"`
	Sentiment        Sentiment `json:"sentiment"`
	PublishDecision  Decision  `json:"publish_decision"`
	RejectionReasons []string  `json:"rejection_reasons"`
	Tags             []string  `json:"tags"`
	DetectedSignals  SignalSet `json:"detected_signals"`
	Flags            []string  `json:"flags"`
	ModelName        string    `json:"model_name"`
	PromptVersion    string    `json:"prompt_version"`
}
