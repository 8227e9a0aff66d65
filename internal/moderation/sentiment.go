package moderation

import "hotel_reviews/internal/domain"

// ReconcileSentiment resolves the model's sentiment against the numeric
// rating. The rating is the ground truth when the two disagree strongly: a
// 4-5 star rating flips a negative call to positive and a 1-2 star rating
// flips a positive call to negative. Ratings of 3 are never overridden.
func ReconcileSentiment(candidate domain.Sentiment, rating int) domain.Sentiment {
	if !candidate.Valid() {
		candidate = domain.SentimentNeutral
	}
	if rating >= 4 && candidate == domain.SentimentNegative {
		return domain.SentimentPositive
	}
	if rating <= 2 && candidate == domain.SentimentPositive {
		return domain.SentimentNegative
	}
	return candidate
}
