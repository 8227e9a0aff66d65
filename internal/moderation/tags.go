package moderation

import "hotel_reviews/internal/domain"

// topicTagAllowList is the closed topic vocabulary. Model-reported tags
// outside it are dropped silently.
var topicTagAllowList = map[string]struct{}{
	"CLEANLINESS":      {},
	"ROOM_QUALITY":     {},
	"BATHROOM":         {},
	"FOOD_BREAKFAST":   {},
	"RESTAURANT_FOOD":  {},
	"SERVICE_STAFF":    {},
	"CHECKIN_CHECKOUT": {},
	"LOCATION":         {},
	"AMENITIES":        {},
	"WIFI":             {},
	"NOISE":            {},
	"PARKING":          {},
	"SAFETY_SECURITY":  {},
	"MAINTENANCE":      {},
}

// specialTagChecks mirrors the rule-engine order; hate_sexual_violent and
// too_short carry no special tag.
var specialTagChecks = []struct {
	set func(domain.SignalSet) bool
	tag string
}{
	{func(s domain.SignalSet) bool { return s.PriceMentioned }, "PRICE_MENTIONED"},
	{func(s domain.SignalSet) bool { return s.OwnerNameMentioned }, "OWNER_MENTIONED"},
	{func(s domain.SignalSet) bool { return s.PhoneEmailPresent }, "CONTACT_INFO_MENTIONED"},
	{func(s domain.SignalSet) bool { return s.AbusiveLanguage }, "ABUSIVE_CONTENT"},
	{func(s domain.SignalSet) bool { return s.SpamOrLinks }, "SPAM_SUSPECT"},
}

// SynthesizeTags builds the final tag list: sentiment tag first, then
// allow-listed topic tags in reported order, then special tags in fixed
// order, deduplicated keeping the first occurrence.
func SynthesizeTags(s domain.SignalSet, topicTags []string, sentiment domain.Sentiment) []string {
	if !sentiment.Valid() {
		sentiment = domain.SentimentNeutral
	}

	tags := []string{string(sentiment)}
	for _, t := range topicTags {
		if _, ok := topicTagAllowList[t]; ok {
			tags = append(tags, t)
		}
	}
	for _, check := range specialTagChecks {
		if check.set(s) {
			tags = append(tags, check.tag)
		}
	}

	seen := make(map[string]struct{}, len(tags))
	unique := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		unique = append(unique, t)
	}
	return unique
}
