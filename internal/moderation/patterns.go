package moderation

import (
	"regexp"
	"strings"

	"hotel_reviews/internal/domain"
)

// Pattern catalog. Each list backs exactly one signal so the lists can be
// versioned and tested independently. Price, owner and profanity checks run
// against the lowercased text; contact and link checks against the raw text.
var (
	pricePatterns = compileAll(
		`₹\s*\d+`,     // ₹ 5000
		`rs\.?\s*\d+`, // Rs. 5000
		`inr\s*\d+`,   // INR 5000
		`paid\s*(\d+|\w+)`,
		`cost\s*(\d+|\w+)`,
		`price\s*(\d+|\w+)`,
		`\d+\s*(?:per night|per day|per room)`,
	)

	contactPatterns = compileAll(
		`\b\d{10}\b`,             // bare 10-digit phone
		`\b\d{3}-\d{3}-\d{4}\b`,  // 123-456-7890
		`[\w\.-]+@[\w\.-]+\.\w+`, // email
	)

	ownerPatterns = compileAll(
		`(?:owner|manager|proprietor|boss)\s+(?:is\s+)?(\w+)`,
		`(?:spoke|talked|met)\s+(?:with\s+)?(\w+)(?:\s+the\s+(?:owner|manager))?`,
	)

	profanityPatterns = compileAll(
		`\b(?:damn|shit|bloody|crap|hell)\b`,
	)

	linkPatterns = compileAll(
		`http[s]?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*\\(\\),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+`,
		`www\.\S+`,
	)
)

// Reviews shorter than this many whitespace-separated words are flagged.
const shortTextWordLimit = 15

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

func anyMatch(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// Detect runs the deterministic checks over text and merges hits into s.
// A match only ever promotes a signal to true; the model's positives are
// never cleared by the absence of a regex hit.
func Detect(text string, s domain.SignalSet) domain.SignalSet {
	lower := strings.ToLower(text)

	if anyMatch(pricePatterns, lower) {
		s.PriceMentioned = true
	}
	if anyMatch(contactPatterns, text) {
		s.PhoneEmailPresent = true
	}
	if anyMatch(ownerPatterns, lower) {
		s.OwnerNameMentioned = true
	}
	if anyMatch(profanityPatterns, lower) {
		s.AbusiveLanguage = true
	}
	if anyMatch(linkPatterns, text) {
		s.SpamOrLinks = true
	}
	if len(strings.Fields(strings.TrimSpace(text))) < shortTextWordLimit {
		s.TooShort = true
	}
	return s
}
