package moderation

import "hotel_reviews/internal/domain"

// Rejection reason codes and their human-readable sentences. The sentences
// are part of the output contract and must not be reworded.
const (
	ReasonPriceMentioned    = "PRICE_MENTIONED"
	ReasonOwnerMentioned    = "OWNER_MENTIONED"
	ReasonContactInfo       = "CONTACT_INFO"
	ReasonAbusiveLanguage   = "ABUSIVE_LANGUAGE"
	ReasonSpamLinks         = "SPAM_LINKS"
	ReasonHateSexualViolent = "HATE_SEXUAL_VIOLENT"
)

var rejectionReasonText = map[string]string{
	ReasonPriceMentioned:    "Price, tariff, or monetary amount mentioned",
	ReasonOwnerMentioned:    "Hotel owner or manager name mentioned",
	ReasonContactInfo:       "Phone number or email address present",
	ReasonAbusiveLanguage:   "Contains profanity or abusive language",
	ReasonSpamLinks:         "Contains spam, advertisements, or links",
	ReasonHateSexualViolent: "Contains hate speech, sexual, or violent content",
}

// hardRejectChecks fixes the evaluation order so identical signal sets always
// produce identically ordered reason lists. too_short is deliberately absent:
// it is informational and never blocks publication.
var hardRejectChecks = []struct {
	set  func(domain.SignalSet) bool
	code string
}{
	{func(s domain.SignalSet) bool { return s.PriceMentioned }, ReasonPriceMentioned},
	{func(s domain.SignalSet) bool { return s.OwnerNameMentioned }, ReasonOwnerMentioned},
	{func(s domain.SignalSet) bool { return s.PhoneEmailPresent }, ReasonContactInfo},
	{func(s domain.SignalSet) bool { return s.AbusiveLanguage }, ReasonAbusiveLanguage},
	{func(s domain.SignalSet) bool { return s.SpamOrLinks }, ReasonSpamLinks},
	{func(s domain.SignalSet) bool { return s.HateSexualViolent }, ReasonHateSexualViolent},
}

// Decide maps a signal set to a publish decision and the ordered list of
// rejection reasons. REJECT iff the reason list is non-empty.
func Decide(s domain.SignalSet) (domain.Decision, []string) {
	reasons := make([]string, 0, len(hardRejectChecks))
	for _, check := range hardRejectChecks {
		if check.set(s) {
			reasons = append(reasons, rejectionReasonText[check.code])
		}
	}
	if len(reasons) > 0 {
		return domain.DecisionReject, reasons
	}
	return domain.DecisionPublish, reasons
}
