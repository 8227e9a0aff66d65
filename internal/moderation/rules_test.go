package moderation_test

import (
	"reflect"
	"testing"

	"hotel_reviews/internal/domain"
	"hotel_reviews/internal/moderation"
)

func TestDecide_PublishOnCleanSignals(t *testing.T) {
	decision, reasons := moderation.Decide(domain.DefaultSignals())
	if decision != domain.DecisionPublish {
		t.Fatalf("expected PUBLISH, got %s", decision)
	}
	if len(reasons) != 0 {
		t.Fatalf("expected no reasons, got %v", reasons)
	}
}

func TestDecide_TooShortIsInformational(t *testing.T) {
	s := domain.DefaultSignals()
	s.TooShort = true
	decision, reasons := moderation.Decide(s)
	if decision != domain.DecisionPublish || len(reasons) != 0 {
		t.Fatalf("too_short must not reject: decision=%s reasons=%v", decision, reasons)
	}
}

func TestDecide_FixedReasonOrder(t *testing.T) {
	s := domain.SignalSet{
		PriceMentioned:     true,
		OwnerNameMentioned: true,
		PhoneEmailPresent:  true,
		AbusiveLanguage:    true,
		SpamOrLinks:        true,
		HateSexualViolent:  true,
		Sentiment:          domain.SentimentNeutral,
	}
	decision, reasons := moderation.Decide(s)
	if decision != domain.DecisionReject {
		t.Fatalf("expected REJECT, got %s", decision)
	}
	want := []string{
		"Price, tariff, or monetary amount mentioned",
		"Hotel owner or manager name mentioned",
		"Phone number or email address present",
		"Contains profanity or abusive language",
		"Contains spam, advertisements, or links",
		"Contains hate speech, sexual, or violent content",
	}
	if !reflect.DeepEqual(reasons, want) {
		t.Fatalf("unexpected reason order:\n got %v\nwant %v", reasons, want)
	}
}

// decision == REJECT iff reasons is non-empty, for every single-signal set.
func TestDecide_RejectIffReasons(t *testing.T) {
	toggles := []func(*domain.SignalSet){
		func(s *domain.SignalSet) { s.PriceMentioned = true },
		func(s *domain.SignalSet) { s.OwnerNameMentioned = true },
		func(s *domain.SignalSet) { s.PhoneEmailPresent = true },
		func(s *domain.SignalSet) { s.AbusiveLanguage = true },
		func(s *domain.SignalSet) { s.SpamOrLinks = true },
		func(s *domain.SignalSet) { s.HateSexualViolent = true },
		func(s *domain.SignalSet) { s.TooShort = true },
	}
	for i, toggle := range toggles {
		s := domain.DefaultSignals()
		toggle(&s)
		decision, reasons := moderation.Decide(s)
		if (decision == domain.DecisionReject) != (len(reasons) > 0) {
			t.Errorf("case %d: invariant broken: decision=%s reasons=%v", i, decision, reasons)
		}
	}
}
