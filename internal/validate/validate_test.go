package validate

import (
	"strings"
	"testing"
)

const (
	goodEmail   = "a@b.com"
	goodTopic   = "Hello there"
	goodMessage = "This is a test message."
)

func TestContactForm_Valid(t *testing.T) {
	got, verr := ContactForm(goodEmail, goodTopic, goodMessage)
	if verr != nil {
		t.Fatalf("unexpected error: %v", verr)
	}
	if got.Email != goodEmail {
		t.Errorf("expected email unchanged, got %q", got.Email)
	}
	if got.Topic != goodTopic {
		t.Errorf("expected topic %q, got %q", goodTopic, got.Topic)
	}
	if got.Message != goodMessage {
		t.Errorf("expected message %q, got %q", goodMessage, got.Message)
	}
}

// ---------------------------------------------------------------------------
// Email rule
// ---------------------------------------------------------------------------

func TestContactForm_InvalidEmail(t *testing.T) {
	for _, email := range []string{
		"",
		"not-an-email",
		"missing-domain@",
		"@missing-local.com",
		"no-dot@localhost",
		"Alice <a@b.com>", // display names are not bare addresses
		"two words@b.com",
	} {
		_, verr := ContactForm(email, goodTopic, goodMessage)
		if verr == nil {
			t.Errorf("expected error for email %q, got nil", email)
			continue
		}
		if verr.Field != "email" {
			t.Errorf("expected field=email for %q, got %q", email, verr.Field)
		}
	}
}

func TestContactForm_EmailRuleRunsFirst(t *testing.T) {
	// Both email and topic are invalid; the email failure must win.
	_, verr := ContactForm("bad", "H", goodMessage)
	if verr == nil || verr.Field != "email" {
		t.Errorf("expected email failure first, got %v", verr)
	}
}

// ---------------------------------------------------------------------------
// Length rules
// ---------------------------------------------------------------------------

func TestContactForm_TopicTooShort(t *testing.T) {
	_, verr := ContactForm(goodEmail, "H", goodMessage)
	if verr == nil {
		t.Fatal("expected error for 1-char topic, got nil")
	}
	if verr.Field != "topic" {
		t.Errorf("expected field=topic, got %q", verr.Field)
	}
	if !strings.Contains(verr.Reason, "at least 2") {
		t.Errorf("expected reason to name the lower bound, got %q", verr.Reason)
	}
}

func TestContactForm_TopicTooLong(t *testing.T) {
	_, verr := ContactForm(goodEmail, strings.Repeat("x", 101), goodMessage)
	if verr == nil {
		t.Fatal("expected error for 101-char topic, got nil")
	}
	if verr.Field != "topic" || !strings.Contains(verr.Reason, "less than 100") {
		t.Errorf("expected topic upper-bound failure, got %v", verr)
	}
}

func TestContactForm_TopicBoundsInclusive(t *testing.T) {
	for _, topic := range []string{"Hi", strings.Repeat("x", 100)} {
		if _, verr := ContactForm(goodEmail, topic, goodMessage); verr != nil {
			t.Errorf("expected %d-char topic accepted, got %v", len(topic), verr)
		}
	}
}

func TestContactForm_TopicTrimmedBeforeLengthCheck(t *testing.T) {
	// 1 rune after trimming, so the lower bound applies.
	_, verr := ContactForm(goodEmail, "   H   ", goodMessage)
	if verr == nil || verr.Field != "topic" {
		t.Errorf("expected topic length failure on trimmed value, got %v", verr)
	}
}

func TestContactForm_MessageTooShort(t *testing.T) {
	_, verr := ContactForm(goodEmail, goodTopic, "short")
	if verr == nil {
		t.Fatal("expected error for short message, got nil")
	}
	if verr.Field != "message" || !strings.Contains(verr.Reason, "at least 10") {
		t.Errorf("expected message lower-bound failure, got %v", verr)
	}
}

func TestContactForm_MessageTooLong(t *testing.T) {
	_, verr := ContactForm(goodEmail, goodTopic, strings.Repeat("x", 2001))
	if verr == nil {
		t.Fatal("expected error for 2001-char message, got nil")
	}
	if verr.Field != "message" || !strings.Contains(verr.Reason, "less than 2000") {
		t.Errorf("expected message upper-bound failure, got %v", verr)
	}
}

func TestContactForm_MessageBoundsInclusive(t *testing.T) {
	for _, msg := range []string{strings.Repeat("x", 10), strings.Repeat("x", 2000)} {
		if _, verr := ContactForm(goodEmail, goodTopic, msg); verr != nil {
			t.Errorf("expected %d-char message accepted, got %v", len(msg), verr)
		}
	}
}

func TestContactForm_LengthCountedInRunes(t *testing.T) {
	// Two runes, six bytes: must pass the 2-char lower bound.
	if _, verr := ContactForm(goodEmail, "日本", goodMessage); verr != nil {
		t.Errorf("expected 2-rune topic accepted, got %v", verr)
	}
}

// ---------------------------------------------------------------------------
// Sanitization
// ---------------------------------------------------------------------------

func TestContactForm_StripsDangerousCharacters(t *testing.T) {
	got, verr := ContactForm(goodEmail, `<b>Hi</b>`, goodMessage)
	if verr != nil {
		t.Fatalf("unexpected error: %v", verr)
	}
	if got.Topic != "bHi/b" {
		t.Errorf("expected topic sanitized to %q, got %q", "bHi/b", got.Topic)
	}
}

func TestContactForm_SanitizationIdempotent(t *testing.T) {
	got, verr := ContactForm(goodEmail, goodTopic, goodMessage)
	if verr != nil {
		t.Fatalf("unexpected error: %v", verr)
	}
	again, verr := ContactForm(goodEmail, got.Topic, got.Message)
	if verr != nil {
		t.Fatalf("unexpected error on second pass: %v", verr)
	}
	if again.Topic != got.Topic || again.Message != got.Message {
		t.Errorf("expected sanitization to be idempotent: %q/%q vs %q/%q",
			got.Topic, got.Message, again.Topic, again.Message)
	}
}

func TestContactForm_StripCanExposeWhitespace(t *testing.T) {
	// Removing quotes leaves leading/trailing spaces, which must be trimmed.
	got, verr := ContactForm(goodEmail, `" Hello there "`, goodMessage)
	if verr != nil {
		t.Fatalf("unexpected error: %v", verr)
	}
	if got.Topic != "Hello there" {
		t.Errorf("expected re-trimmed topic %q, got %q", "Hello there", got.Topic)
	}
}

func TestContactForm_MessageSanitized(t *testing.T) {
	got, verr := ContactForm(goodEmail, goodTopic, `Let's talk about <script>"things"</script> soon.`)
	if verr != nil {
		t.Fatalf("unexpected error: %v", verr)
	}
	want := "Lets talk about scriptthings/script soon."
	if got.Message != want {
		t.Errorf("expected message %q, got %q", want, got.Message)
	}
}
