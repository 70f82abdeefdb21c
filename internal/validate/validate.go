// Package validate checks and sanitizes contact form fields.
package validate

import (
	"net/mail"
	"strings"
)

const (
	topicMinLen   = 2
	topicMaxLen   = 100
	messageMinLen = 10
	messageMaxLen = 2000
)

// stripper removes characters that could be used for HTML/attribute
// injection. They are removed outright, not escaped.
var stripper = strings.NewReplacer("<", "", ">", "", `"`, "", "'", "")

// Error describes a rejected field. The first failing rule wins; at most
// one Error is produced per form.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return e.Field + " " + e.Reason
}

// Sanitized holds the validated, cleaned form fields.
type Sanitized struct {
	Email   string
	Topic   string
	Message string
}

// ContactForm validates a raw contact form. Rules apply in order — email
// syntax, topic length, message length — and the first failure is returned.
// Topic and message are trimmed and stripped of <>"' characters; email is
// stored as given. Lengths are checked on the trimmed value, counted in
// runes.
func ContactForm(email, topic, message string) (Sanitized, *Error) {
	if err := Email(email); err != nil {
		return Sanitized{}, err
	}

	topic = strings.TrimSpace(topic)
	switch n := len([]rune(topic)); {
	case n < topicMinLen:
		return Sanitized{}, &Error{Field: "topic", Reason: "must be at least 2 characters"}
	case n > topicMaxLen:
		return Sanitized{}, &Error{Field: "topic", Reason: "must be less than 100 characters"}
	}

	message = strings.TrimSpace(message)
	switch n := len([]rune(message)); {
	case n < messageMinLen:
		return Sanitized{}, &Error{Field: "message", Reason: "must be at least 10 characters"}
	case n > messageMaxLen:
		return Sanitized{}, &Error{Field: "message", Reason: "must be less than 2000 characters"}
	}

	return Sanitized{
		Email:   email,
		Topic:   strip(topic),
		Message: strip(message),
	}, nil
}

// Email checks that the address is syntactically valid: a bare
// local-part@domain with no display name, where the domain contains at
// least one dot.
func Email(address string) *Error {
	invalid := &Error{Field: "email", Reason: "is not a valid email address"}

	addr, err := mail.ParseAddress(address)
	if err != nil || addr.Name != "" || addr.Address != address {
		return invalid
	}
	at := strings.LastIndex(addr.Address, "@")
	if at < 0 || !strings.Contains(addr.Address[at+1:], ".") {
		return invalid
	}
	return nil
}

// strip removes the dangerous character set and re-trims, since removal
// can expose whitespace at the edges.
func strip(s string) string {
	return strings.TrimSpace(stripper.Replace(s))
}
