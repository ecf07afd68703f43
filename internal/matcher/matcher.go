// Package matcher implements per-line classification of Postfix log entries.
//
// Classification is two-stage: a primary pattern narrows the stream to
// bounced/deferred delivery attempts and extracts the queue id, and a
// secondary pattern decides whether such a line additionally carries an
// anti-spam or blocklist rejection from the remote site. Keeping the two
// stages separate prevents unrelated log lines that happen to mention
// "550" or "spam" from counting as rejections.
package matcher

import (
	"fmt"
	"regexp"
	"strings"
)

// deliveryFailurePattern matches a postfix/smtp delivery attempt that ended
// in status=bounced or status=deferred, capturing the queue id.
// Case-sensitive; status=sent and other statuses never match.
const deliveryFailurePattern = ` postfix/smtp\[\d+\]: ([0-9A-Za-z]+): .*, status=(?:bounced|deferred) `

// Matcher classifies single log lines. It is immutable after construction
// and safe to share.
type Matcher struct {
	deliveryFailure *regexp.Regexp
	siteRejection   *regexp.Regexp
	signatures      []Signature
}

// New creates a Matcher with the built-in rejection signatures.
func New() *Matcher {
	m, err := NewWithSignatures(DefaultSignatures())
	if err != nil {
		// The built-in patterns are static valid regexps.
		panic(err)
	}
	return m
}

// NewWithSignatures creates a Matcher using the given rejection signatures.
// The signature patterns are joined with logical OR and compiled once,
// case-insensitively.
func NewWithSignatures(signatures []Signature) (*Matcher, error) {
	if len(signatures) == 0 {
		return nil, fmt.Errorf("at least one rejection signature is required")
	}

	patterns := make([]string, 0, len(signatures))
	for _, sig := range signatures {
		if _, err := regexp.Compile(sig.Pattern); err != nil {
			return nil, fmt.Errorf("signature %q: invalid pattern: %w", sig.Name, err)
		}
		patterns = append(patterns, sig.Pattern)
	}

	siteRejection, err := regexp.Compile("(?i)" + strings.Join(patterns, "|"))
	if err != nil {
		return nil, fmt.Errorf("failed to compile rejection signatures: %w", err)
	}

	return &Matcher{
		deliveryFailure: regexp.MustCompile(deliveryFailurePattern),
		siteRejection:   siteRejection,
		signatures:      signatures,
	}, nil
}

// MatchDeliveryFailure reports whether the line is a bounced or deferred
// delivery attempt, returning the queue id on a match.
func (m *Matcher) MatchDeliveryFailure(line string) (string, bool) {
	groups := m.deliveryFailure.FindStringSubmatch(line)
	if groups == nil {
		return "", false
	}
	return groups[1], true
}

// IsRejection reports whether the line contains any of the configured
// site-rejection signatures. The check is only meaningful on lines that
// already matched MatchDeliveryFailure.
func (m *Matcher) IsRejection(line string) bool {
	return m.siteRejection.MatchString(line)
}

// Signatures returns the rejection signatures this Matcher was built with.
func (m *Matcher) Signatures() []Signature {
	return m.signatures
}
