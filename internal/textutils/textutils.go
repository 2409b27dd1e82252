// Package textutils provides the text helpers shared by the extractors:
// word-bounded phrase matching, sender clean-up and name casing.
package textutils

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"fjacquet/subscan/internal/lexicon"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	wordPatterns sync.Map // phrase -> *regexp.Regexp

	shortCodePrefix = regexp.MustCompile(`^[A-Za-z]{2}-`)
	nonLetters      = regexp.MustCompile(`[^\p{L}\s]+`)
	multiSpace      = regexp.MustCompile(`\s+`)
)

// WordPattern compiles phrase into a case-insensitive pattern bounded by
// non-alphanumeric characters. Inner whitespace matches any run of spaces.
// Unlike \b, the bounds also work for phrases ending in symbols such as "disney+".
func WordPattern(phrase string) *regexp.Regexp {
	if re, ok := wordPatterns.Load(phrase); ok {
		return re.(*regexp.Regexp)
	}
	parts := strings.Fields(phrase)
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	re := regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])(` + strings.Join(parts, `\s+`) + `)(?:[^\p{L}\p{N}]|$)`)
	actual, _ := wordPatterns.LoadOrStore(phrase, re)
	return actual.(*regexp.Regexp)
}

// ContainsAny reports whether s contains any of the substrings.
func ContainsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

var titleCaser = cases.Title(language.English)

// Capitalize returns s in title case ("acme stream" -> "Acme Stream").
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return titleCaser.String(s)
}

// SplitEmail splits an e-mail style sender into local part and domain.
func SplitEmail(sender string) (local, domain string, ok bool) {
	s := strings.TrimSpace(sender)
	if i := strings.LastIndex(s, "<"); i >= 0 {
		s = strings.TrimSuffix(s[i+1:], ">")
	}
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return "", "", false
	}
	return strings.ToLower(s[:at]), strings.ToLower(s[at+1:]), true
}

// DomainLabels splits a domain into its dot-separated labels.
func DomainLabels(domain string) []string {
	var labels []string
	for _, l := range strings.Split(strings.ToLower(domain), ".") {
		if l != "" {
			labels = append(labels, l)
		}
	}
	return labels
}

// MeaningfulDomainLabel returns the first label of domain that is neither a
// generic mail sub-domain nor part of the public suffix.
func MeaningfulDomainLabel(domain string) (string, bool) {
	labels := DomainLabels(domain)
	if len(labels) < 2 {
		return "", false
	}
	// Drop the TLD, and the second-level part of suffixes like co.uk / com.au.
	end := len(labels) - 1
	if end >= 2 && len(labels[end]) == 2 && isSecondLevelSuffix(labels[end-1]) {
		end--
	}
	for _, l := range labels[:end] {
		if !lexicon.IsSenderSubdomain(l) {
			return l, true
		}
	}
	return "", false
}

func isSecondLevelSuffix(label string) bool {
	switch label {
	case "co", "com", "org", "net", "ac", "gov":
		return true
	}
	return false
}

// CleanPlainSender strips SMS short-code prefixes such as "AD-" or "VM-",
// digits and punctuation from a non-e-mail sender.
func CleanPlainSender(sender string) string {
	s := strings.TrimSpace(sender)
	s = shortCodePrefix.ReplaceAllString(s, "")
	s = nonLetters.ReplaceAllString(s, " ")
	return strings.TrimSpace(multiSpace.ReplaceAllString(s, " "))
}

// StripSenderNoise removes the e-mail domain and generic local-part prefixes
// (noreply, billing, support...) from a sender.
func StripSenderNoise(sender string) string {
	s := strings.ToLower(strings.TrimSpace(sender))
	if local, _, ok := SplitEmail(s); ok {
		s = local
	}
	for _, p := range lexicon.SenderLocalPrefixes {
		if strings.HasPrefix(s, p) {
			s = strings.TrimLeft(strings.TrimPrefix(s, p), "-_.+ ")
			break
		}
	}
	return strings.TrimSpace(s)
}

// CountLetters returns the number of letters in s.
func CountLetters(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}
