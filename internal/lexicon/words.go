package lexicon

import "strings"

// CapitalizedStopWords are sentence-initial words that never name a service.
var CapitalizedStopWords = []string{
	"This", "Your", "Please", "Thank", "Information", "Message", "Subscription", "Payment",
}

// SenderSubdomains are e-mail domain labels skipped when looking for the
// service name in a sender address.
var SenderSubdomains = []string{
	"mail", "mailer", "email", "e", "em", "info", "billing", "noreply", "no-reply", "notifications",
	"notification", "account", "accounts", "news", "support", "members", "service", "www",
}

// SenderLocalPrefixes are generic local-part prefixes stripped from senders.
var SenderLocalPrefixes = []string{"noreply", "no-reply", "donotreply", "billing", "support", "info", "alerts"}

// SubscriptionKeywords boost the overall confidence of an extraction.
var SubscriptionKeywords = []string{"subscription", "recurring payment", "monthly", "yearly", "membership"}

// IsStopWord reports whether w is a stop word, ignoring case.
func IsStopWord(w string) bool {
	for _, s := range CapitalizedStopWords {
		if strings.EqualFold(s, w) {
			return true
		}
	}
	return false
}

// IsSenderSubdomain reports whether label is a generic mail sub-domain.
func IsSenderSubdomain(label string) bool {
	for _, s := range SenderSubdomains {
		if s == label {
			return true
		}
	}
	return false
}
