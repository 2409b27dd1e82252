package extractor

import (
	"regexp"
	"strings"

	"fjacquet/subscan/internal/lexicon"
	"fjacquet/subscan/internal/models"
	"fjacquet/subscan/internal/textutils"
)

func found(raw, normalized string, confidence float64) (*models.ExtractedService, bool) {
	return &models.ExtractedService{
		RawName:        raw,
		NormalizedName: normalized,
		Confidence:     confidence,
	}, true
}

// AliasInTextStrategy looks for a known service alias anywhere in the text.
type AliasInTextStrategy struct {
	aliases []compiledAlias
}

type compiledAlias struct {
	re   *regexp.Regexp
	name string
}

// NewAliasInTextStrategy compiles the alias table, longest alias first.
func NewAliasInTextStrategy() *AliasInTextStrategy {
	aliases := lexicon.ServiceAliases()
	compiled := make([]compiledAlias, 0, len(aliases))
	for _, a := range aliases {
		compiled = append(compiled, compiledAlias{re: textutils.WordPattern(a.Alias), name: a.Name})
	}
	return &AliasInTextStrategy{aliases: compiled}
}

func (s *AliasInTextStrategy) Name() string { return "alias-in-text" }

func (s *AliasInTextStrategy) Attempt(text, _ string) (*models.ExtractedService, bool) {
	for _, a := range s.aliases {
		if m := a.re.FindStringSubmatch(text); m != nil {
			return found(m[1], a.name, 0.95)
		}
	}
	return nil, false
}

// EmailSenderStrategy derives the service from an e-mail sender's domain.
type EmailSenderStrategy struct {
	compacted []lexicon.ServiceAlias
}

// NewEmailSenderStrategy precomputes compacted aliases for domain matching.
func NewEmailSenderStrategy() *EmailSenderStrategy {
	aliases := lexicon.ServiceAliases()
	for i := range aliases {
		aliases[i].Alias = lexicon.Compact(aliases[i].Alias)
	}
	return &EmailSenderStrategy{compacted: aliases}
}

func (s *EmailSenderStrategy) Name() string { return "email-sender" }

func (s *EmailSenderStrategy) Attempt(_, sender string) (*models.ExtractedService, bool) {
	_, domain, ok := textutils.SplitEmail(sender)
	if !ok {
		return nil, false
	}

	for _, label := range textutils.DomainLabels(domain) {
		c := lexicon.Compact(label)
		for _, a := range s.compacted {
			if a.Alias == c {
				return found(label, a.Name, 0.9)
			}
		}
	}

	label, ok := textutils.MeaningfulDomainLabel(domain)
	if !ok {
		return nil, false
	}
	if name, known := lexicon.CanonicalService(label); known {
		return found(label, name, 0.9)
	}
	return found(label, textutils.Capitalize(label), 0.85)
}

// PlainSenderStrategy uses a non-e-mail sender such as an SMS header.
type PlainSenderStrategy struct{}

// NewPlainSenderStrategy creates a PlainSenderStrategy.
func NewPlainSenderStrategy() *PlainSenderStrategy { return &PlainSenderStrategy{} }

func (s *PlainSenderStrategy) Name() string { return "plain-sender" }

func (s *PlainSenderStrategy) Attempt(_, sender string) (*models.ExtractedService, bool) {
	if strings.Contains(sender, "@") {
		return nil, false
	}
	cleaned := textutils.CleanPlainSender(sender)
	if textutils.CountLetters(cleaned) < 3 {
		return nil, false
	}
	if name, ok := lexicon.CanonicalService(cleaned); ok {
		return found(cleaned, name, 0.9)
	}
	return found(cleaned, textutils.Capitalize(cleaned), 0.8)
}

// candidate is up to three capitalised words, e.g. "Acme Stream Plus".
const candidate = `([A-Z][\p{L}\p{N}&+'-]*(?:\s+[A-Z][\p{L}\p{N}&+'-]*){0,2})`

type contextualPhrase struct {
	re         *regexp.Regexp
	confidence float64
}

// ContextualPhraseStrategy reads the service from phrases such as
// "welcome to X" or "your X plan".
type ContextualPhraseStrategy struct {
	phrases []contextualPhrase
}

// NewContextualPhraseStrategy compiles the phrase table.
func NewContextualPhraseStrategy() *ContextualPhraseStrategy {
	table := []struct {
		pattern    string
		confidence float64
	}{
		{`(?i:thank\s+you\s+for\s+subscribing\s+to)\s+` + candidate, 0.9},
		{`(?i:welcome\s+to)\s+` + candidate, 0.85},
		{`(?i:subscription\s+to)\s+` + candidate, 0.85},
		{`(?i:your)\s+` + candidate + `\s+(?i:plan|account)\b`, 0.85},
		{candidate + `\s+(?i:subscription|membership)\b`, 0.8},
		{`\b(?i:from|by)\s+` + candidate, 0.8},
		{candidate + `\s+(?i:charges|fees)\b`, 0.8},
	}
	phrases := make([]contextualPhrase, 0, len(table))
	for _, t := range table {
		phrases = append(phrases, contextualPhrase{re: regexp.MustCompile(t.pattern), confidence: t.confidence})
	}
	return &ContextualPhraseStrategy{phrases: phrases}
}

func (s *ContextualPhraseStrategy) Name() string { return "contextual-phrase" }

func (s *ContextualPhraseStrategy) Attempt(text, _ string) (*models.ExtractedService, bool) {
	for _, p := range s.phrases {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := trimLeadingStopWords(m[1])
		if textutils.CountLetters(raw) < 2 {
			continue
		}
		if name, ok := lexicon.CanonicalService(raw); ok {
			return found(raw, name, p.confidence)
		}
		return found(raw, raw, p.confidence)
	}
	return nil, false
}

func trimLeadingStopWords(s string) string {
	words := strings.Fields(s)
	for len(words) > 0 && (lexicon.IsStopWord(words[0]) || words[0] == "The") {
		words = words[1:]
	}
	return strings.Join(words, " ")
}

var capitalizedWord = regexp.MustCompile(`\b[A-Z][A-Za-z]{2,}\b`)

// CapitalizedWordStrategy takes the first capitalised word that is neither a
// common sentence opener nor a currency code.
type CapitalizedWordStrategy struct{}

// NewCapitalizedWordStrategy creates a CapitalizedWordStrategy.
func NewCapitalizedWordStrategy() *CapitalizedWordStrategy { return &CapitalizedWordStrategy{} }

func (s *CapitalizedWordStrategy) Name() string { return "capitalized-word" }

func (s *CapitalizedWordStrategy) Attempt(text, _ string) (*models.ExtractedService, bool) {
	for _, w := range capitalizedWord.FindAllString(text, -1) {
		if lexicon.IsStopWord(w) || lexicon.IsISOCode(w) {
			continue
		}
		return found(w, w, 0.7)
	}
	return nil, false
}

// SenderFallbackStrategy uses whatever is left of the sender once generic
// prefixes and the e-mail domain are removed.
type SenderFallbackStrategy struct{}

// NewSenderFallbackStrategy creates a SenderFallbackStrategy.
func NewSenderFallbackStrategy() *SenderFallbackStrategy { return &SenderFallbackStrategy{} }

func (s *SenderFallbackStrategy) Name() string { return "sender-fallback" }

func (s *SenderFallbackStrategy) Attempt(_, sender string) (*models.ExtractedService, bool) {
	cleaned := textutils.StripSenderNoise(sender)
	if len(cleaned) <= 2 {
		return nil, false
	}
	if name, ok := lexicon.CanonicalService(cleaned); ok {
		return found(cleaned, name, 0.6)
	}
	return found(cleaned, textutils.Capitalize(cleaned), 0.6)
}
