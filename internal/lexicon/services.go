package lexicon

import (
	"sort"
	"strings"
	"unicode"
)

// ServiceAlias maps a lower-case alias to a canonical service name.
type ServiceAlias struct {
	Alias string
	Name  string
}

var serviceAliases = []ServiceAlias{
	{Alias: "netflix", Name: "Netflix"},
	{Alias: "spotify", Name: "Spotify"},
	{Alias: "disney+", Name: "Disney+"},
	{Alias: "disney plus", Name: "Disney+"},
	{Alias: "hulu", Name: "Hulu"},
	{Alias: "amazon prime", Name: "Amazon Prime"},
	{Alias: "prime video", Name: "Prime Video"},
	{Alias: "amazon", Name: "Amazon"},
	{Alias: "hbo max", Name: "HBO Max"},
	{Alias: "youtube premium", Name: "YouTube Premium"},
	{Alias: "youtube", Name: "YouTube"},
	{Alias: "apple music", Name: "Apple Music"},
	{Alias: "apple tv+", Name: "Apple TV+"},
	{Alias: "apple tv", Name: "Apple TV+"},
	{Alias: "icloud", Name: "iCloud"},
	{Alias: "google one", Name: "Google One"},
	{Alias: "microsoft 365", Name: "Microsoft 365"},
	{Alias: "office 365", Name: "Microsoft 365"},
	{Alias: "xbox game pass", Name: "Xbox Game Pass"},
	{Alias: "playstation plus", Name: "PlayStation Plus"},
	{Alias: "adobe", Name: "Adobe"},
	{Alias: "dropbox", Name: "Dropbox"},
	{Alias: "audible", Name: "Audible"},
	{Alias: "paramount+", Name: "Paramount+"},
	{Alias: "paramount plus", Name: "Paramount+"},
	{Alias: "peacock", Name: "Peacock"},
	{Alias: "crunchyroll", Name: "Crunchyroll"},
	{Alias: "twitch", Name: "Twitch"},
	{Alias: "patreon", Name: "Patreon"},
	{Alias: "openai", Name: "OpenAI"},
	{Alias: "chatgpt", Name: "ChatGPT"},
	{Alias: "canva", Name: "Canva"},
	{Alias: "notion", Name: "Notion"},
	{Alias: "slack", Name: "Slack"},
	{Alias: "zoom", Name: "Zoom"},
	{Alias: "github", Name: "GitHub"},
	{Alias: "linkedin premium", Name: "LinkedIn Premium"},
	{Alias: "linkedin", Name: "LinkedIn"},
	{Alias: "duolingo", Name: "Duolingo"},
	{Alias: "headspace", Name: "Headspace"},
	{Alias: "tidal", Name: "Tidal"},
	{Alias: "deezer", Name: "Deezer"},
	{Alias: "nordvpn", Name: "NordVPN"},
	{Alias: "expressvpn", Name: "ExpressVPN"},
	{Alias: "1password", Name: "1Password"},
	{Alias: "evernote", Name: "Evernote"},
	{Alias: "grammarly", Name: "Grammarly"},
	{Alias: "tinder", Name: "Tinder"},
	{Alias: "bumble", Name: "Bumble"},
	{Alias: "jiocinema", Name: "JioCinema"},
	{Alias: "hotstar", Name: "Disney+ Hotstar"},
}

func init() {
	sort.SliceStable(serviceAliases, func(i, j int) bool {
		return len(serviceAliases[i].Alias) > len(serviceAliases[j].Alias)
	})
}

// ServiceAliases returns the alias table, longest alias first.
func ServiceAliases() []ServiceAlias {
	out := make([]ServiceAlias, len(serviceAliases))
	copy(out, serviceAliases)
	return out
}

// Compact lower-cases s and drops everything that is not a letter or digit,
// so "Disney Plus" and "disney-plus" both become "disneyplus".
func Compact(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CanonicalService resolves name against the alias table, first exactly and
// then in compacted form.
func CanonicalService(name string) (string, bool) {
	n := strings.Join(strings.Fields(strings.ToLower(name)), " ")
	if n == "" {
		return "", false
	}
	for _, a := range serviceAliases {
		if a.Alias == n {
			return a.Name, true
		}
	}
	c := Compact(n)
	if c == "" {
		return "", false
	}
	for _, a := range serviceAliases {
		if Compact(a.Alias) == c {
			return a.Name, true
		}
	}
	return "", false
}
