// Package i18n maps envelope verdicts and UI labels to language-specific text.
package i18n

import (
	"maps"
	"strings"

	"golang.org/x/text/language"

	"github.com/yegors/aeroguard/internal/envelope"
)

// DefaultLanguage is used when nothing better matches
const DefaultLanguage = "EN"

// Languages lists the supported language codes in display order
var Languages = []string{"TR", "EN", "DE", "FR", "RU", "JP"}

// supported is ordered so that index 0 is the matcher's fallback
var supported = []struct {
	code string
	tag  language.Tag
}{
	{"EN", language.English},
	{"TR", language.Turkish},
	{"DE", language.German},
	{"FR", language.French},
	{"RU", language.Russian},
	{"JP", language.Japanese},
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(supported))
	for i, s := range supported {
		tags[i] = s.tag
	}
	return language.NewMatcher(tags)
}()

// Resolve turns a language code, BCP 47 tag, or Accept-Language header into
// one of the supported codes.
func Resolve(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return DefaultLanguage
	}
	if code := strings.ToUpper(input); tables[code] != nil {
		return code
	}

	_, idx := language.MatchStrings(matcher, input)
	return supported[idx].code
}

// Text returns the string for key in lang, falling back to English and then to the key itself
func Text(lang, key string) string {
	if s, ok := tables[Resolve(lang)][key]; ok {
		return s
	}
	if s, ok := tables[DefaultLanguage][key]; ok {
		return s
	}
	return key
}

// Table returns a copy of the full string table for lang
func Table(lang string) map[string]string {
	return maps.Clone(tables[Resolve(lang)])
}

// VerdictKey returns the message key for a verdict.
// An out-of-range verdict gets the generic failure text.
func VerdictKey(v envelope.Verdict) string {
	switch v {
	case envelope.Safe:
		return KeySimDone
	case envelope.CeilingExceeded:
		return KeyCrashAltHigh
	case envelope.StallSpeedFailure:
		return KeyCrashStall
	case envelope.StructuralOverspeed:
		return KeyCrashStruct
	case envelope.LowAltitudeOverspeed:
		return KeyCrashAltLow
	default:
		return KeySimFailed
	}
}

// Message returns the outcome text for a verdict in lang
func Message(lang string, v envelope.Verdict) string {
	return Text(lang, VerdictKey(v))
}

// Outcome is the headline and detail line shown when a replay finishes
type Outcome struct {
	Headline string `json:"headline"`
	Detail   string `json:"detail,omitempty"`
	Failed   bool   `json:"failed"`
}

// OutcomeFor builds the closing text of a replay
func OutcomeFor(lang string, v envelope.Verdict) Outcome {
	if !v.IsFailure() {
		return Outcome{Headline: Text(lang, KeySimDone)}
	}
	return Outcome{
		Headline: Message(lang, v),
		Detail:   Text(lang, KeySimFailed),
		Failed:   true,
	}
}
