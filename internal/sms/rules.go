// Package sms turns raw dispatch text messages into origin/destination
// candidates. It is pure string processing: the vocabulary comes in as an
// argument and nothing here touches storage.
//
// Dispatch messages are noisy — dates, pickup times, tonnage codes and form
// keywords surround the two location names. Cleaning is an ordered list of
// regexp removals applied to the residual text, each rule independently
// testable.
package sms

import (
	"regexp"
	"strings"
)

// Rule is one noise-removal step. Apply blanks every match with a single
// space so token boundaries survive for the fallback word split.
type Rule struct {
	Name string
	re   *regexp.Regexp
}

// Apply returns s with every match of the rule replaced by a space.
func (r Rule) Apply(s string) string {
	return r.re.ReplaceAllString(s, " ")
}

// NoiseRules is the ordered rule list. Order matters: each rule operates on
// the residual text left by the previous one (e.g. the month/day rule must
// run before the bare slash-date rule would chew on its digits).
var NoiseRules = []Rule{
	{Name: "month-day", re: regexp.MustCompile(`\d{1,2}월\s*\d{1,2}일`)},
	{Name: "numeric-date", re: regexp.MustCompile(`\d{1,2}[/\-.]\d{1,2}`)},
	{Name: "dispatch-keyword", re: regexp.MustCompile(`배차표|운송장`)},
	{Name: "floor-transition", re: regexp.MustCompile(`\d+층\s*->\s*\d+층`)},
	{Name: "clock-time", re: regexp.MustCompile(`\d{1,2}:\d{2}`)},
	{Name: "tonnage", re: regexp.MustCompile(`[1-9][0-9]?T`)},
}

// Clean runs the full rule list over one line and trims the result.
func Clean(line string) string {
	s := strings.TrimSpace(line)
	for _, r := range NoiseRules {
		s = r.Apply(s)
	}
	return strings.TrimSpace(s)
}

// senderMarker flags carrier-inserted web-SMS notices; lines carrying it are
// never dispatch content.
const senderMarker = "Web발신"

// IsNoise reports whether a raw line should be skipped outright: too short to
// hold two location names, or a sender notice.
func IsNoise(line string) bool {
	l := strings.TrimSpace(line)
	return len([]rune(l)) <= 5 || strings.Contains(l, senderMarker)
}
