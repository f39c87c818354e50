package sms

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Match is one vocabulary hit inside a cleaned line.
type Match struct {
	Name string
	Pos  int // byte offset into the case-folded search buffer
}

// MatchNames probes the cleaned line for every vocabulary name, longest name
// first, and returns the hits ordered by position of occurrence.
//
// Matching is done against an upper-cased copy of the line. Each hit blanks
// its span in the search buffer, so the same characters can never be claimed
// twice — in particular a long name ("서울역") consumes its span before any
// shorter prefix ("서울") gets a chance to re-match it.
func MatchNames(cleaned string, namesLongestFirst []string) []Match {
	buf := strings.ToUpper(cleaned)

	var matches []Match
	for _, name := range namesLongestFirst {
		upper := strings.ToUpper(name)
		if upper == "" {
			continue
		}
		pos := strings.Index(buf, upper)
		if pos < 0 {
			continue
		}
		matches = append(matches, Match{Name: name, Pos: pos})
		buf = buf[:pos] + strings.Repeat(" ", len(upper)) + buf[pos+len(upper):]
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Pos < matches[j].Pos })
	return matches
}

// FallbackWords splits the cleaned line on whitespace and drops tokens
// shorter than two characters. Used to fill slots the vocabulary could not.
func FallbackWords(cleaned string) []string {
	var words []string
	for _, w := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(w) >= 2 {
			words = append(words, w)
		}
	}
	return words
}

// Pair is an extracted origin/destination with a flag per side telling
// whether it came from the vocabulary or the word-split fallback.
type Pair struct {
	From, To           string
	FromKnown, ToKnown bool
}

// ExtractPair resolves one raw line into an ordered origin/destination pair.
// The first two vocabulary hits win; empty slots fall back to the first
// unused ≥2-character words in order. Returns ok=false when the line resolves
// to nothing — or when the fallback would make origin and destination the
// same token, which can never be a real dispatch.
func ExtractPair(line string, namesLongestFirst []string) (Pair, bool) {
	cleaned := Clean(line)

	var p Pair
	matches := MatchNames(cleaned, namesLongestFirst)
	if len(matches) > 0 {
		p.From, p.FromKnown = matches[0].Name, true
	}
	if len(matches) > 1 {
		p.To, p.ToKnown = matches[1].Name, true
	}

	// Fallback: fill empty slots with the first unused ≥2-character words,
	// in order. Skipping tokens already claimed by the other slot keeps a
	// line from producing an origin identical to its destination.
	if p.From == "" || p.To == "" {
		for _, w := range FallbackWords(cleaned) {
			if w == p.From || w == p.To {
				continue
			}
			if p.From == "" {
				p.From = w
				continue
			}
			if p.To == "" {
				p.To = w
				break
			}
		}
	}

	if p.From == "" && p.To == "" {
		return Pair{}, false
	}
	return p, true
}

// SplitLines returns the content lines of a raw message, skipping noise lines.
func SplitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if IsNoise(line) {
			continue
		}
		lines = append(lines, strings.TrimSpace(line))
	}
	return lines
}
